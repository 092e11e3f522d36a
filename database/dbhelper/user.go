package dbhelper

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/quickbite/storefront/database"
	"github.com/quickbite/storefront/models"
)

func CreateUser(tx *sql.Tx, name, email, hashedPassword string) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(`
		INSERT INTO users (name, email, password)
		VALUES ($1, $2, $3)
		RETURNING id`, name, email, hashedPassword).Scan(&id)
	return id, err
}

func IsUserExists(email string) (bool, error) {
	var count int
	err := database.Storefront.QueryRow(`
		SELECT COUNT(*) FROM users WHERE LOWER(email) = LOWER($1)`, email).Scan(&count)
	return count > 0, err
}

func AssignRole(tx *sql.Tx, userID uuid.UUID, role models.Role) error {
	_, err := tx.Exec(`
		INSERT INTO user_roles (user_id, role)
		VALUES ($1, $2)
		ON CONFLICT (user_id, role) DO NOTHING`, userID, role)
	return err
}

func GetUserByEmail(email string) (uuid.UUID, error) {
	var userID uuid.UUID
	err := database.Storefront.QueryRow(`
		SELECT id FROM users
		WHERE LOWER(email) = LOWER($1) AND archived_at IS NULL`, email).Scan(&userID)
	if err != nil {
		return uuid.Nil, err
	}
	return userID, nil
}

func GetUserByPassword(email, password string) (uuid.UUID, string, error) {
	var id uuid.UUID
	var name string
	var hashedPassword string

	err := database.Storefront.QueryRow(`
		SELECT id, name, password FROM users
		WHERE LOWER(email) = LOWER($1) AND archived_at IS NULL`, email).
		Scan(&id, &name, &hashedPassword)
	if err != nil {
		return uuid.Nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) != nil {
		return uuid.Nil, "", fmt.Errorf("incorrect password")
	}

	return id, name, nil
}

func GetUserName(ctx context.Context, userID uuid.UUID) (string, error) {
	var name string
	err := database.Storefront.QueryRowContext(ctx, `
		SELECT name FROM users WHERE id = $1 AND archived_at IS NULL`, userID).Scan(&name)
	return name, err
}

func GetUserRoles(userID uuid.UUID) ([]string, error) {
	rows, err := database.Storefront.Query(`
		SELECT role FROM user_roles
		WHERE user_id = $1 AND archived_at IS NULL`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func IsStaff(id uuid.UUID) (bool, error) {
	var roleExists bool
	err := database.Storefront.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM user_roles
			WHERE user_id = $1 AND role = 'staff' AND archived_at IS NULL
		)`, id).Scan(&roleExists)
	if err != nil {
		return false, err
	}
	return roleExists, nil
}

func MakeStaff(id uuid.UUID) error {
	_, err := database.Storefront.Exec(`
		INSERT INTO user_roles (user_id, role)
		VALUES ($1, 'staff')
		ON CONFLICT (user_id, role) DO NOTHING`, id)
	return err
}

func ListStaff() ([]models.User, error) {
	rows, err := database.Storefront.Query(`
		SELECT u.id, u.name, u.email
		FROM users u
		JOIN user_roles ur ON u.id = ur.user_id
		WHERE ur.role = 'staff' AND u.archived_at IS NULL AND ur.archived_at IS NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var staff []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, err
		}
		staff = append(staff, u)
	}
	return staff, rows.Err()
}

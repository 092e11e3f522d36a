package dbhelper

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/quickbite/storefront/database"
	"github.com/quickbite/storefront/models"
)

// FindAvailableItem looks up a menu item by id. Missing or unavailable
// items both come back as models.ErrNotFound.
func FindAvailableItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	err := database.Storefront.QueryRowContext(ctx, `
		SELECT id, category_id, name, description, price, is_available, created_at
		FROM menu_items
		WHERE id = $1 AND is_available = true`, id).
		Scan(&item.ID, &item.CategoryID, &item.Name, &item.Description,
			&item.Price, &item.IsAvailable, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// BulkFindMenuItems resolves many ids in one query. Ids that no longer
// exist are simply absent from the result.
func BulkFindMenuItems(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.MenuItem, error) {
	items := make(map[uuid.UUID]models.MenuItem, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.String())
	}

	rows, err := database.Storefront.QueryContext(ctx, `
		SELECT id, category_id, name, description, price, is_available, created_at
		FROM menu_items
		WHERE id = ANY($1)`, pq.Array(keys))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.MenuItem
		if err := rows.Scan(&item.ID, &item.CategoryID, &item.Name, &item.Description,
			&item.Price, &item.IsAvailable, &item.CreatedAt); err != nil {
			return nil, err
		}
		items[item.ID] = item
	}
	return items, rows.Err()
}

func ListActiveCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := database.Storefront.QueryContext(ctx, `
		SELECT id, name, slug, is_active
		FROM categories
		WHERE is_active = true
		ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.IsActive); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ListAvailableMenuItems returns the orderable menu: available items in
// active categories.
func ListAvailableMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := database.Storefront.QueryContext(ctx, `
		SELECT m.id, m.category_id, m.name, m.description, m.price, m.is_available, m.created_at
		FROM menu_items m
		JOIN categories c ON c.id = m.category_id
		WHERE m.is_available = true AND c.is_active = true
		ORDER BY m.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var item models.MenuItem
		if err := rows.Scan(&item.ID, &item.CategoryID, &item.Name, &item.Description,
			&item.Price, &item.IsAvailable, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func CreateCategory(ctx context.Context, name, slug string) (uuid.UUID, error) {
	var id uuid.UUID
	err := database.Storefront.QueryRowContext(ctx, `
		INSERT INTO categories (name, slug)
		VALUES ($1, $2)
		RETURNING id`, name, slug).Scan(&id)
	return id, err
}

func CreateMenuItem(ctx context.Context, categoryID uuid.UUID, name, description string, price decimal.Decimal) (uuid.UUID, error) {
	var id uuid.UUID
	err := database.Storefront.QueryRowContext(ctx, `
		INSERT INTO menu_items (category_id, name, description, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, categoryID, name, description, price).Scan(&id)
	return id, err
}

func SetMenuItemAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	res, err := database.Storefront.ExecContext(ctx, `
		UPDATE menu_items SET is_available = $2 WHERE id = $1`, id, available)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

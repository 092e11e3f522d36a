package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/hashicorp/go-multierror"
	_ "github.com/lib/pq"

	"github.com/quickbite/storefront/config"
)

// Storefront is the shared database handle, initialized once by
// ConnectAndMigrate.
var Storefront *sql.DB

const (
	maxOpenConns    = 10
	connMaxLifetime = 5 * time.Minute
)

func ConnectAndMigrate() error {
	db, err := sql.Open("postgres", config.DatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	Storefront = db
	return migrateUp(db)
}

func migrateUp(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+config.MigrationsPath(), "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Tx runs fn inside a transaction: either every statement commits
// together or the whole thing rolls back.
func Tx(fn func(tx *sql.Tx) error) error {
	tx, err := Storefront.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return multierror.Append(err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

func ShutdownDatabase() error {
	if Storefront == nil {
		return nil
	}
	return Storefront.Close()
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Category struct {
	ID       uuid.UUID `db:"id" json:"id"`
	Name     string    `db:"name" json:"name"`
	Slug     string    `db:"slug" json:"slug"`
	IsActive bool      `db:"is_active" json:"is_active"`
}

// MenuItem is a purchasable item. Price is a fixed-point decimal; orders
// capture a copy of it at purchase time and never read it back.
type MenuItem struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	CategoryID  uuid.UUID       `db:"category_id" json:"category_id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	IsAvailable bool            `db:"is_available" json:"is_available"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPreparing OrderStatus = "PREPARING"
	StatusReady     OrderStatus = "READY"
	StatusCompleted OrderStatus = "COMPLETED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// statusTransitions is the full set of legal staff-initiated moves.
// COMPLETED and CANCELLED are terminal.
var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusCompleted},
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether moving an order from one status to
// another is legal.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is an immutable record of a committed purchase. TotalPrice is
// frozen at creation time and always equals the sum of its items'
// price × quantity.
type Order struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	UserID     *uuid.UUID      `db:"user_id" json:"user_id,omitempty"`
	Name       string          `db:"name" json:"name"`
	Phone      string          `db:"phone" json:"phone"`
	Status     OrderStatus     `db:"status" json:"status"`
	TotalPrice decimal.Decimal `db:"total_price" json:"total_price"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updated_at"`
	Items      []OrderItem     `db:"-" json:"items"`
}

// OrderItem is one priced, quantified line within an order. MenuItemID is
// a weak reference: it becomes nil if the menu item is later deleted,
// while the name/price snapshot keeps the order reconstructable.
type OrderItem struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	OrderID    uuid.UUID       `db:"order_id" json:"order_id"`
	MenuItemID *uuid.UUID      `db:"menu_item_id" json:"menu_item_id,omitempty"`
	Name       string          `db:"name" json:"name"`
	Quantity   int             `db:"quantity" json:"quantity"`
	UnitPrice  decimal.Decimal `db:"price" json:"price"`
}

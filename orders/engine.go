// Package orders converts a session cart into a persisted, immutable,
// priced order.
package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/quickbite/storefront/models"
)

// Catalog resolves menu-item identities at checkout time.
type Catalog interface {
	BulkFind(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.MenuItem, error)
}

// Store persists an order and all of its items atomically: on error no
// order or item row may remain observable.
type Store interface {
	SaveOrder(ctx context.Context, order *models.Order) error
}

// CartStore clears a committed session cart.
type CartStore interface {
	Clear(ctx context.Context, sessionID uuid.UUID) error
}

type Engine struct {
	catalog Catalog
	store   Store
	carts   CartStore
}

func NewEngine(catalog Catalog, store Store, carts CartStore) *Engine {
	return &Engine{catalog: catalog, store: store, carts: carts}
}

// Checkout turns a non-empty cart into a persisted PENDING order.
//
// The total is recomputed from the cart's snapshotted unit prices, never
// taken from the client. Cart lines whose menu item has since been
// deleted still become order items, with a nil menu-item reference and
// the snapshot intact. On any persistence failure the cart is left
// untouched so the customer can retry; the cart is cleared only after
// the order is durably committed.
func (e *Engine) Checkout(ctx context.Context, sessionID uuid.UUID, cart *models.Cart, contact models.Contact, userID *uuid.UUID) (*models.Order, error) {
	if cart.IsEmpty() {
		return nil, models.ErrEmptyCart
	}
	if err := contact.Validate(); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(cart.Items))
	for _, line := range cart.Items {
		ids = append(ids, line.MenuItemID)
	}
	found, err := e.catalog.BulkFind(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: resolving menu items: %v", models.ErrOrderPersistence, err)
	}

	order := &models.Order{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       contact.Name,
		Phone:      contact.Phone,
		Status:     models.StatusPending,
		TotalPrice: cart.Subtotal(),
	}
	for _, line := range cart.Items {
		item := models.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
		if _, ok := found[line.MenuItemID]; ok {
			id := line.MenuItemID
			item.MenuItemID = &id
		}
		order.Items = append(order.Items, item)
	}

	if err := e.store.SaveOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrOrderPersistence, err)
	}

	if err := e.carts.Clear(ctx, sessionID); err != nil {
		// The order is already committed; a stale cart is recoverable,
		// a lost order is not.
		logrus.WithError(err).WithField("order_id", order.ID).
			Error("failed to clear cart after checkout")
	}

	return order, nil
}

package orders

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quickbite/storefront/models"
)

type fakeCatalog struct {
	items map[uuid.UUID]models.MenuItem
	err   error
}

func (f *fakeCatalog) BulkFind(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]models.MenuItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	found := map[uuid.UUID]models.MenuItem{}
	for _, id := range ids {
		if item, ok := f.items[id]; ok {
			found[id] = item
		}
	}
	return found, nil
}

// fakeStore mimics the transactional order store: item rows are staged
// one at a time and become observable only if every insert succeeds.
type fakeStore struct {
	failAfterItems int // -1 disables the fault
	saved          []models.Order
}

func (f *fakeStore) SaveOrder(_ context.Context, order *models.Order) error {
	staged := 0
	for range order.Items {
		if f.failAfterItems >= 0 && staged == f.failAfterItems {
			// Roll back: nothing staged may remain observable.
			return fmt.Errorf("insert order item: connection reset")
		}
		staged++
	}
	f.saved = append(f.saved, *order)
	return nil
}

type fakeCarts struct {
	cleared []uuid.UUID
	err     error
}

func (f *fakeCarts) Clear(_ context.Context, sessionID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.cleared = append(f.cleared, sessionID)
	return nil
}

func twoLineCart() (*models.Cart, uuid.UUID, uuid.UUID) {
	burgerID := uuid.New()
	friesID := uuid.New()
	cart := &models.Cart{Items: []models.CartLine{
		{MenuItemID: burgerID, Name: "Burger", UnitPrice: decimal.RequireFromString("5.00"), Quantity: 2},
		{MenuItemID: friesID, Name: "Fries", UnitPrice: decimal.RequireFromString("2.50"), Quantity: 1},
	}}
	return cart, burgerID, friesID
}

func catalogFor(ids ...uuid.UUID) *fakeCatalog {
	items := map[uuid.UUID]models.MenuItem{}
	for _, id := range ids {
		items[id] = models.MenuItem{ID: id, IsAvailable: true}
	}
	return &fakeCatalog{items: items}
}

var okContact = models.Contact{Name: "John Doe", Phone: "555-123-4567"}

func TestCheckoutSuccess(t *testing.T) {
	cart, burgerID, friesID := twoLineCart()
	store := &fakeStore{failAfterItems: -1}
	carts := &fakeCarts{}
	engine := NewEngine(catalogFor(burgerID, friesID), store, carts)

	sessionID := uuid.New()
	order, err := engine.Checkout(context.Background(), sessionID, cart, okContact, nil)
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}

	if want := decimal.RequireFromString("12.50"); !order.TotalPrice.Equal(want) {
		t.Errorf("total = %s, want %s", order.TotalPrice, want)
	}
	if order.Status != models.StatusPending {
		t.Errorf("status = %q, want %q", order.Status, models.StatusPending)
	}
	if len(order.Items) != 2 {
		t.Fatalf("got %d order items, want 2", len(order.Items))
	}

	// Total must equal the sum of the item snapshots.
	sum := decimal.Zero
	for _, item := range order.Items {
		sum = sum.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if !sum.Equal(order.TotalPrice) {
		t.Errorf("item sum %s != total %s", sum, order.TotalPrice)
	}

	if len(store.saved) != 1 {
		t.Fatalf("store has %d orders, want 1", len(store.saved))
	}
	if len(carts.cleared) != 1 || carts.cleared[0] != sessionID {
		t.Errorf("cart not cleared for session %s: %v", sessionID, carts.cleared)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	store := &fakeStore{failAfterItems: -1}
	carts := &fakeCarts{}
	engine := NewEngine(catalogFor(), store, carts)

	_, err := engine.Checkout(context.Background(), uuid.New(), &models.Cart{}, okContact, nil)
	if !errors.Is(err, models.ErrEmptyCart) {
		t.Fatalf("Checkout() error = %v, want ErrEmptyCart", err)
	}
	if len(store.saved) != 0 {
		t.Error("no order may be created for an empty cart")
	}
	if len(carts.cleared) != 0 {
		t.Error("cart must not be cleared on failure")
	}
}

func TestCheckoutInvalidContact(t *testing.T) {
	cart, burgerID, friesID := twoLineCart()
	store := &fakeStore{failAfterItems: -1}
	engine := NewEngine(catalogFor(burgerID, friesID), store, &fakeCarts{})

	_, err := engine.Checkout(context.Background(), uuid.New(), cart, models.Contact{}, nil)
	var contactErr *models.ContactError
	if !errors.As(err, &contactErr) {
		t.Fatalf("Checkout() error = %v, want *ContactError", err)
	}
	if len(store.saved) != 0 {
		t.Error("no order may be created for invalid contact")
	}
}

func TestCheckoutAtomicRollback(t *testing.T) {
	// Fail after the first of two item inserts: no order may be
	// observable and the cart must be exactly as it was.
	cart, burgerID, friesID := twoLineCart()
	before := append([]models.CartLine(nil), cart.Items...)

	store := &fakeStore{failAfterItems: 1}
	carts := &fakeCarts{}
	engine := NewEngine(catalogFor(burgerID, friesID), store, carts)

	_, err := engine.Checkout(context.Background(), uuid.New(), cart, okContact, nil)
	if !errors.Is(err, models.ErrOrderPersistence) {
		t.Fatalf("Checkout() error = %v, want ErrOrderPersistence", err)
	}

	if len(store.saved) != 0 {
		t.Errorf("store has %d orders after rollback, want 0", len(store.saved))
	}
	if len(carts.cleared) != 0 {
		t.Error("cart must not be cleared when the transaction rolls back")
	}
	if len(cart.Items) != len(before) {
		t.Fatalf("cart mutated: %d lines, want %d", len(cart.Items), len(before))
	}
	for i := range before {
		if cart.Items[i] != before[i] {
			t.Errorf("cart line %d changed: %+v != %+v", i, cart.Items[i], before[i])
		}
	}
}

func TestCheckoutDeletedMenuItem(t *testing.T) {
	// The fries menu item has been deleted from the catalog; the order
	// item keeps its snapshot with a nil menu-item reference and the
	// total is unaffected.
	cart, burgerID, _ := twoLineCart()
	store := &fakeStore{failAfterItems: -1}
	engine := NewEngine(catalogFor(burgerID), store, &fakeCarts{})

	order, err := engine.Checkout(context.Background(), uuid.New(), cart, okContact, nil)
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}

	if want := decimal.RequireFromString("12.50"); !order.TotalPrice.Equal(want) {
		t.Errorf("total = %s, want %s", order.TotalPrice, want)
	}

	var burger, fries *models.OrderItem
	for i := range order.Items {
		switch order.Items[i].Name {
		case "Burger":
			burger = &order.Items[i]
		case "Fries":
			fries = &order.Items[i]
		}
	}
	if burger == nil || fries == nil {
		t.Fatalf("missing order items: %+v", order.Items)
	}
	if burger.MenuItemID == nil || *burger.MenuItemID != burgerID {
		t.Error("existing menu item should keep its reference")
	}
	if fries.MenuItemID != nil {
		t.Error("deleted menu item should have a nil reference")
	}
	if want := decimal.RequireFromString("2.50"); !fries.UnitPrice.Equal(want) {
		t.Errorf("fries snapshot price = %s, want %s", fries.UnitPrice, want)
	}
	if fries.Quantity != 1 {
		t.Errorf("fries quantity = %d, want 1", fries.Quantity)
	}
}

func TestCheckoutCatalogFailure(t *testing.T) {
	cart, _, _ := twoLineCart()
	store := &fakeStore{failAfterItems: -1}
	carts := &fakeCarts{}
	engine := NewEngine(&fakeCatalog{err: errors.New("connection refused")}, store, carts)

	_, err := engine.Checkout(context.Background(), uuid.New(), cart, okContact, nil)
	if !errors.Is(err, models.ErrOrderPersistence) {
		t.Fatalf("Checkout() error = %v, want ErrOrderPersistence", err)
	}
	if len(carts.cleared) != 0 {
		t.Error("cart must not be cleared when the catalog lookup fails")
	}
}

func TestCheckoutTagsAuthenticatedUser(t *testing.T) {
	cart, burgerID, friesID := twoLineCart()
	store := &fakeStore{failAfterItems: -1}
	engine := NewEngine(catalogFor(burgerID, friesID), store, &fakeCarts{})

	userID := uuid.New()
	order, err := engine.Checkout(context.Background(), uuid.New(), cart, okContact, &userID)
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}
	if order.UserID == nil || *order.UserID != userID {
		t.Errorf("order.UserID = %v, want %s", order.UserID, userID)
	}

	// Guest checkout leaves the reference empty.
	guestCart, gBurger, gFries := twoLineCart()
	engine = NewEngine(catalogFor(gBurger, gFries), &fakeStore{failAfterItems: -1}, &fakeCarts{})
	guestOrder, err := engine.Checkout(context.Background(), uuid.New(), guestCart, okContact, nil)
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}
	if guestOrder.UserID != nil {
		t.Errorf("guest order.UserID = %v, want nil", guestOrder.UserID)
	}
}

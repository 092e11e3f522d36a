package models

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func menuItem(name, price string) *MenuItem {
	return &MenuItem{
		ID:          uuid.New(),
		Name:        name,
		Price:       decimal.RequireFromString(price),
		IsAvailable: true,
	}
}

func TestCartAddRemoveCounts(t *testing.T) {
	burger := menuItem("Burger", "5.00")
	fries := menuItem("Fries", "2.50")

	type op struct {
		add  bool
		item *MenuItem
	}
	tests := []struct {
		name      string
		ops       []op
		wantQty   map[uuid.UUID]int
		wantCount int
	}{
		{
			name:      "single add",
			ops:       []op{{true, burger}},
			wantQty:   map[uuid.UUID]int{burger.ID: 1},
			wantCount: 1,
		},
		{
			name:      "adds accumulate",
			ops:       []op{{true, burger}, {true, burger}, {true, fries}},
			wantQty:   map[uuid.UUID]int{burger.ID: 2, fries.ID: 1},
			wantCount: 3,
		},
		{
			name:      "remove decrements",
			ops:       []op{{true, burger}, {true, burger}, {false, burger}},
			wantQty:   map[uuid.UUID]int{burger.ID: 1},
			wantCount: 1,
		},
		{
			name:      "remove at quantity one deletes the line",
			ops:       []op{{true, burger}, {false, burger}},
			wantQty:   map[uuid.UUID]int{},
			wantCount: 0,
		},
		{
			name:      "remove of absent item is a no-op",
			ops:       []op{{true, burger}, {false, fries}},
			wantQty:   map[uuid.UUID]int{burger.ID: 1},
			wantCount: 1,
		},
		{
			name:      "quantity floors at zero",
			ops:       []op{{true, burger}, {false, burger}, {false, burger}},
			wantQty:   map[uuid.UUID]int{},
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cart Cart
			for _, o := range tt.ops {
				if o.add {
					cart.Add(o.item)
				} else {
					cart.Remove(o.item.ID)
				}
			}

			got := map[uuid.UUID]int{}
			for _, line := range cart.Items {
				got[line.MenuItemID] = line.Quantity
			}
			if !reflect.DeepEqual(got, tt.wantQty) {
				t.Errorf("quantities = %v, want %v", got, tt.wantQty)
			}
			if cart.ItemCount() != tt.wantCount {
				t.Errorf("ItemCount() = %d, want %d", cart.ItemCount(), tt.wantCount)
			}
		})
	}
}

func TestCartSubtotals(t *testing.T) {
	burger := menuItem("Burger", "5.00")
	fries := menuItem("Fries", "2.50")

	var cart Cart
	cart.Add(burger)
	cart.Add(burger)
	cart.Add(fries)

	if want := decimal.RequireFromString("12.50"); !cart.Subtotal().Equal(want) {
		t.Errorf("Subtotal() = %s, want %s", cart.Subtotal(), want)
	}

	view := cart.View()
	if len(view) != 2 {
		t.Fatalf("View() returned %d lines, want 2", len(view))
	}
	if want := decimal.RequireFromString("10.00"); !view[0].Subtotal.Equal(want) {
		t.Errorf("burger line subtotal = %s, want %s", view[0].Subtotal, want)
	}
	if want := decimal.RequireFromString("2.50"); !view[1].Subtotal.Equal(want) {
		t.Errorf("fries line subtotal = %s, want %s", view[1].Subtotal, want)
	}
}

func TestCartSnapshotsPrice(t *testing.T) {
	burger := menuItem("Burger", "5.00")

	var cart Cart
	cart.Add(burger)

	// A later menu price change must not move the cart line.
	burger.Price = decimal.RequireFromString("9.99")
	cart.Add(burger)

	if len(cart.Items) != 1 {
		t.Fatalf("expected one line, got %d", len(cart.Items))
	}
	if want := decimal.RequireFromString("5.00"); !cart.Items[0].UnitPrice.Equal(want) {
		t.Errorf("snapshotted price = %s, want %s", cart.Items[0].UnitPrice, want)
	}
}

func TestCartViewIdempotent(t *testing.T) {
	var cart Cart
	cart.Add(menuItem("Burger", "5.00"))
	cart.Add(menuItem("Fries", "2.50"))

	first := cart.View()
	second := cart.View()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("View() not idempotent: %v vs %v", first, second)
	}
	if !cart.Subtotal().Equal(cart.Subtotal()) {
		t.Error("Subtotal() not idempotent")
	}
}

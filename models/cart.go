package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is one selection in a session cart. Name and UnitPrice are
// snapshots captured when the line was first added; later menu edits do
// not change them. UnitPrice serializes as a decimal string so no binary
// rounding can enter at the session-storage boundary.
type CartLine struct {
	MenuItemID uuid.UUID       `json:"menu_item_id"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
}

// Cart is the ephemeral, per-session collection of selections prior to
// checkout. It is owned by exactly one session and only ever cleared by a
// successful checkout.
type Cart struct {
	Items []CartLine `json:"items"`
}

// CartLineView is a cart line with its computed subtotal, as presented to
// the customer.
type CartLineView struct {
	CartLine
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Add puts one unit of item into the cart: an existing line is
// incremented, otherwise a new line with a name/price snapshot is
// appended.
func (c *Cart) Add(item *MenuItem) {
	for i := range c.Items {
		if c.Items[i].MenuItemID == item.ID {
			c.Items[i].Quantity++
			return
		}
	}
	c.Items = append(c.Items, CartLine{
		MenuItemID: item.ID,
		Name:       item.Name,
		UnitPrice:  item.Price,
		Quantity:   1,
	})
}

// Remove takes one unit of itemID out of the cart. A line at quantity 1
// is deleted entirely; an absent item is a no-op.
func (c *Cart) Remove(itemID uuid.UUID) {
	for i := range c.Items {
		if c.Items[i].MenuItemID != itemID {
			continue
		}
		if c.Items[i].Quantity > 1 {
			c.Items[i].Quantity--
		} else {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		}
		return
	}
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemCount is the total quantity across all lines, derived on every
// call.
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.Items {
		count += line.Quantity
	}
	return count
}

// View returns the cart lines with per-line subtotals computed from the
// snapshotted unit prices. Calling View twice without a mutation in
// between yields identical results.
func (c *Cart) View() []CartLineView {
	views := make([]CartLineView, 0, len(c.Items))
	for _, line := range c.Items {
		views = append(views, CartLineView{
			CartLine: line,
			Subtotal: line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))),
		})
	}
	return views
}

// Subtotal is the grand total of all lines, price × quantity in
// fixed-point decimal arithmetic.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Items {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

package models

import "errors"

var (
	// ErrNotFound is returned when a referenced menu item or order does
	// not exist or is not available.
	ErrNotFound = errors.New("not found")

	// ErrEmptyCart is returned when checkout is attempted with nothing
	// in the cart.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrOrderPersistence is returned when the checkout transaction
	// cannot commit. The cart is left untouched so the caller can retry.
	ErrOrderPersistence = errors.New("order could not be saved")

	// ErrInvalidTransition is returned when a staff status change is not
	// allowed by the order status transition table.
	ErrInvalidTransition = errors.New("invalid status transition")
)

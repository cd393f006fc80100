package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrEmptyCart is returned when checkout is entered without items in the cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidTransition is returned when a checkout step change is not allowed from the current step.
	ErrInvalidTransition = errors.New("invalid checkout transition")
)

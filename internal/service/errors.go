package service

import (
	"errors"
	"fmt"
)

var (
	ErrCartNotFound = errors.New("cart not found")
	ErrItemNotFound = errors.New("item not in cart")
	ErrEmptyCart    = errors.New("cart is empty")
	ErrInvalidItem  = errors.New("product not found in cart")
	ErrInvalidInput = errors.New("invalid input")
)

// InsufficientStockError reports a checkout item whose requested
// quantity exceeds the product's remaining stock.
type InsufficientStockError struct {
	Title     string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: available %d, requested %d", e.Title, e.Available, e.Requested)
}

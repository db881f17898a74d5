package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCartNotFound       = errors.New("cart not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrProductNotFound    = errors.New("product not found")
	ErrCartItemNotFound   = errors.New("cart item not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrFavoriteNotFound   = errors.New("favorite not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
)

// InsufficientStockError reports which product could not cover the requested
// quantity. Checkout aborts on the first violating line.
type InsufficientStockError struct {
	ProductID int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product_id=%d", e.ProductID)
}

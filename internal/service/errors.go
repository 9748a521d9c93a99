package service

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrDemoRequestNotFound  = errors.New("demo request not found")
	ErrUserExists           = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidCategory      = errors.New("invalid category")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrSlugTaken            = errors.New("a product with this slug already exists")
)

// InsufficientStockError names the product whose stock could not cover
// the requested quantity, so checkout rejections can tell the buyer which
// line failed.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s. Available: %d, Requested: %d",
		e.ProductName, e.Available, e.Requested)
}

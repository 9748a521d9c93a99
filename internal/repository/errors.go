package repository

import "errors"

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrPurchaseNotFound    = errors.New("purchase not found")
	ErrDemoRequestNotFound = errors.New("demo request not found")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrDuplicateUser       = errors.New("user already exists")
	ErrDuplicateSlug       = errors.New("product slug already exists")
)

package repositories

import "errors"

var (
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("duplicate resource")
	ErrEmptyCart = errors.New("cart is empty")
)

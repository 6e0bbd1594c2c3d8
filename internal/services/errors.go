package services

import "errors"

// Service-level error taxonomy. Handlers map these onto HTTP statuses with
// errors.Is; ownership violations surface as ErrNotFound so the existence of
// other users' resources never leaks.
var (
	ErrNotAuthenticated = errors.New("authentication required")
	ErrNotAuthorized    = errors.New("not authorized")
	ErrNotFound         = errors.New("not found")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrDuplicateReview  = errors.New("product already reviewed")
	ErrInvalidStatus    = errors.New("invalid order status")
	ErrInvalidQuantity  = errors.New("quantity must be a positive integer")
	ErrInvalidVersion   = errors.New("unknown product version")
	ErrInvalidCategory  = errors.New("unknown product category")
)

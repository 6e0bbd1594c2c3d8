package repositories

import (
	"velora/internal/models"
)

// OrderRepository defines the interface for order data access.
//
// CreateFromCart is the checkout transaction: it re-reads the caller's cart
// and the referenced products, snapshots per-version unit prices, inserts the
// pending order and clears the consumed cart lines as one atomic unit. It
// fails with ErrEmptyCart before writing anything when no lines exist, and
// with ErrNotFound when a referenced product no longer resolves (a silently
// skipped line would leave the stored total inconsistent with the items).
type OrderRepository interface {
	CreateFromCart(userID string, shipping models.ShippingAddress) (*models.Order, error)
	GetByID(id string) (*models.Order, error)
	ListByUser(userID string) ([]models.Order, error)
	ListAll() ([]models.Order, error)
	UpdateStatus(id string, status models.OrderStatus) error
	CountByUser(userID string) (int64, error)
}

package repositories

import (
	"velora/internal/models"
)

// CartRepository defines the interface for cart line data access.
// Add enforces the merge rule: at most one line per (user, product, version),
// with repeat adds folded into the existing line's quantity.
type CartRepository interface {
	ListByUser(userID string) ([]models.CartItem, error)
	GetByID(id string) (*models.CartItem, error)
	Add(userID, productID string, version models.Version, quantity int) (*models.CartItem, error)
	UpdateQuantity(id string, quantity int) error
	Delete(id string) error
}

package repositories

import (
	"velora/internal/models"
)

// ReviewRepository defines the interface for review data access.
//
// Create rejects a second review for the same (user, product) pair with
// ErrDuplicate, and recomputes the product's mean rating and review count in
// the same transaction as the insert.
type ReviewRepository interface {
	Create(review *models.Review) error
	ListByProduct(productID string) ([]models.Review, error)
	GetByUserAndProduct(userID, productID string) (*models.Review, error)
}

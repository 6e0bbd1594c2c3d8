package repositories

import (
	"velora/internal/models"
)

// ProductFilter narrows a catalog listing. The filters are mutually exclusive
// in practice: category wins, then featured, then new-arrival, then
// coming-soon; with none set every product is returned.
type ProductFilter struct {
	Category   *models.Category
	Featured   bool
	NewArrival bool
	ComingSoon bool
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(filter ProductFilter) ([]models.Product, error)
	Search(term string, category *models.Category, limit int) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Count() (int64, error)
}

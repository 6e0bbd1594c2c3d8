package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"velora/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	order    []string // insertion order of IDs
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// List returns products matching the filter in insertion order.
func (r *MockProductRepository) List(filter ProductFilter) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, id := range r.order {
		p, ok := r.products[id]
		if !ok {
			continue
		}
		switch {
		case filter.Category != nil:
			if p.Category != *filter.Category {
				continue
			}
		case filter.Featured:
			if !p.Featured {
				continue
			}
		case filter.NewArrival:
			if !p.NewArrival {
				continue
			}
		case filter.ComingSoon:
			if !p.ComingSoon {
				continue
			}
		}
		productList = append(productList, p)
	}
	return productList, nil
}

// Search matches the term against product names, case-insensitively.
func (r *MockProductRepository) Search(term string, category *models.Category, limit int) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	term = strings.ToLower(term)
	var matches []models.Product
	for _, id := range r.order {
		p, ok := r.products[id]
		if !ok {
			continue
		}
		if !strings.Contains(strings.ToLower(p.Name), term) {
			continue
		}
		if category != nil && p.Category != *category {
			continue
		}
		matches = append(matches, p)
		if len(matches) >= limit {
			break
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })
	return matches, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.products[product.ID] = *product
	r.order = append(r.order, product.ID)
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("product %s: %w", product.ID, ErrNotFound)
	}
	r.products[product.ID] = *product
	return nil
}

// Count returns the number of products.
func (r *MockProductRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.products)), nil
}

// Remove deletes a product; used by tests to simulate a product disappearing
// between adding it to a cart and checking out.
func (r *MockProductRepository) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
}

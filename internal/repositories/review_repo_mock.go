package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"velora/internal/models"

	"github.com/google/uuid"
)

// MockReviewRepository is an in-memory implementation of ReviewRepository.
// Like the transactional implementation, it updates the product's rating
// rollup through the mock product repository in the same logical operation
// as the insert.
type MockReviewRepository struct {
	reviews  map[string]models.Review
	products *MockProductRepository
	mu       sync.Mutex
}

// NewMockReviewRepository creates a new instance of MockReviewRepository.
func NewMockReviewRepository(products *MockProductRepository) *MockReviewRepository {
	return &MockReviewRepository{
		reviews:  make(map[string]models.Review),
		products: products,
	}
}

// Create inserts the review and recomputes the product rating rollup.
func (r *MockReviewRepository) Create(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, err := r.products.GetByID(review.ProductID)
	if err != nil {
		return fmt.Errorf("product %s: %w", review.ProductID, ErrNotFound)
	}

	for _, existing := range r.reviews {
		if existing.ProductID == review.ProductID && existing.UserID == review.UserID {
			return fmt.Errorf("review for product %s by user %s: %w", review.ProductID, review.UserID, ErrDuplicate)
		}
	}

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	r.reviews[review.ID] = *review

	var total, count int
	for _, rv := range r.reviews {
		if rv.ProductID == review.ProductID {
			total += rv.Rating
			count++
		}
	}
	mean := float64(total) / float64(count)
	product.Rating = &mean
	product.ReviewCount = count
	return r.products.Update(product)
}

// ListByProduct returns the product's reviews, most recent first.
func (r *MockReviewRepository) ListByProduct(productID string) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var reviews []models.Review
	for _, rv := range r.reviews {
		if rv.ProductID == productID {
			reviews = append(reviews, rv)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].CreatedAt.After(reviews[j].CreatedAt) })
	return reviews, nil
}

// GetByUserAndProduct returns the user's review of the product, if any.
func (r *MockReviewRepository) GetByUserAndProduct(userID, productID string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rv := range r.reviews {
		if rv.ProductID == productID && rv.UserID == userID {
			review := rv
			return &review, nil
		}
	}
	return nil, fmt.Errorf("review for product %s: %w", productID, ErrNotFound)
}

package repositories

import (
	"fmt"
	"sync"
	"time"

	"velora/internal/models"

	"github.com/google/uuid"
)

// MockEngagementRepository is an in-memory implementation of
// EngagementRepository. It updates counters through the mock product
// repository so the row set and the rollups move together, like the
// transactional implementation.
type MockEngagementRepository struct {
	views    []models.ProductView
	likes    map[string]models.ProductLike // keyed by userID+"|"+productID
	products *MockProductRepository
	mu       sync.Mutex
}

// NewMockEngagementRepository creates a new instance of MockEngagementRepository.
func NewMockEngagementRepository(products *MockProductRepository) *MockEngagementRepository {
	return &MockEngagementRepository{
		likes:    make(map[string]models.ProductLike),
		products: products,
	}
}

func likeKey(userID, productID string) string {
	return userID + "|" + productID
}

func sameIdentity(view models.ProductView, identity ViewerIdentity) bool {
	switch {
	case identity.UserID != "":
		return view.UserID != nil && *view.UserID == identity.UserID
	case identity.SessionID != "":
		return view.SessionID != nil && *view.SessionID == identity.SessionID
	default:
		return view.UserID == nil && view.SessionID == nil
	}
}

// RecordView counts a view unless the identity saw the product within the window.
func (r *MockEngagementRepository) RecordView(productID string, identity ViewerIdentity, window time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for i := len(r.views) - 1; i >= 0; i-- {
		view := r.views[i]
		if view.ProductID != productID || !sameIdentity(view, identity) {
			continue
		}
		if now.Sub(view.CreatedAt) < window {
			return false, nil
		}
		break // most recent prior event for this identity+product decides
	}

	view := models.ProductView{
		ID:        uuid.New().String(),
		ProductID: productID,
		CreatedAt: now,
	}
	if identity.UserID != "" {
		view.UserID = &identity.UserID
	}
	if identity.SessionID != "" {
		view.SessionID = &identity.SessionID
	}
	r.views = append(r.views, view)

	if product, err := r.products.GetByID(productID); err == nil {
		product.Views++
		if err := r.products.Update(product); err != nil {
			return false, err
		}
	}
	return true, nil
}

// ToggleLike flips the like row and the product counter together.
func (r *MockEngagementRepository) ToggleLike(productID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, err := r.products.GetByID(productID)
	if err != nil {
		return false, fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}

	key := likeKey(userID, productID)
	if _, ok := r.likes[key]; ok {
		delete(r.likes, key)
		product.Likes--
		if product.Likes < 0 {
			product.Likes = 0
		}
		if err := r.products.Update(product); err != nil {
			return false, err
		}
		return false, nil
	}

	r.likes[key] = models.ProductLike{
		ID:        uuid.New().String(),
		ProductID: productID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	product.Likes++
	if err := r.products.Update(product); err != nil {
		return false, err
	}
	return true, nil
}

// IsLiked reports whether the user has liked the product.
func (r *MockEngagementRepository) IsLiked(productID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.likes[likeKey(userID, productID)]
	return ok, nil
}

// CountViews returns the number of recorded view events.
func (r *MockEngagementRepository) CountViews() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.views)), nil
}

// CountLikes returns the number of like rows.
func (r *MockEngagementRepository) CountLikes() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.likes)), nil
}

// BackdateViews shifts every recorded view into the past; used by tests to
// elapse the dedup window without sleeping.
func (r *MockEngagementRepository) BackdateViews(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.views {
		r.views[i].CreatedAt = r.views[i].CreatedAt.Add(-d)
	}
}

package repositories

import (
	"errors"
	"fmt"

	"velora/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{
		db: db,
	}
}

// Create inserts the review and recomputes the product's rating rollup, all
// in one transaction. The duplicate check runs before the insert.
func (r *GORMReviewRepository) Create(review *models.Review) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", review.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product %s: %w", review.ProductID, ErrNotFound)
			}
			return fmt.Errorf("failed to load product %s: %w", review.ProductID, err)
		}

		var existing int64
		if err := tx.Model(&models.Review{}).
			Where("product_id = ? AND user_id = ?", review.ProductID, review.UserID).
			Count(&existing).Error; err != nil {
			return fmt.Errorf("failed to look up existing review: %w", err)
		}
		if existing > 0 {
			return fmt.Errorf("review for product %s by user %s: %w", review.ProductID, review.UserID, ErrDuplicate)
		}

		if review.ID == "" {
			review.ID = uuid.New().String()
		}
		if err := tx.Create(review).Error; err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}

		var all []models.Review
		if err := tx.Where("product_id = ?", review.ProductID).Find(&all).Error; err != nil {
			return fmt.Errorf("failed to load reviews for rollup: %w", err)
		}
		var total int
		for _, rv := range all {
			total += rv.Rating
		}
		mean := float64(total) / float64(len(all))

		if err := tx.Model(&models.Product{}).Where("id = ?", review.ProductID).
			Updates(map[string]interface{}{
				"rating":       mean,
				"review_count": len(all),
			}).Error; err != nil {
			return fmt.Errorf("failed to update rating rollup for product %s: %w", review.ProductID, err)
		}
		return nil
	})
}

// ListByProduct returns the product's reviews, most recent first.
func (r *GORMReviewRepository) ListByProduct(productID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.Where("product_id = ?", productID).
		Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews for product %s: %w", productID, err)
	}
	return reviews, nil
}

// GetByUserAndProduct returns the user's review of the product, if any.
func (r *GORMReviewRepository) GetByUserAndProduct(userID, productID string) (*models.Review, error) {
	var review models.Review
	if err := r.db.Where("product_id = ? AND user_id = ?", productID, userID).
		First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("review for product %s: %w", productID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &review, nil
}

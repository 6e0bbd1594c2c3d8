package repositories

import (
	"errors"
	"fmt"
	"time"

	"velora/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMEngagementRepository is a GORM implementation of EngagementRepository.
type GORMEngagementRepository struct {
	db *gorm.DB
}

// NewGORMEngagementRepository creates a new instance of GORMEngagementRepository.
func NewGORMEngagementRepository(db *gorm.DB) *GORMEngagementRepository {
	return &GORMEngagementRepository{
		db: db,
	}
}

func identityScope(query *gorm.DB, identity ViewerIdentity) *gorm.DB {
	switch {
	case identity.UserID != "":
		return query.Where("user_id = ?", identity.UserID)
	case identity.SessionID != "":
		return query.Where("session_id = ?", identity.SessionID)
	default:
		return query.Where("user_id IS NULL AND session_id IS NULL")
	}
}

// RecordView counts a view unless the same identity viewed the same product
// within the window. The dedup check, the event insert and the counter bump
// run in one transaction.
func (r *GORMEngagementRepository) RecordView(productID string, identity ViewerIdentity, window time.Duration) (bool, error) {
	counted := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var last models.ProductView
		query := identityScope(tx.Where("product_id = ?", productID), identity)
		err := query.Order("created_at DESC").First(&last).Error
		if err == nil && time.Since(last.CreatedAt) < window {
			return nil // recent view from the same identity, don't count again
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up recent view: %w", err)
		}

		view := models.ProductView{
			ID:        uuid.New().String(),
			ProductID: productID,
		}
		if identity.UserID != "" {
			view.UserID = &identity.UserID
		}
		if identity.SessionID != "" {
			view.SessionID = &identity.SessionID
		}
		if err := tx.Create(&view).Error; err != nil {
			return fmt.Errorf("failed to record view: %w", err)
		}

		if err := tx.Model(&models.Product{}).Where("id = ?", productID).
			UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
			return fmt.Errorf("failed to increment views for product %s: %w", productID, err)
		}
		counted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return counted, nil
}

// ToggleLike flips the (user, product) like row and keeps the product's likes
// counter in lockstep, floored at zero. Returns the new liked state.
func (r *GORMEngagementRepository) ToggleLike(productID, userID string) (bool, error) {
	liked := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product %s: %w", productID, ErrNotFound)
			}
			return fmt.Errorf("failed to load product %s: %w", productID, err)
		}

		var existing models.ProductLike
		err := tx.Where("product_id = ? AND user_id = ?", productID, userID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&models.ProductLike{}, "id = ?", existing.ID).Error; err != nil {
				return fmt.Errorf("failed to remove like: %w", err)
			}
			newLikes := product.Likes - 1
			if newLikes < 0 {
				newLikes = 0
			}
			if err := tx.Model(&models.Product{}).Where("id = ?", productID).
				UpdateColumn("likes", newLikes).Error; err != nil {
				return fmt.Errorf("failed to decrement likes for product %s: %w", productID, err)
			}
			liked = false
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			like := models.ProductLike{
				ID:        uuid.New().String(),
				ProductID: productID,
				UserID:    userID,
			}
			if err := tx.Create(&like).Error; err != nil {
				return fmt.Errorf("failed to add like: %w", err)
			}
			if err := tx.Model(&models.Product{}).Where("id = ?", productID).
				UpdateColumn("likes", product.Likes+1).Error; err != nil {
				return fmt.Errorf("failed to increment likes for product %s: %w", productID, err)
			}
			liked = true
			return nil
		default:
			return fmt.Errorf("failed to look up like: %w", err)
		}
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}

// IsLiked reports whether the user has liked the product.
func (r *GORMEngagementRepository) IsLiked(productID, userID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.ProductLike{}).
		Where("product_id = ? AND user_id = ?", productID, userID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to look up like: %w", err)
	}
	return count > 0, nil
}

// CountViews returns the total number of recorded view events.
func (r *GORMEngagementRepository) CountViews() (int64, error) {
	var count int64
	if err := r.db.Model(&models.ProductView{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count views: %w", err)
	}
	return count, nil
}

// CountLikes returns the total number of like rows.
func (r *GORMEngagementRepository) CountLikes() (int64, error) {
	var count int64
	if err := r.db.Model(&models.ProductLike{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

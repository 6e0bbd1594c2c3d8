package repositories

import (
	"errors"
	"fmt"

	"velora/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// ListByUser retrieves every cart line for the user.
func (r *GORMCartRepository) ListByUser(userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list cart for user %s: %w", userID, err)
	}
	return items, nil
}

// GetByID retrieves a single cart line by its ID.
func (r *GORMCartRepository) GetByID(id string) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart item %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart item %s: %w", id, err)
	}
	return &item, nil
}

// Add merges quantity into an existing (user, product, version) line or
// inserts a new one. The lookup and the write run in one transaction so two
// adds of the same triple can never produce two lines.
func (r *GORMCartRepository) Add(userID, productID string, version models.Version, quantity int) (*models.CartItem, error) {
	var result *models.CartItem
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.CartItem
		err := tx.Where("user_id = ? AND product_id = ? AND version = ?", userID, productID, version).
			First(&existing).Error
		switch {
		case err == nil:
			existing.Quantity += quantity
			if err := tx.Model(&models.CartItem{}).Where("id = ?", existing.ID).
				Update("quantity", existing.Quantity).Error; err != nil {
				return fmt.Errorf("failed to merge cart item quantity: %w", err)
			}
			result = &existing
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			item := models.CartItem{
				ID:        uuid.New().String(),
				UserID:    userID,
				ProductID: productID,
				Version:   version,
				Quantity:  quantity,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to create cart item: %w", err)
			}
			result = &item
			return nil
		default:
			return fmt.Errorf("failed to look up cart item: %w", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateQuantity patches the quantity of an existing cart line.
func (r *GORMCartRepository) UpdateQuantity(id string, quantity int) error {
	res := r.db.Model(&models.CartItem{}).Where("id = ?", id).Update("quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("failed to update cart item %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %s: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes a cart line by its ID.
func (r *GORMCartRepository) Delete(id string) error {
	res := r.db.Delete(&models.CartItem{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart item %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %s: %w", id, ErrNotFound)
	}
	return nil
}

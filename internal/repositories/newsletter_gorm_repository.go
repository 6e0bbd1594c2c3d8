package repositories

import (
	"errors"
	"fmt"

	"velora/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMNewsletterRepository is a GORM implementation of NewsletterRepository.
type GORMNewsletterRepository struct {
	db *gorm.DB
}

// NewGORMNewsletterRepository creates a new instance of GORMNewsletterRepository.
func NewGORMNewsletterRepository(db *gorm.DB) *GORMNewsletterRepository {
	return &GORMNewsletterRepository{
		db: db,
	}
}

// Subscribe upserts the subscription row for the email.
func (r *GORMNewsletterRepository) Subscribe(email string, preferences []string) (*models.Newsletter, error) {
	var sub *models.Newsletter
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Newsletter
		err := tx.Where("email = ?", email).First(&existing).Error
		switch {
		case err == nil:
			existing.Subscribed = true
			existing.Preferences = preferences
			if err := tx.Save(&existing).Error; err != nil {
				return fmt.Errorf("failed to resubscribe %s: %w", email, err)
			}
			sub = &existing
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			row := models.Newsletter{
				ID:          uuid.New().String(),
				Email:       email,
				Subscribed:  true,
				Preferences: preferences,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to subscribe %s: %w", email, err)
			}
			sub = &row
			return nil
		default:
			return fmt.Errorf("failed to look up subscription for %s: %w", email, err)
		}
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// Unsubscribe flips the flag off; a missing email is a no-op.
func (r *GORMNewsletterRepository) Unsubscribe(email string) error {
	if err := r.db.Model(&models.Newsletter{}).Where("email = ?", email).
		Update("subscribed", false).Error; err != nil {
		return fmt.Errorf("failed to unsubscribe %s: %w", email, err)
	}
	return nil
}

// ListSubscribed returns every currently subscribed row.
func (r *GORMNewsletterRepository) ListSubscribed() ([]models.Newsletter, error) {
	var subs []models.Newsletter
	if err := r.db.Where("subscribed = ?", true).Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	return subs, nil
}

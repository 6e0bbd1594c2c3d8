package repositories

import (
	"velora/internal/models"
)

// NewsletterRepository defines the interface for newsletter subscription data.
// Subscribe upserts by email: resubscribing an unsubscribed address flips the
// flag back on instead of creating a duplicate row.
type NewsletterRepository interface {
	Subscribe(email string, preferences []string) (*models.Newsletter, error)
	Unsubscribe(email string) error
	ListSubscribed() ([]models.Newsletter, error)
}

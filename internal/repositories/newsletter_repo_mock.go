package repositories

import (
	"sync"
	"time"

	"velora/internal/models"

	"github.com/google/uuid"
)

// MockNewsletterRepository is an in-memory implementation of NewsletterRepository.
type MockNewsletterRepository struct {
	subs map[string]models.Newsletter // keyed by email
	mu   sync.RWMutex
}

// NewMockNewsletterRepository creates a new instance of MockNewsletterRepository.
func NewMockNewsletterRepository() *MockNewsletterRepository {
	return &MockNewsletterRepository{
		subs: make(map[string]models.Newsletter),
	}
}

// Subscribe upserts the subscription row for the email.
func (r *MockNewsletterRepository) Subscribe(email string, preferences []string) (*models.Newsletter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.subs[email]; ok {
		existing.Subscribed = true
		existing.Preferences = preferences
		existing.UpdatedAt = time.Now()
		r.subs[email] = existing
		return &existing, nil
	}

	row := models.Newsletter{
		ID:          uuid.New().String(),
		Email:       email,
		Subscribed:  true,
		Preferences: preferences,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	r.subs[email] = row
	return &row, nil
}

// Unsubscribe flips the flag off; a missing email is a no-op.
func (r *MockNewsletterRepository) Unsubscribe(email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.subs[email]; ok {
		existing.Subscribed = false
		existing.UpdatedAt = time.Now()
		r.subs[email] = existing
	}
	return nil
}

// ListSubscribed returns every currently subscribed row.
func (r *MockNewsletterRepository) ListSubscribed() ([]models.Newsletter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var subs []models.Newsletter
	for _, sub := range r.subs {
		if sub.Subscribed {
			subs = append(subs, sub)
		}
	}
	return subs, nil
}

package services

import (
	"velora/internal/models"
	"velora/internal/repositories"
)

// NewsletterService handles newsletter subscriptions.
type NewsletterService struct {
	repo repositories.NewsletterRepository
}

// NewNewsletterService creates a new NewsletterService.
func NewNewsletterService(repo repositories.NewsletterRepository) *NewsletterService {
	return &NewsletterService{
		repo: repo,
	}
}

// Subscribe subscribes the email, flipping the flag back on for a previously
// unsubscribed address instead of creating a duplicate row.
func (s *NewsletterService) Subscribe(email string, preferences []string) (*models.Newsletter, error) {
	return s.repo.Subscribe(email, preferences)
}

// Unsubscribe flips the flag off; unknown addresses are a no-op.
func (s *NewsletterService) Unsubscribe(email string) error {
	return s.repo.Unsubscribe(email)
}

// ListSubscribers returns every currently subscribed row.
func (s *NewsletterService) ListSubscribers() ([]models.Newsletter, error) {
	return s.repo.ListSubscribed()
}

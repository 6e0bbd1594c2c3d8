package services

import (
	"errors"
	"time"

	"velora/internal/repositories"
)

// viewDedupWindow is how long a repeat view from the same identity on the
// same product stays uncounted.
const viewDedupWindow = time.Hour

// EngagementService handles view tracking and like toggling.
type EngagementService struct {
	repo repositories.EngagementRepository
}

// NewEngagementService creates a new EngagementService.
func NewEngagementService(repo repositories.EngagementRepository) *EngagementService {
	return &EngagementService{
		repo: repo,
	}
}

// RecordView records a product view for the given identity: the user ID when
// signed in, else the session token, else the anonymous bucket. Returns
// whether the view was counted.
func (s *EngagementService) RecordView(productID, userID, sessionID string) (bool, error) {
	identity := repositories.ViewerIdentity{}
	if userID != "" {
		identity.UserID = userID
	} else if sessionID != "" {
		identity.SessionID = sessionID
	}
	return s.repo.RecordView(productID, identity, viewDedupWindow)
}

// ToggleLike flips the caller's like on the product and returns the new state.
func (s *EngagementService) ToggleLike(productID, userID string) (bool, error) {
	if userID == "" {
		return false, ErrNotAuthenticated
	}
	liked, err := s.repo.ToggleLike(productID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}
	return liked, nil
}

// IsLiked reports whether the caller has liked the product; false, not an
// error, when unauthenticated.
func (s *EngagementService) IsLiked(productID, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	return s.repo.IsLiked(productID, userID)
}

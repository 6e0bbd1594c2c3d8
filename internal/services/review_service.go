package services

import (
	"errors"

	"velora/internal/models"
	"velora/internal/repositories"
)

// ReviewService handles business logic related to product reviews.
type ReviewService struct {
	reviewRepo repositories.ReviewRepository
	userRepo   repositories.UserRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repositories.ReviewRepository, userRepo repositories.UserRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
	}
}

// AddReview inserts the caller's review of a product. A second review for the
// same product is rejected, and a successful insert recomputes the product's
// mean rating and review count in the same logical operation.
func (s *ReviewService) AddReview(userID, productID string, rating int, title, comment string) (*models.Review, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	review := &models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Title:     title,
		Comment:   comment,
		Verified:  false,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, ErrDuplicateReview
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}
	return review, nil
}

// ListReviews returns the product's reviews, most recent first, each carrying
// only the reviewer's display name ("Anonymous" when the user is gone).
func (s *ReviewService) ListReviews(productID string) ([]models.Review, error) {
	reviews, err := s.reviewRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	for i := range reviews {
		reviews[i].ReviewerName = "Anonymous"
		if user, err := s.userRepo.GetByID(reviews[i].UserID); err == nil {
			if name := user.DisplayName(); name != "" {
				reviews[i].ReviewerName = name
			}
		}
	}
	return reviews, nil
}

// GetOwnReview returns the caller's review of the product, or nil when
// unauthenticated or no review exists yet.
func (s *ReviewService) GetOwnReview(userID, productID string) (*models.Review, error) {
	if userID == "" {
		return nil, nil
	}
	review, err := s.reviewRepo.GetByUserAndProduct(userID, productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return review, nil
}

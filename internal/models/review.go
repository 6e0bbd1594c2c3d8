package models

import "time"

// Review is one user's review of one product. At most one review exists per
// (user, product) pair; a second attempt is rejected, never merged. Its insert
// is the only trigger for recomputing the product's rating and review count.
type Review struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string    `json:"product_id" gorm:"index;uniqueIndex:idx_review_user_product;type:varchar(36)" validate:"required"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex:idx_review_user_product;type:varchar(36)" validate:"required"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Title     string    `json:"title" validate:"required,max=120"`
	Comment   string    `json:"comment" validate:"required,max=2000"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`

	// Reviewer display name joined on listing; other identity fields are
	// never exposed alongside a review.
	ReviewerName string `json:"reviewer_name,omitempty" gorm:"-"`
}

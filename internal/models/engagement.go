package models

import "time"

// ProductView is one counted view event. Views from the same identity
// (user if signed in, else session token, else the anonymous bucket) on the
// same product within one hour are not recorded again; the most recent prior
// event's creation time is the dedup reference.
type ProductView struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string    `json:"product_id" gorm:"index;type:varchar(36)"`
	UserID    *string   `json:"user_id,omitempty" gorm:"index;type:varchar(36)"`
	SessionID *string   `json:"session_id,omitempty" gorm:"type:varchar(64)"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductLike marks a product as liked by a user. Presence of the row means
// "liked"; at most one row exists per (user, product) pair and the product's
// likes counter moves in lockstep with inserts and deletes.
type ProductLike struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string    `json:"product_id" gorm:"index;uniqueIndex:idx_like_user_product;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex:idx_like_user_product;type:varchar(36)"`
	CreatedAt time.Time `json:"created_at"`
}

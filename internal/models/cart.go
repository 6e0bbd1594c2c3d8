package models

import "time"

// CartItem is one (user, product, version) selection and its quantity.
// At most one row exists per triple; adding the same triple again merges
// into the existing row's quantity. Rows are hard-deleted so the composite
// unique index stays accurate.
type CartItem struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID    string  `json:"user_id" gorm:"index;uniqueIndex:idx_cart_user_product_version;type:varchar(36)" validate:"required"`
	ProductID string  `json:"product_id" gorm:"uniqueIndex:idx_cart_user_product_version;type:varchar(36)" validate:"required"`
	Version   Version `json:"version" gorm:"uniqueIndex:idx_cart_user_product_version;type:varchar(16)" validate:"required,oneof=original ordinary"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`

	// Joined on cart listing; never persisted on this row.
	Product *Product `json:"product,omitempty" gorm:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

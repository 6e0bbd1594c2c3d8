package models

import "time"

// Newsletter is a subscription row, unique by email. Resubscribing an
// unsubscribed email flips the flag back on instead of creating a duplicate.
type Newsletter struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email       string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Subscribed  bool      `json:"subscribed" gorm:"index"`
	Preferences []string  `json:"preferences,omitempty" gorm:"serializer:json"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

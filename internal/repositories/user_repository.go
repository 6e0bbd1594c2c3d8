package repositories

import "velora/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	List() ([]models.User, error)
	Count() (int64, error)
}

// UserProfileRepository defines the interface for per-user admin state.
// ToggleAdmin upserts: a missing profile toggles on.
type UserProfileRepository interface {
	GetByUser(userID string) (*models.UserProfile, error)
	ToggleAdmin(userID string) (bool, error)
}

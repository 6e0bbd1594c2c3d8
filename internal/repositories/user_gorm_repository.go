package repositories

import (
	"errors"
	"fmt"

	"velora/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by username %s: %w", username, err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// List returns every user.
func (r *GORMUserRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Count returns the total number of users.
func (r *GORMUserRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// GORMUserProfileRepository is a GORM implementation of UserProfileRepository.
type GORMUserProfileRepository struct {
	db *gorm.DB
}

// NewGORMUserProfileRepository creates a new instance of GORMUserProfileRepository.
func NewGORMUserProfileRepository(db *gorm.DB) *GORMUserProfileRepository {
	return &GORMUserProfileRepository{
		db: db,
	}
}

// GetByUser returns the profile row for the user.
func (r *GORMUserProfileRepository) GetByUser(userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("profile for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile for user %s: %w", userID, err)
	}
	return &profile, nil
}

// ToggleAdmin flips the admin flag, inserting the profile row if missing.
func (r *GORMUserProfileRepository) ToggleAdmin(userID string) (bool, error) {
	isAdmin := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var profile models.UserProfile
		err := tx.First(&profile, "user_id = ?", userID).Error
		switch {
		case err == nil:
			profile.IsAdmin = !profile.IsAdmin
			if err := tx.Save(&profile).Error; err != nil {
				return fmt.Errorf("failed to toggle admin for user %s: %w", userID, err)
			}
			isAdmin = profile.IsAdmin
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			profile = models.UserProfile{
				ID:      uuid.New().String(),
				UserID:  userID,
				IsAdmin: true,
			}
			if err := tx.Create(&profile).Error; err != nil {
				return fmt.Errorf("failed to create profile for user %s: %w", userID, err)
			}
			isAdmin = true
			return nil
		default:
			return fmt.Errorf("failed to look up profile for user %s: %w", userID, err)
		}
	})
	if err != nil {
		return false, err
	}
	return isAdmin, nil
}

package services_test

import (
	"testing"

	"velora/internal/models"
	"velora/internal/repositories"
	"velora/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T, adminEmail string) (*services.AuthService, *repositories.MockUserRepository, *repositories.MockUserProfileRepository) {
	t.Helper()
	users := repositories.NewMockUserRepository()
	profiles := repositories.NewMockUserProfileRepository()
	return services.NewAuthService(users, profiles, "test-secret", adminEmail), users, profiles
}

func TestAuthService_RegisterUserHashesPassword(t *testing.T) {
	service, users, _ := newAuthFixture(t, "")

	user := &models.User{Username: "ada", Email: "ada@example.com", Password: "password123"}
	require.NoError(t, service.RegisterUser(user))

	stored, err := users.GetByUsername("ada")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password123")))
}

func TestAuthService_RegisterUserRejectsDuplicates(t *testing.T) {
	service, _, _ := newAuthFixture(t, "")

	require.NoError(t, service.RegisterUser(&models.User{Username: "ada", Email: "ada@example.com", Password: "password123"}))

	err := service.RegisterUser(&models.User{Username: "ada", Email: "other@example.com", Password: "password123"})
	assert.Error(t, err)

	err = service.RegisterUser(&models.User{Username: "other", Email: "ada@example.com", Password: "password123"})
	assert.Error(t, err)
}

func TestAuthService_LoginUser(t *testing.T) {
	service, _, _ := newAuthFixture(t, "")
	require.NoError(t, service.RegisterUser(&models.User{Username: "ada", Email: "ada@example.com", Password: "password123"}))

	token, err := service.LoginUser("ada", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ada", claims["username"])

	_, err = service.LoginUser("ada", "wrong-password")
	assert.Error(t, err)

	_, err = service.LoginUser("nobody", "password123")
	assert.Error(t, err)
}

func TestAuthService_ValidateTokenRejectsGarbage(t *testing.T) {
	service, _, _ := newAuthFixture(t, "")

	_, err := service.ValidateToken("not-a-token")
	assert.Error(t, err)

	// A token signed with a different secret must not validate.
	foreign := services.NewAuthService(repositories.NewMockUserRepository(), repositories.NewMockUserProfileRepository(), "other-secret", "")
	require.NoError(t, foreign.RegisterUser(&models.User{Username: "eve", Email: "eve@example.com", Password: "password123"}))
	token, err := foreign.LoginUser("eve", "password123")
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Error(t, err)
}

func TestAuthService_GetUserScrubsPassword(t *testing.T) {
	service, users, _ := newAuthFixture(t, "")
	require.NoError(t, service.RegisterUser(&models.User{Username: "ada", Email: "ada@example.com", Password: "password123"}))

	stored, err := users.GetByUsername("ada")
	require.NoError(t, err)

	user, err := service.GetUser(stored.ID)
	require.NoError(t, err)
	assert.Empty(t, user.Password)

	_, err = service.GetUser("no-such-user")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestAuthService_IsAdmin(t *testing.T) {
	service, users, profiles := newAuthFixture(t, "admin@example.com")

	admin := &models.User{Username: "root", Email: "admin@example.com", Password: "hash"}
	require.NoError(t, users.Create(admin))
	regular := &models.User{Username: "ada", Email: "ada@example.com", Password: "hash"}
	require.NoError(t, users.Create(regular))

	// Configured admin email grants the role with no profile row.
	isAdmin, err := service.IsAdmin(admin.ID)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = service.IsAdmin(regular.ID)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	// The profile flag grants the role too, and revoking it is effective on
	// the very next check.
	_, err = profiles.ToggleAdmin(regular.ID)
	require.NoError(t, err)
	isAdmin, err = service.IsAdmin(regular.ID)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	_, err = profiles.ToggleAdmin(regular.ID)
	require.NoError(t, err)
	isAdmin, err = service.IsAdmin(regular.ID)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	// Unauthenticated and unknown identities are not admins, never errors.
	isAdmin, err = service.IsAdmin("")
	require.NoError(t, err)
	assert.False(t, isAdmin)
	isAdmin, err = service.IsAdmin("no-such-user")
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

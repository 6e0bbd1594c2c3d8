package services_test

import (
	"testing"

	"velora/internal/models"
	"velora/internal/repositories"
	"velora/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adminFixture struct {
	admin      *services.AdminService
	orders     *services.OrderService
	engagement *services.EngagementService
	products   *repositories.MockProductRepository
	carts      *repositories.MockCartRepository
	users      *repositories.MockUserRepository
	profiles   *repositories.MockUserProfileRepository
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	products := repositories.NewMockProductRepository()
	carts := repositories.NewMockCartRepository()
	orderRepo := repositories.NewMockOrderRepository(carts, products)
	engagementRepo := repositories.NewMockEngagementRepository(products)
	users := repositories.NewMockUserRepository()
	profiles := repositories.NewMockUserProfileRepository()
	return &adminFixture{
		admin:      services.NewAdminService(products, users, profiles, orderRepo, engagementRepo),
		orders:     services.NewOrderService(orderRepo, users, nil),
		engagement: services.NewEngagementService(engagementRepo),
		products:   products,
		carts:      carts,
		users:      users,
		profiles:   profiles,
	}
}

func (f *adminFixture) placeOrder(t *testing.T, userID string, product *models.Product, version models.Version, qty int) *models.Order {
	t.Helper()
	_, err := f.carts.Add(userID, product.ID, version, qty)
	require.NoError(t, err)
	order, err := f.orders.CreateOrder(userID, testShipping())
	require.NoError(t, err)
	return order
}

func TestAdminService_DashboardStats(t *testing.T) {
	f := newAdminFixture(t)

	user := &models.User{Username: "ada", Email: "ada@example.com", Password: "hash"}
	require.NoError(t, f.users.Create(user))

	serum := seedOrderProduct(t, f.products, "Serum", 30, 12)
	balm := seedOrderProduct(t, f.products, "Balm", 18, 7)

	f.placeOrder(t, user.ID, serum, models.VersionOriginal, 2)  // 60
	cancelled := f.placeOrder(t, user.ID, balm, models.VersionOrdinary, 1) // 7
	require.NoError(t, f.orders.UpdateOrderStatus(cancelled.ID, models.OrderStatusCancelled))

	_, err := f.engagement.RecordView(serum.ID, user.ID, "")
	require.NoError(t, err)
	_, err = f.engagement.RecordView(serum.ID, "", "sess-1")
	require.NoError(t, err)
	_, err = f.engagement.ToggleLike(serum.ID, user.ID)
	require.NoError(t, err)

	stats, err := f.admin.GetDashboardStats()
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalProducts)
	assert.Equal(t, int64(1), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.TotalOrders)
	// Revenue counts every order, cancelled included.
	assert.InDelta(t, 67, stats.TotalRevenue, 1e-9)
	assert.Equal(t, int64(1), stats.OrderStatusCounts[models.OrderStatusPending])
	assert.Equal(t, int64(1), stats.OrderStatusCounts[models.OrderStatusCancelled])
	assert.Equal(t, int64(0), stats.OrderStatusCounts[models.OrderStatusShipped])
	assert.Len(t, stats.RecentOrders, 2)
	assert.Equal(t, int64(2), stats.ProductViews)
	assert.Equal(t, int64(1), stats.ProductLikes)
}

func TestAdminService_DashboardRecentOrdersCapped(t *testing.T) {
	f := newAdminFixture(t)
	serum := seedOrderProduct(t, f.products, "Serum", 30, 12)

	for i := 0; i < 7; i++ {
		f.placeOrder(t, "user-1", serum, models.VersionOrdinary, 1)
	}

	stats, err := f.admin.GetDashboardStats()
	require.NoError(t, err)
	assert.Equal(t, int64(7), stats.TotalOrders)
	assert.Len(t, stats.RecentOrders, 5)
}

func TestAdminService_ListUsers(t *testing.T) {
	f := newAdminFixture(t)

	user := &models.User{Username: "ada", Email: "ada@example.com", Password: "hash"}
	require.NoError(t, f.users.Create(user))

	serum := seedOrderProduct(t, f.products, "Serum", 30, 12)
	f.placeOrder(t, user.ID, serum, models.VersionOriginal, 1)

	_, err := f.profiles.ToggleAdmin(user.ID)
	require.NoError(t, err)

	users, err := f.admin.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Empty(t, users[0].Password)
	assert.Equal(t, int64(1), users[0].OrderCount)
	require.NotNil(t, users[0].Profile)
	assert.True(t, users[0].Profile.IsAdmin)
}

func TestAdminService_ToggleUserAdmin(t *testing.T) {
	f := newAdminFixture(t)

	// First toggle inserts the profile row with the flag on.
	isAdmin, err := f.admin.ToggleUserAdmin("user-1")
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = f.admin.ToggleUserAdmin("user-1")
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

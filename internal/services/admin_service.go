package services

import (
	"velora/internal/models"
	"velora/internal/repositories"
)

// DashboardStats is the read-only rollup shown on the admin dashboard.
// Revenue sums totalAmount across every order regardless of status,
// cancelled included.
type DashboardStats struct {
	TotalProducts     int64                        `json:"total_products"`
	TotalUsers        int64                        `json:"total_users"`
	TotalOrders       int64                        `json:"total_orders"`
	TotalRevenue      float64                      `json:"total_revenue"`
	RecentOrders      []models.Order               `json:"recent_orders"`
	OrderStatusCounts map[models.OrderStatus]int64 `json:"order_status_counts"`
	ProductViews      int64                        `json:"product_views"`
	ProductLikes      int64                        `json:"product_likes"`
}

// AdminService computes administrative rollups and manages user roles.
// These are batch/report-style reads over the full collections, not hot paths.
type AdminService struct {
	productRepo    repositories.ProductRepository
	userRepo       repositories.UserRepository
	profileRepo    repositories.UserProfileRepository
	orderRepo      repositories.OrderRepository
	engagementRepo repositories.EngagementRepository
}

// NewAdminService creates a new AdminService.
func NewAdminService(
	productRepo repositories.ProductRepository,
	userRepo repositories.UserRepository,
	profileRepo repositories.UserProfileRepository,
	orderRepo repositories.OrderRepository,
	engagementRepo repositories.EngagementRepository,
) *AdminService {
	return &AdminService{
		productRepo:    productRepo,
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		orderRepo:      orderRepo,
		engagementRepo: engagementRepo,
	}
}

// GetDashboardStats aggregates counts, revenue, a recent-orders sample and a
// status breakdown over the current store state.
func (s *AdminService) GetDashboardStats() (*DashboardStats, error) {
	totalProducts, err := s.productRepo.Count()
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.ListAll()
	if err != nil {
		return nil, err
	}

	statusCounts := map[models.OrderStatus]int64{
		models.OrderStatusPending:   0,
		models.OrderStatusConfirmed: 0,
		models.OrderStatusShipped:   0,
		models.OrderStatusDelivered: 0,
		models.OrderStatusCancelled: 0,
	}
	var totalRevenue float64
	for _, order := range orders {
		totalRevenue += order.TotalAmount
		statusCounts[order.Status]++
	}

	recent := orders
	if len(recent) > 5 {
		recent = recent[:5] // ListAll is already most-recent first
	}

	views, err := s.engagementRepo.CountViews()
	if err != nil {
		return nil, err
	}
	likes, err := s.engagementRepo.CountLikes()
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalProducts:     totalProducts,
		TotalUsers:        totalUsers,
		TotalOrders:       int64(len(orders)),
		TotalRevenue:      totalRevenue,
		RecentOrders:      recent,
		OrderStatusCounts: statusCounts,
		ProductViews:      views,
		ProductLikes:      likes,
	}, nil
}

// ListUsers returns every user joined with their profile and order count,
// password hashes scrubbed.
func (s *AdminService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
		if profile, err := s.profileRepo.GetByUser(users[i].ID); err == nil {
			users[i].Profile = profile
		}
		count, err := s.orderRepo.CountByUser(users[i].ID)
		if err != nil {
			return nil, err
		}
		users[i].OrderCount = count
	}
	return users, nil
}

// ToggleUserAdmin flips the target user's admin flag and returns the new state.
func (s *AdminService) ToggleUserAdmin(targetUserID string) (bool, error) {
	return s.profileRepo.ToggleAdmin(targetUserID)
}

package handlers

import (
	"log"

	"velora/internal/middleware"
	"velora/internal/models"
	"velora/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles administrative HTTP requests: the dashboard, order
// management and user role management.
type AdminHandler struct {
	adminService *services.AdminService
	orderService *services.OrderService
	authService  *services.AuthService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService *services.AdminService, orderService *services.OrderService, authService *services.AuthService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		orderService: orderService,
		authService:  authService,
	}
}

// RegisterRoutes registers the admin routes with the Fiber app.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	admin := router.Group("/admin",
		middleware.AuthRequired(h.authService),
		middleware.AdminRequired(h.authService),
	)
	admin.Get("/stats", h.HandleDashboardStats)
	admin.Get("/orders", h.HandleListAllOrders)
	admin.Patch("/orders/:id/status", h.HandleUpdateOrderStatus)
	admin.Get("/users", h.HandleListUsers)
	admin.Post("/users/:id/toggle-admin", h.HandleToggleUserAdmin)
}

// HandleDashboardStats returns the dashboard rollups.
func (h *AdminHandler) HandleDashboardStats(c *fiber.Ctx) error {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		log.Printf("Error computing dashboard stats: %v", err)
		return serviceError(c, "Could not compute dashboard stats", err)
	}
	return c.JSON(stats)
}

// HandleListAllOrders returns every order joined with its user.
func (h *AdminHandler) HandleListAllOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.ListAllOrders()
	if err != nil {
		log.Printf("Error listing all orders: %v", err)
		return serviceError(c, "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}

// UpdateOrderStatusRequest represents the request body for a status change.
type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// HandleUpdateOrderStatus sets an order's status to any of the five states.
func (h *AdminHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing status update request body: %v", err)
		return badRequest(c, err)
	}
	if req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required for order status update.",
		})
	}

	if err := h.orderService.UpdateOrderStatus(c.Params("id"), req.Status); err != nil {
		log.Printf("Error updating order status for order %s: %v", c.Params("id"), err)
		return serviceError(c, "Could not update order status", err)
	}
	return c.JSON(fiber.Map{
		"message": "Order status updated",
		"status":  req.Status,
	})
}

// HandleListUsers returns every user with profile and order count.
func (h *AdminHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.adminService.ListUsers()
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return serviceError(c, "Could not retrieve users", err)
	}
	return c.JSON(users)
}

// HandleToggleUserAdmin flips the target user's admin flag.
func (h *AdminHandler) HandleToggleUserAdmin(c *fiber.Ctx) error {
	isAdmin, err := h.adminService.ToggleUserAdmin(c.Params("id"))
	if err != nil {
		log.Printf("Error toggling admin for user %s: %v", c.Params("id"), err)
		return serviceError(c, "Could not toggle admin role", err)
	}
	return c.JSON(fiber.Map{
		"is_admin": isAdmin,
	})
}

package handlers

import (
	"log"

	"velora/internal/middleware"
	"velora/internal/services"

	"github.com/gofiber/fiber/v2"
)

// EngagementHandler handles HTTP requests for view tracking and likes.
type EngagementHandler struct {
	service     *services.EngagementService
	authService *services.AuthService
}

// NewEngagementHandler creates a new EngagementHandler.
func NewEngagementHandler(service *services.EngagementService, authService *services.AuthService) *EngagementHandler {
	return &EngagementHandler{
		service:     service,
		authService: authService,
	}
}

// RegisterRoutes registers the engagement routes with the Fiber app.
func (h *EngagementHandler) RegisterRoutes(router fiber.Router) {
	products := router.Group("/products")
	products.Post("/:id/views", middleware.OptionalAuth(h.authService), h.HandleRecordView)
	products.Post("/:id/likes/toggle", middleware.AuthRequired(h.authService), h.HandleToggleLike)
	products.Get("/:id/liked", middleware.OptionalAuth(h.authService), h.HandleIsLiked)
}

// RecordViewRequest carries the optional session token for anonymous viewers.
type RecordViewRequest struct {
	SessionID string `json:"session_id"`
}

// HandleRecordView records a product view for the caller's identity.
func (h *EngagementHandler) HandleRecordView(c *fiber.Ctx) error {
	var req RecordViewRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			log.Printf("Error parsing record view request body: %v", err)
			return badRequest(c, err)
		}
	}

	counted, err := h.service.RecordView(c.Params("id"), middleware.UserID(c), req.SessionID)
	if err != nil {
		log.Printf("Error recording view for product %s: %v", c.Params("id"), err)
		return serviceError(c, "Could not record view", err)
	}
	return c.JSON(fiber.Map{
		"counted": counted,
	})
}

// HandleToggleLike flips the caller's like on the product.
func (h *EngagementHandler) HandleToggleLike(c *fiber.Ctx) error {
	liked, err := h.service.ToggleLike(c.Params("id"), middleware.UserID(c))
	if err != nil {
		log.Printf("Error toggling like for product %s: %v", c.Params("id"), err)
		return serviceError(c, "Could not toggle like", err)
	}
	return c.JSON(fiber.Map{
		"liked": liked,
	})
}

// HandleIsLiked reports whether the caller has liked the product; always
// false for anonymous callers.
func (h *EngagementHandler) HandleIsLiked(c *fiber.Ctx) error {
	liked, err := h.service.IsLiked(c.Params("id"), middleware.UserID(c))
	if err != nil {
		log.Printf("Error checking like for product %s: %v", c.Params("id"), err)
		return serviceError(c, "Could not check like", err)
	}
	return c.JSON(fiber.Map{
		"liked": liked,
	})
}

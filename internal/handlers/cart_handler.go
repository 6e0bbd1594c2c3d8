package handlers

import (
	"log"

	"velora/internal/middleware"
	"velora/internal/models"
	"velora/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the shopping cart.
type CartHandler struct {
	service     *services.CartService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService, authService *services.AuthService) *CartHandler {
	return &CartHandler{
		service:     service,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cart := router.Group("/cart", middleware.AuthRequired(h.authService))
	cart.Get("/", h.HandleListCart)
	cart.Post("/items", h.HandleAddToCart)
	cart.Patch("/items/:id", h.HandleSetQuantity)
	cart.Delete("/items/:id", h.HandleRemoveFromCart)
}

// HandleListCart returns the caller's cart lines joined with their products.
func (h *CartHandler) HandleListCart(c *fiber.Ctx) error {
	items, err := h.service.ListCart(c.UserContext(), middleware.UserID(c))
	if err != nil {
		log.Printf("Error listing cart: %v", err)
		return serviceError(c, "Could not retrieve cart", err)
	}
	return c.JSON(items)
}

// AddToCartRequest represents the request body for adding a cart line.
type AddToCartRequest struct {
	ProductID string         `json:"product_id" validate:"required"`
	Version   models.Version `json:"version" validate:"required,oneof=original ordinary"`
	Quantity  int            `json:"quantity" validate:"required,gt=0"`
}

// HandleAddToCart merges the requested quantity into the caller's cart.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add to cart request body: %v", err)
		return badRequest(c, err)
	}

	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	item, err := h.service.AddToCart(middleware.UserID(c), req.ProductID, req.Version, req.Quantity)
	if err != nil {
		log.Printf("Error adding to cart: %v", err)
		return serviceError(c, "Could not add to cart", err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// SetQuantityRequest represents the request body for a quantity patch.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// HandleSetQuantity patches a cart line's quantity; zero or below removes it.
func (h *CartHandler) HandleSetQuantity(c *fiber.Ctx) error {
	var req SetQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing set quantity request body: %v", err)
		return badRequest(c, err)
	}

	if err := h.service.SetQuantity(middleware.UserID(c), c.Params("id"), req.Quantity); err != nil {
		log.Printf("Error setting cart quantity: %v", err)
		return serviceError(c, "Could not update cart item", err)
	}
	return c.JSON(fiber.Map{
		"message": "Cart item updated",
	})
}

// HandleRemoveFromCart deletes one of the caller's cart lines.
func (h *CartHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	if err := h.service.RemoveFromCart(middleware.UserID(c), c.Params("id")); err != nil {
		log.Printf("Error removing cart item: %v", err)
		return serviceError(c, "Could not remove cart item", err)
	}
	return c.JSON(fiber.Map{
		"message": "Cart item removed",
	})
}

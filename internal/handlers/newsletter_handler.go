package handlers

import (
	"log"

	"velora/internal/middleware"
	"velora/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// NewsletterHandler handles HTTP requests for newsletter subscriptions.
type NewsletterHandler struct {
	service     *services.NewsletterService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewNewsletterHandler creates a new NewsletterHandler.
func NewNewsletterHandler(service *services.NewsletterService, authService *services.AuthService) *NewsletterHandler {
	return &NewsletterHandler{
		service:     service,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the newsletter routes with the Fiber app.
func (h *NewsletterHandler) RegisterRoutes(router fiber.Router) {
	newsletter := router.Group("/newsletter")
	newsletter.Post("/subscribe", h.HandleSubscribe)
	newsletter.Post("/unsubscribe", h.HandleUnsubscribe)
	newsletter.Get("/subscribers",
		middleware.AuthRequired(h.authService),
		middleware.AdminRequired(h.authService),
		h.HandleListSubscribers,
	)
}

// SubscribeRequest represents the request body for subscribing.
type SubscribeRequest struct {
	Email       string   `json:"email" validate:"required,email"`
	Preferences []string `json:"preferences"`
}

// HandleSubscribe subscribes the email, resubscribing if it was unsubscribed.
func (h *NewsletterHandler) HandleSubscribe(c *fiber.Ctx) error {
	var req SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing subscribe request body: %v", err)
		return badRequest(c, err)
	}

	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	sub, err := h.service.Subscribe(req.Email, req.Preferences)
	if err != nil {
		log.Printf("Error subscribing %s: %v", req.Email, err)
		return serviceError(c, "Could not subscribe", err)
	}
	return c.Status(fiber.StatusCreated).JSON(sub)
}

// UnsubscribeRequest represents the request body for unsubscribing.
type UnsubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleUnsubscribe flips the subscription off; unknown addresses succeed.
func (h *NewsletterHandler) HandleUnsubscribe(c *fiber.Ctx) error {
	var req UnsubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing unsubscribe request body: %v", err)
		return badRequest(c, err)
	}

	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	if err := h.service.Unsubscribe(req.Email); err != nil {
		log.Printf("Error unsubscribing %s: %v", req.Email, err)
		return serviceError(c, "Could not unsubscribe", err)
	}
	return c.JSON(fiber.Map{
		"message": "Unsubscribed",
	})
}

// HandleListSubscribers returns every currently subscribed row.
func (h *NewsletterHandler) HandleListSubscribers(c *fiber.Ctx) error {
	subs, err := h.service.ListSubscribers()
	if err != nil {
		log.Printf("Error listing subscribers: %v", err)
		return serviceError(c, "Could not retrieve subscribers", err)
	}
	return c.JSON(subs)
}

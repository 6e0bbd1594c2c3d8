package handlers

import (
	"log"

	"velora/internal/middleware"
	"velora/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles HTTP requests for product reviews.
type ReviewHandler struct {
	service     *services.ReviewService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService, authService *services.AuthService) *ReviewHandler {
	return &ReviewHandler{
		service:     service,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the review routes with the Fiber app.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	products := router.Group("/products")
	products.Get("/:id/reviews", h.HandleListReviews)
	products.Get("/:id/reviews/me", middleware.OptionalAuth(h.authService), h.HandleGetOwnReview)
	products.Post("/:id/reviews", middleware.AuthRequired(h.authService), h.HandleAddReview)
}

// AddReviewRequest represents the request body for posting a review.
type AddReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Title   string `json:"title" validate:"required,max=120"`
	Comment string `json:"comment" validate:"required,max=2000"`
}

// HandleAddReview posts the caller's review of the product.
func (h *ReviewHandler) HandleAddReview(c *fiber.Ctx) error {
	var req AddReviewRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add review request body: %v", err)
		return badRequest(c, err)
	}

	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	review, err := h.service.AddReview(middleware.UserID(c), c.Params("id"), req.Rating, req.Title, req.Comment)
	if err != nil {
		log.Printf("Error adding review for product %s: %v", c.Params("id"), err)
		return serviceError(c, "Could not add review", err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// HandleListReviews returns the product's reviews, most recent first.
func (h *ReviewHandler) HandleListReviews(c *fiber.Ctx) error {
	reviews, err := h.service.ListReviews(c.Params("id"))
	if err != nil {
		log.Printf("Error listing reviews for product %s: %v", c.Params("id"), err)
		return serviceError(c, "Could not retrieve reviews", err)
	}
	return c.JSON(reviews)
}

// HandleGetOwnReview returns the caller's review of the product, null when
// anonymous or not yet reviewed.
func (h *ReviewHandler) HandleGetOwnReview(c *fiber.Ctx) error {
	review, err := h.service.GetOwnReview(middleware.UserID(c), c.Params("id"))
	if err != nil {
		log.Printf("Error getting own review for product %s: %v", c.Params("id"), err)
		return serviceError(c, "Could not retrieve review", err)
	}
	return c.JSON(fiber.Map{
		"review": review,
	})
}

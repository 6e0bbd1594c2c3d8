package handlers

import (
	"log"

	"velora/internal/middleware"
	"velora/internal/models"
	"velora/internal/repositories"
	"velora/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles HTTP requests for the product catalog.
type CatalogHandler struct {
	service     *services.CatalogService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService, authService *services.AuthService) *CatalogHandler {
	return &CatalogHandler{
		service:     service,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	admin := []fiber.Handler{
		middleware.AuthRequired(h.authService),
		middleware.AdminRequired(h.authService),
	}

	products := router.Group("/products")
	products.Get("/", h.HandleListProducts)
	products.Get("/search", h.HandleSearchProducts)
	products.Post("/upload-url", append(admin, h.HandleGenerateUploadTarget)...)
	products.Post("/", append(admin, h.HandleCreateProduct)...)
	products.Get("/:id", h.HandleGetProduct)
	products.Patch("/:id", append(admin, h.HandleUpdateProduct)...)
}

func categoryQuery(c *fiber.Ctx) *models.Category {
	raw := c.Query("category")
	if raw == "" {
		return nil
	}
	category := models.Category(raw)
	return &category
}

// HandleListProducts lists products, optionally filtered by category or one
// of the featured/new-arrival/coming-soon flags.
func (h *CatalogHandler) HandleListProducts(c *fiber.Ctx) error {
	filter := repositories.ProductFilter{
		Category:   categoryQuery(c),
		Featured:   c.QueryBool("featured"),
		NewArrival: c.QueryBool("new_arrival"),
		ComingSoon: c.QueryBool("coming_soon"),
	}

	products, err := h.service.ListProducts(c.UserContext(), filter)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return serviceError(c, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleSearchProducts matches the search term against product names.
func (h *CatalogHandler) HandleSearchProducts(c *fiber.Ctx) error {
	term := c.Query("q")
	if term == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Query parameter 'q' is required.",
		})
	}

	products, err := h.service.SearchProducts(c.UserContext(), term, categoryQuery(c))
	if err != nil {
		log.Printf("Error searching products for %q: %v", term, err)
		return serviceError(c, "Could not search products", err)
	}
	return c.JSON(products)
}

// HandleGetProduct returns a single product. Absence is a valid outcome and
// renders as 404 with a null product rather than an error payload.
func (h *CatalogHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		log.Printf("Error getting product %s: %v", c.Params("id"), err)
		return serviceError(c, "Could not retrieve product", err)
	}
	if product == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"product": nil,
		})
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new catalog product.
func (h *CatalogHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing create product request body: %v", err)
		return badRequest(c, err)
	}

	if err := h.validate.Struct(product); err != nil {
		return validationError(c, err)
	}

	if err := h.service.CreateProduct(c.UserContext(), &product); err != nil {
		log.Printf("Error creating product: %v", err)
		return serviceError(c, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct updates stock, flags, prices or copy on a product.
func (h *CatalogHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing update product request body: %v", err)
		return badRequest(c, err)
	}
	product.ID = c.Params("id")

	if err := h.validate.Struct(product); err != nil {
		return validationError(c, err)
	}

	if err := h.service.UpdateProduct(c.UserContext(), &product); err != nil {
		log.Printf("Error updating product %s: %v", product.ID, err)
		return serviceError(c, "Could not update product", err)
	}
	return c.JSON(product)
}

// HandleGenerateUploadTarget returns an opaque blob store write handle for a
// product image upload.
func (h *CatalogHandler) HandleGenerateUploadTarget(c *fiber.Ctx) error {
	target, err := h.service.GenerateUploadTarget(c.UserContext())
	if err != nil {
		log.Printf("Error generating upload target: %v", err)
		return serviceError(c, "Could not generate upload target", err)
	}
	return c.JSON(target)
}

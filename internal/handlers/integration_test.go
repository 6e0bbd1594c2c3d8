package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"velora/internal/handlers"
	"velora/internal/models"
	"velora/internal/repositories"
	"velora/internal/services"
	"velora/pkg/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testAdminEmail = "admin@example.com"

// newTestApp wires the full HTTP stack against an in-memory SQLite database,
// the in-memory blob store and no message broker.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.ProductView{},
		&models.ProductLike{},
		&models.Review{},
		&models.Newsletter{},
	))

	productRepo := repositories.NewGORMProductRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	engagementRepo := repositories.NewGORMEngagementRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)
	newsletterRepo := repositories.NewGORMNewsletterRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	profileRepo := repositories.NewGORMUserProfileRepository(db)

	authService := services.NewAuthService(userRepo, profileRepo, "test-secret", testAdminEmail)
	catalogService := services.NewCatalogService(productRepo, storage.NewMemoryStore())
	cartService := services.NewCartService(cartRepo, catalogService)
	orderService := services.NewOrderService(orderRepo, userRepo, nil)
	engagementService := services.NewEngagementService(engagementRepo)
	reviewService := services.NewReviewService(reviewRepo, userRepo)
	newsletterService := services.NewNewsletterService(newsletterRepo)
	adminService := services.NewAdminService(productRepo, userRepo, profileRepo, orderRepo, engagementRepo)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)
	handlers.NewCatalogHandler(catalogService, authService).RegisterRoutes(apiV1)
	handlers.NewCartHandler(cartService, authService).RegisterRoutes(apiV1)
	handlers.NewOrderHandler(orderService, authService).RegisterRoutes(apiV1)
	handlers.NewEngagementHandler(engagementService, authService).RegisterRoutes(apiV1)
	handlers.NewReviewHandler(reviewService, authService).RegisterRoutes(apiV1)
	handlers.NewNewsletterHandler(newsletterService, authService).RegisterRoutes(apiV1)
	handlers.NewAdminHandler(adminService, orderService, authService).RegisterRoutes(apiV1)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// registerAndLogin creates a user and returns a bearer token for them.
func registerAndLogin(t *testing.T, app *fiber.App, username, email string) string {
	t.Helper()

	resp := doRequest(t, app, fiber.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"username": username,
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, fiber.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var login struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &login)
	require.NotEmpty(t, login.Token)
	return login.Token
}

func createProduct(t *testing.T, app *fiber.App, adminToken, name string, original, ordinary float64) models.Product {
	t.Helper()

	resp := doRequest(t, app, fiber.MethodPost, "/api/v1/products", adminToken, fiber.Map{
		"name":           name,
		"category":       "skincare",
		"original_price": original,
		"ordinary_price": ordinary,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var product models.Product
	decodeBody(t, resp, &product)
	require.NotEmpty(t, product.ID)
	return product
}

func TestAuthEndpoints(t *testing.T) {
	app := newTestApp(t)

	token := registerAndLogin(t, app, "ada", "ada@example.com")

	resp := doRequest(t, app, fiber.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var me models.User
	decodeBody(t, resp, &me)
	assert.Equal(t, "ada", me.Username)
	assert.Empty(t, me.Password)

	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Duplicate registration conflicts.
	resp = doRequest(t, app, fiber.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"username": "ada",
		"email":    "elsewhere@example.com",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, fiber.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"username": "ada",
		"password": "wrong-password",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestCatalogEndpoints(t *testing.T) {
	app := newTestApp(t)
	adminToken := registerAndLogin(t, app, "root", testAdminEmail)
	userToken := registerAndLogin(t, app, "ada", "ada@example.com")

	// Only admins may write to the catalog.
	resp := doRequest(t, app, fiber.MethodPost, "/api/v1/products", userToken, fiber.Map{
		"name": "Serum", "category": "skincare",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	product := createProduct(t, app, adminToken, "Rose Serum", 30, 12)
	assert.True(t, product.InStock)

	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/products", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var listed []models.Product
	decodeBody(t, resp, &listed)
	require.Len(t, listed, 1)

	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/products/search?q=rose", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var found []models.Product
	decodeBody(t, resp, &found)
	require.Len(t, found, 1)
	assert.Equal(t, "Rose Serum", found[0].Name)

	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/products/search", "", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Absence renders as 404 with a null product.
	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/products/no-such-id", "", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	var missing struct {
		Product *models.Product `json:"product"`
	}
	decodeBody(t, resp, &missing)
	assert.Nil(t, missing.Product)

	// Admin can patch flags and prices.
	resp = doRequest(t, app, fiber.MethodPatch, "/api/v1/products/"+product.ID, adminToken, fiber.Map{
		"name":           product.Name,
		"category":       "skincare",
		"original_price": 27.0,
		"ordinary_price": 12.0,
		"featured":       true,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/products?featured=true", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var featured []models.Product
	decodeBody(t, resp, &featured)
	require.Len(t, featured, 1)
	assert.InDelta(t, 27, featured[0].OriginalPrice, 1e-9)

	resp = doRequest(t, app, fiber.MethodPost, "/api/v1/products/upload-url", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var target storage.UploadTarget
	decodeBody(t, resp, &target)
	assert.NotEmpty(t, target.Ref)
	assert.NotEmpty(t, target.URL)
}

func TestCartAndCheckoutFlow(t *testing.T) {
	app := newTestApp(t)
	adminToken := registerAndLogin(t, app, "root", testAdminEmail)
	userToken := registerAndLogin(t, app, "ada", "ada@example.com")

	serum := createProduct(t, app, adminToken, "Serum", 30, 12)
	balm := createProduct(t, app, adminToken, "Balm", 18, 7)

	// Empty-cart checkout is rejected before anything is written.
	resp := doRequest(t, app, fiber.MethodPost, "/api/v1/orders", userToken, fiber.Map{
		"shipping_address": testShippingJSON(),
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	addToCart := func(productID, version string, qty int) {
		resp := doRequest(t, app, fiber.MethodPost, "/api/v1/cart/items", userToken, fiber.Map{
			"product_id": productID,
			"version":    version,
			"quantity":   qty,
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	addToCart(serum.ID, "original", 1)
	addToCart(serum.ID, "original", 1) // merges into the same line
	addToCart(balm.ID, "ordinary", 1)

	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/cart", userToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var cart []models.CartItem
	decodeBody(t, resp, &cart)
	require.Len(t, cart, 2)

	resp = doRequest(t, app, fiber.MethodPost, "/api/v1/orders", userToken, fiber.Map{
		"shipping_address": testShippingJSON(),
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var order models.Order
	decodeBody(t, resp, &order)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 2)
	assert.InDelta(t, 2*30+1*7, order.TotalAmount, 1e-9)

	// The same operation cleared the cart.
	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/cart", userToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &cart)
	assert.Empty(t, cart)

	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/orders", userToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var orders []models.Order
	decodeBody(t, resp, &orders)
	require.Len(t, orders, 1)

	// Another user cannot read the order.
	otherToken := registerAndLogin(t, app, "eve", "eve@example.com")
	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/orders/"+order.ID, otherToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/orders/"+order.ID, userToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got models.Order
	decodeBody(t, resp, &got)
	assert.Equal(t, order.ID, got.ID)
}

func TestEngagementAndReviewEndpoints(t *testing.T) {
	app := newTestApp(t)
	adminToken := registerAndLogin(t, app, "root", testAdminEmail)
	userToken := registerAndLogin(t, app, "ada", "ada@example.com")

	product := createProduct(t, app, adminToken, "Serum", 30, 12)

	recordView := func(token string, body interface{}) bool {
		resp := doRequest(t, app, fiber.MethodPost, "/api/v1/products/"+product.ID+"/views", token, body)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var out struct {
			Counted bool `json:"counted"`
		}
		decodeBody(t, resp, &out)
		return out.Counted
	}

	// First view counts, the repeat inside the window does not; a different
	// identity counts on its own.
	assert.True(t, recordView(userToken, nil))
	assert.False(t, recordView(userToken, nil))
	assert.True(t, recordView("", fiber.Map{"session_id": "sess-1"}))

	// Like toggling requires auth and flips state.
	resp := doRequest(t, app, fiber.MethodPost, "/api/v1/products/"+product.ID+"/likes/toggle", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	toggleLike := func() bool {
		resp := doRequest(t, app, fiber.MethodPost, "/api/v1/products/"+product.ID+"/likes/toggle", userToken, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var out struct {
			Liked bool `json:"liked"`
		}
		decodeBody(t, resp, &out)
		return out.Liked
	}
	assert.True(t, toggleLike())
	assert.False(t, toggleLike())
	assert.True(t, toggleLike())

	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/products/"+product.ID+"/liked", userToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var likedOut struct {
		Liked bool `json:"liked"`
	}
	decodeBody(t, resp, &likedOut)
	assert.True(t, likedOut.Liked)

	// Post a review, then verify the duplicate is rejected and the product
	// rollup reflects the accepted one.
	resp = doRequest(t, app, fiber.MethodPost, "/api/v1/products/"+product.ID+"/reviews", userToken, fiber.Map{
		"rating": 4, "title": "Good", "comment": "Solid",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, fiber.MethodPost, "/api/v1/products/"+product.ID+"/reviews", userToken, fiber.Map{
		"rating": 1, "title": "Changed", "comment": "Mind",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/products/"+product.ID+"/reviews", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var reviews []models.Review
	decodeBody(t, resp, &reviews)
	require.Len(t, reviews, 1)
	assert.Equal(t, "ada", reviews[0].ReviewerName)

	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/products/"+product.ID, "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got models.Product
	decodeBody(t, resp, &got)
	assert.Equal(t, 2, got.Views)
	assert.Equal(t, 1, got.Likes)
	require.NotNil(t, got.Rating)
	assert.InDelta(t, 4, *got.Rating, 1e-9)
	assert.Equal(t, 1, got.ReviewCount)

	// Ratings outside 1..5 never reach the store.
	resp = doRequest(t, app, fiber.MethodPost, "/api/v1/products/"+product.ID+"/reviews", adminToken, fiber.Map{
		"rating": 6, "title": "Too good", "comment": "Off the scale",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminEndpoints(t *testing.T) {
	app := newTestApp(t)
	adminToken := registerAndLogin(t, app, "root", testAdminEmail)
	userToken := registerAndLogin(t, app, "ada", "ada@example.com")

	product := createProduct(t, app, adminToken, "Serum", 30, 12)

	resp := doRequest(t, app, fiber.MethodPost, "/api/v1/cart/items", userToken, fiber.Map{
		"product_id": product.ID, "version": "original", "quantity": 2,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	resp = doRequest(t, app, fiber.MethodPost, "/api/v1/orders", userToken, fiber.Map{
		"shipping_address": testShippingJSON(),
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var order models.Order
	decodeBody(t, resp, &order)

	// Non-admins are shut out of the whole group.
	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/admin/stats", userToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/admin/stats", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var stats services.DashboardStats
	decodeBody(t, resp, &stats)
	assert.Equal(t, int64(1), stats.TotalOrders)
	assert.InDelta(t, 60, stats.TotalRevenue, 1e-9)

	resp = doRequest(t, app, fiber.MethodPatch, "/api/v1/admin/orders/"+order.ID+"/status", adminToken, fiber.Map{
		"status": "shipped",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, fiber.MethodPatch, "/api/v1/admin/orders/"+order.ID+"/status", adminToken, fiber.Map{
		"status": "misplaced",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/admin/orders", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var orders []models.Order
	decodeBody(t, resp, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, models.OrderStatusShipped, orders[0].Status)
	require.NotNil(t, orders[0].User)
	assert.Equal(t, "ada", orders[0].User.Username)

	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/admin/users", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var users []models.User
	decodeBody(t, resp, &users)
	assert.Len(t, users, 2)

	// Granting the role through the profile takes effect immediately.
	var adaID string
	for _, u := range users {
		if u.Username == "ada" {
			adaID = u.ID
		}
	}
	require.NotEmpty(t, adaID)

	resp = doRequest(t, app, fiber.MethodPost, "/api/v1/admin/users/"+adaID+"/toggle-admin", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/admin/stats", userToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// And revoking it shuts the door again on the very next request.
	resp = doRequest(t, app, fiber.MethodPost, "/api/v1/admin/users/"+adaID+"/toggle-admin", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/admin/stats", userToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestNewsletterEndpoints(t *testing.T) {
	app := newTestApp(t)
	adminToken := registerAndLogin(t, app, "root", testAdminEmail)
	userToken := registerAndLogin(t, app, "ada", "ada@example.com")

	resp := doRequest(t, app, fiber.MethodPost, "/api/v1/newsletter/subscribe", "", fiber.Map{
		"email": "reader@example.com", "preferences": []string{"new-arrivals"},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Subscribing again is an upsert, not a duplicate.
	resp = doRequest(t, app, fiber.MethodPost, "/api/v1/newsletter/subscribe", "", fiber.Map{
		"email": "reader@example.com",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, fiber.MethodPost, "/api/v1/newsletter/subscribe", "", fiber.Map{
		"email": "not-an-email",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// The subscriber list is admin-only.
	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/newsletter/subscribers", userToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/newsletter/subscribers", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var subs []models.Newsletter
	decodeBody(t, resp, &subs)
	require.Len(t, subs, 1)
	assert.Equal(t, "reader@example.com", subs[0].Email)

	resp = doRequest(t, app, fiber.MethodPost, "/api/v1/newsletter/unsubscribe", "", fiber.Map{
		"email": "reader@example.com",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/newsletter/subscribers", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &subs)
	assert.Empty(t, subs)
}

func testShippingJSON() fiber.Map {
	return fiber.Map{
		"name":        "Ada Lovelace",
		"address":     "12 Analytical Way",
		"city":        "London",
		"postal_code": "N1 7AA",
		"phone":       "+44 20 0000 0000",
	}
}

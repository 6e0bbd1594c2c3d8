package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"velora/internal/handlers"
	"velora/internal/models"
	"velora/internal/repositories"
	"velora/internal/services"
	"velora/pkg/rabbitmq"
	"velora/pkg/storage"

	"github.com/spf13/viper"
)

func main() {
	// --- Configuration ---
	// Set up Viper to read configuration from environment variables
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("SQLITE_PATH", "velora.db")
	viper.SetDefault("JWT_SECRET", "change-me")
	viper.SetDefault("ADMIN_EMAIL", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("GCS_BUCKET", "")
	viper.SetDefault("GCS_CREDENTIALS_FILE", "")
	viper.AutomaticEnv() // Load environment variables

	appPort := viper.GetString("APP_PORT")

	// --- Initialize Database ---
	db, err := openDatabase()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(
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
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Initialize Blob Store ---
	// Product image bytes live in the blob store; the catalog only holds refs.
	blobs, err := openBlobStore()
	if err != nil {
		log.Fatalf("Failed to initialize blob store: %v", err)
	}

	// --- Initialize RabbitMQ Client ---
	// Optional: without a broker URL, order events are logged and skipped.
	var mqClient *rabbitmq.Client
	if rabbitMQURL := viper.GetString("RABBITMQ_URL"); rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close() // Ensure the connection is closed on exit
	}

	// --- Initialize Repositories ---
	productRepo := repositories.NewGORMProductRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	engagementRepo := repositories.NewGORMEngagementRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)
	newsletterRepo := repositories.NewGORMNewsletterRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	profileRepo := repositories.NewGORMUserProfileRepository(db)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, profileRepo,
		viper.GetString("JWT_SECRET"), viper.GetString("ADMIN_EMAIL"))
	catalogService := services.NewCatalogService(productRepo, blobs)
	cartService := services.NewCartService(cartRepo, catalogService)
	var events services.EventPublisher
	if mqClient != nil {
		events = mqClient
	}
	orderService := services.NewOrderService(orderRepo, userRepo, events)
	engagementService := services.NewEngagementService(engagementRepo)
	reviewService := services.NewReviewService(reviewRepo, userRepo)
	newsletterService := services.NewNewsletterService(newsletterRepo)
	adminService := services.NewAdminService(productRepo, userRepo, profileRepo, orderRepo, engagementRepo)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)
	handlers.NewCatalogHandler(catalogService, authService).RegisterRoutes(apiV1)
	handlers.NewCartHandler(cartService, authService).RegisterRoutes(apiV1)
	handlers.NewOrderHandler(orderService, authService).RegisterRoutes(apiV1)
	handlers.NewEngagementHandler(engagementService, authService).RegisterRoutes(apiV1)
	handlers.NewReviewHandler(reviewService, authService).RegisterRoutes(apiV1)
	handlers.NewNewsletterHandler(newsletterService, authService).RegisterRoutes(apiV1)
	handlers.NewAdminHandler(adminService, orderService, authService).RegisterRoutes(apiV1)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start RabbitMQ Consumer in a Goroutine ---
	// Listens for order lifecycle events (fulfillment, notifications).
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for order events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received order event %s (tag %d): %s", msg.Type, msg.DeliveryTag, string(msg.Body))
				return nil // Return nil to acknowledge
			}
			if consumerErr := mqClient.ConsumeOrderEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// openDatabase connects to Postgres when DATABASE_URL is set, falling back to
// a local SQLite file for development.
func openDatabase() (*gorm.DB, error) {
	if dsn := viper.GetString("DATABASE_URL"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(viper.GetString("SQLITE_PATH")), &gorm.Config{})
}

// openBlobStore connects to GCS when a bucket is configured, falling back to
// the in-memory store for development.
func openBlobStore() (storage.BlobStore, error) {
	bucket := viper.GetString("GCS_BUCKET")
	if bucket == "" {
		log.Println("GCS_BUCKET not set; using in-memory blob store")
		return storage.NewMemoryStore(), nil
	}
	return storage.NewGCSStore(context.Background(), bucket, viper.GetString("GCS_CREDENTIALS_FILE"))
}

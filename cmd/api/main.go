package main

import (
	_ "backend/api/swagger" // swagger docs
	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handler"
	"backend/internal/middleware"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/internal/storage"
	"backend/internal/websocket"
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Compliance Services Portal API
// @version         1.0
// @description     Dynamic form schemas, customer submissions and request lifecycle for the services portal.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	cfg := config.Load()

	db, err := database.NewConnection(cfg.DSN)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	secret := []byte(cfg.JWTSecret)
	auth := middleware.NewAuth(secret)
	store := storage.NewBucketStorage(cfg.StorageProjectID, cfg.StorageAPIKey, cfg.StorageBucket)

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	fieldRepo := repository.NewFieldRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	revenueRepo := repository.NewRevenueRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	userService := service.NewUserService(userRepo, secret)
	catalogService := service.NewCatalogService(serviceRepo, auditRepo, txManager)
	schemaService := service.NewSchemaService(fieldRepo, serviceRepo, auditRepo, txManager)
	submissionService := service.NewSubmissionService(fieldRepo, serviceRepo, customerRepo, requestRepo, submissionRepo, auditRepo, txManager)
	requestService := service.NewRequestService(requestRepo, revenueRepo, auditRepo, txManager, wsHub)
	revenueService := service.NewRevenueService(revenueRepo)
	auditService := service.NewAuditService(auditRepo)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	serviceHandler := handler.NewServiceHandler(catalogService, auth)
	formHandler := handler.NewFormHandler(schemaService, auth)
	submissionHandler := handler.NewSubmissionHandler(submissionService)
	requestHandler := handler.NewRequestHandler(requestService, auth)
	revenueHandler := handler.NewRevenueHandler(revenueService, auth)
	uploadHandler := handler.NewUploadHandler(store)
	auditHandler := handler.NewAuditHandler(auditService, auth)

	// Bootstrap the first admin account on an empty users table.
	if err := userService.EnsureAdmin(context.Background(), "admin", "admin@example.com", "admin123"); err != nil {
		log.Printf("Admin bootstrap failed: %v", err)
	}

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, secret)
	})

	// Register API Routes
	userHandler.RegisterRoutes(router.Group(""))
	serviceHandler.RegisterRoutes(router.Group(""))
	formHandler.RegisterRoutes(router.Group(""))
	submissionHandler.RegisterRoutes(router.Group(""))
	requestHandler.RegisterRoutes(router.Group(""))
	revenueHandler.RegisterRoutes(router.Group(""))
	uploadHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))

	log.Printf("Server listening on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

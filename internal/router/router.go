package router

import (
	"log"

	"github.com/justcodeon231/Eduvos-Hackathon-2025/internal/handlers"
	"github.com/justcodeon231/Eduvos-Hackathon-2025/internal/middleware"
	"github.com/justcodeon231/Eduvos-Hackathon-2025/internal/models"
	"github.com/justcodeon231/Eduvos-Hackathon-2025/internal/realtime"
	"github.com/justcodeon231/Eduvos-Hackathon-2025/internal/repositories"
	"github.com/justcodeon231/Eduvos-Hackathon-2025/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, cfg *config.Config) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
		&models.Notification{},
		&models.Report{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	postRepo := repositories.NewPostgresPostRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	messageRepo := repositories.NewMongoMessageRepository(mgClient.Database("campus"))
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	reportRepo := repositories.NewPostgresReportRepository(pgdb)

	// --- Realtime core: one registry per process, torn down with it ---
	registry := realtime.NewRegistry()
	fanout := realtime.NewFanout(registry)
	notifier := realtime.NewNotifier(notificationRepo, fanout)

	// --- Websocket channels (connection lifecycle) ---
	wsHandler := handlers.NewWSHandler(registry)
	wsHandler.RegisterWSRoutes(e)
	log.Println("Websocket routes configured.")

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, cfg)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(userRepo))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// Role-gated groups
	staff := e.Group("/api/v1")
	staff.Use(middleware.JWTAuthMiddleware(userRepo))
	staff.Use(middleware.RequireRoles(models.RoleModerator, models.RoleAdmin))

	admin := e.Group("/api/v1")
	admin.Use(middleware.JWTAuthMiddleware(userRepo))
	admin.Use(middleware.RequireRoles(models.RoleAdmin))

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo, cfg)
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, likeRepo, commentRepo, userRepo)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	// Like routes
	likeHandler := handlers.NewLikeHandler(likeRepo, postRepo, userRepo, notifier)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, userRepo, notifier)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// Chat routes
	chatHandler := handlers.NewChatHandler(messageRepo, userRepo, postRepo, notifier)
	chatHandler.RegisterChatRoutes(api)
	log.Println("Chat routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo, notifier)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	// Dashboard & leaderboard routes
	dashboardHandler := handlers.NewDashboardHandler(postRepo, likeRepo, commentRepo, messageRepo, notificationRepo, userRepo)
	dashboardHandler.RegisterDashboardRoutes(api)
	log.Println("Dashboard routes configured.")

	// Report routes
	reportHandler := handlers.NewReportHandler(reportRepo, postRepo, messageRepo, userRepo, notifier)
	reportHandler.RegisterReportRoutes(api, staff)
	log.Println("Report routes configured.")

	// Moderation routes
	moderationHandler := handlers.NewModerationHandler(postRepo, userRepo)
	moderationHandler.RegisterModerationRoutes(staff, admin)
	log.Println("Moderation routes configured.")

	log.Println("All routes configured.")
}

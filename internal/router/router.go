package router

import (
	"context"
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/archnet-io/backend/internal/handlers"
	"github.com/archnet-io/backend/internal/identity"
	"github.com/archnet-io/backend/internal/middleware"
	"github.com/archnet-io/backend/internal/models"
	"github.com/archnet-io/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, mongoDBName, authMode string, firebaseAuthClient *auth.Client) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.JobSeeker{},
		&models.ConnectionRequest{},
		&models.Connection{},
		&models.Associate{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}

	// The one-pending-request-per-pair invariant lives at the database, not in
	// application check-then-insert code.
	if err := pgdb.Exec(repositories.PendingPairIndex).Error; err != nil {
		log.Fatalf("Failed to create pending pair index: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	jobSeekerRepo := repositories.NewPostgresJobSeekerRepository(pgdb)
	connectionRepo := repositories.NewPostgresConnectionRepository(pgdb)
	associateRepo := repositories.NewPostgresAssociateRepository(pgdb)
	messageRepo := repositories.NewMongoMessageRepository(mgClient.Database(mongoDBName))

	if err := messageRepo.EnsureIndexes(context.Background()); err != nil {
		log.Fatalf("Failed to create message indexes: %v", err)
	}
	log.Println("MongoDB message indexes ensured.")

	resolver := identity.NewResolver(userRepo, jobSeekerRepo)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, jobSeekerRepo, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes ---
	api := e.Group("/api/v1")
	if authMode == "firebase" && firebaseAuthClient != nil {
		api.Use(middleware.FirebaseAuthMiddleware(firebaseAuthClient, func(ctx context.Context, uid string) (*models.JwtCustomClaims, error) {
			user, err := userRepo.GetUserByFirebaseUID(uid)
			if err != nil {
				return nil, err
			}
			return &models.JwtCustomClaims{UserID: user.ID, Email: user.Email, Kind: models.ActorKindMember}, nil
		}))
		log.Println("Firebase authentication middleware applied to /api/v1 group.")
	} else {
		api.Use(middleware.JWTAuthMiddleware())
		log.Println("JWT authentication middleware applied to /api/v1 group.")
	}

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo, resolver)
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	// Connection workflow routes
	connectionHandler := handlers.NewConnectionHandler(connectionRepo, userRepo)
	connectionHandler.RegisterConnectionRoutes(api)
	log.Println("Connection routes configured.")

	// Associate routes
	associateHandler := handlers.NewAssociateHandler(associateRepo, userRepo)
	associateHandler.RegisterAssociateRoutes(api)
	log.Println("Associate routes configured.")

	// Messaging routes
	messageHandler := handlers.NewMessageHandler(messageRepo, connectionRepo, userRepo)
	messageHandler.RegisterMessageRoutes(api)
	log.Println("Message routes configured.")

	// Notification counter routes
	notificationHandler := handlers.NewNotificationHandler(messageRepo, connectionRepo, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
}

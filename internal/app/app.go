// Package app wires repositories, services and HTTP handlers into one router.
package app

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"servicehub/internal/config"
	"servicehub/internal/middleware"
	"servicehub/internal/modules/admin"
	"servicehub/internal/modules/auth"
	"servicehub/internal/modules/booking"
	"servicehub/internal/modules/catalog"
	"servicehub/internal/modules/chat"
	"servicehub/internal/modules/directory"
	"servicehub/internal/modules/payment"
	"servicehub/internal/modules/review"
	"servicehub/internal/pkg/docstore"
	jwtsvc "servicehub/internal/pkg/jwt"
	"servicehub/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type App struct {
	Router *gin.Engine
	Hub    *chat.Hub
}

// New builds the HTTP application on top of an already migrated database.
// docs may be nil, in which case the store is chosen from cfg.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, docs docstore.Store) (*App, error) {
	if docs == nil {
		var err error
		if docs, err = NewDocStore(ctx, cfg); err != nil {
			return nil, err
		}
	}

	userRepo := repository.NewUserRepository(db)
	providerRepo := repository.NewProviderRepository(db)
	listingRepo := repository.NewListingRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	chatRepo := repository.NewChatRepository(db)

	jwt := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	hasher := auth.NewHasher(cfg.BcryptCost)
	hub := chat.NewHub()

	authService := auth.NewService(userRepo, providerRepo, jwt, hasher)
	catalogService := catalog.NewService(listingRepo)
	reviewService := review.NewService(reviewRepo, bookingRepo)
	directoryService := directory.NewService(providerRepo, catalogService, reviewService, hasher, docs)
	bookingService := booking.NewService(bookingRepo, hub)
	paymentService := payment.NewService(paymentRepo, bookingRepo, log.Printf)
	chatService := chat.NewService(chatRepo, bookingRepo, hub)
	adminService := admin.NewService(userRepo, providerRepo, bookingRepo, catalogService, directoryService, paymentService)

	authHandler := auth.NewHandler(authService)
	catalogHandler := catalog.NewHandler(catalogService)
	directoryHandler := directory.NewHandler(directoryService, cfg.UploadMaxBytes)
	reviewHandler := review.NewHandler(reviewService)
	bookingHandler := booking.NewHandler(bookingService)
	paymentHandler := payment.NewHandler(paymentService)
	chatHandler := chat.NewHandler(chatService, hub, cfg.CORSAllowedOrigins)
	adminHandler := admin.NewHandler(adminService)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(gin.Logger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.MaxMultipartMemory = cfg.UploadMaxBytes

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)
		directoryHandler.RegisterPublicRoutes(v1)
		reviewHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(jwt))
		{
			authHandler.RegisterProtectedRoutes(protected)
			directoryHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			reviewHandler.RegisterProtectedRoutes(protected)
			paymentHandler.RegisterRoutes(protected)
			chatHandler.RegisterRoutes(protected)

			adminGroup := protected.Group("/admin")
			adminGroup.Use(middleware.AdminOnly())
			adminHandler.RegisterRoutes(adminGroup)
		}
	}

	return &App{Router: r, Hub: hub}, nil
}

// NewDocStore picks the KYC document backend from configuration.
func NewDocStore(ctx context.Context, cfg *config.Config) (docstore.Store, error) {
	switch cfg.DocStorage {
	case config.StorageS3:
		return docstore.NewS3Store(ctx, docstore.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			EndpointURL:     cfg.S3EndpointURL,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		}, cfg.UploadMaxBytes)
	case config.StorageLocal, "":
		return docstore.NewLocalStore(cfg.UploadDir, cfg.UploadMaxBytes)
	default:
		return nil, fmt.Errorf("unknown document storage %q", cfg.DocStorage)
	}
}

// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"dreamhome_backend/internal/auth"
	"dreamhome_backend/internal/category"
	"dreamhome_backend/internal/common"
	"dreamhome_backend/internal/config"
	"dreamhome_backend/internal/conversation"
	"dreamhome_backend/internal/favorite"
	"dreamhome_backend/internal/filestorage"
	"dreamhome_backend/internal/health"
	"dreamhome_backend/internal/listing"
	"dreamhome_backend/internal/location"
	"dreamhome_backend/internal/middleware"
	"dreamhome_backend/internal/shared"
	"dreamhome_backend/internal/user"
)

// Server holds the HTTP server and its wired dependencies.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger
	db         *gorm.DB
}

// NewServer builds the Gin router, registers every module's routes and
// returns a server ready to start.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	tokenService shared.TokenService,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	categoryHandler *category.Handler,
	locationHandler *location.Handler,
	listingHandler *listing.Handler,
	favoriteHandler *favorite.Handler,
	conversationHandler *conversation.Handler,
	uploadHandler *filestorage.Handler,
	healthHandler *health.Handler,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	authMW := middleware.AuthMiddleware(tokenService, logger.Named("auth-middleware"))
	adminRoleMW := middleware.RoleAuthMiddleware(common.RoleAdmin)

	api := router.Group("/api")
	healthHandler.RegisterRoutes(api)
	authHandler.RegisterRoutes(api)
	userHandler.RegisterRoutes(api, authMW, adminRoleMW)
	categoryHandler.RegisterRoutes(api, authMW, adminRoleMW)
	locationHandler.RegisterRoutes(api, authMW, adminRoleMW)
	listingHandler.RegisterRoutes(api, authMW)
	favoriteHandler.RegisterRoutes(api, authMW)
	conversationHandler.RegisterRoutes(api, authMW)
	uploadHandler.RegisterRoutes(api, authMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		cfg:        cfg,
		logger:     logger,
		db:         db,
	}, nil
}

// Migrate creates or updates the database schema for every model.
func (s *Server) Migrate() error {
	return s.db.AutoMigrate(
		&user.User{},
		&category.Category{},
		&location.Location{},
		&listing.Listing{},
		&listing.ListingImage{},
		&favorite.Favorite{},
		&conversation.Conversation{},
		&conversation.Message{},
	)
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	return nil
}

// Shutdown stops the HTTP server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	return s.httpServer.Shutdown(ctx)
}

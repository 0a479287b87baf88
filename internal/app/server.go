// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"notes_app_backend/internal/auth"
	"notes_app_backend/internal/config"
	"notes_app_backend/internal/middleware"
	"notes_app_backend/internal/note"
	"notes_app_backend/internal/shared"
	"notes_app_backend/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	userHandler *user.Handler
	authHandler *auth.Handler
	noteHandler *note.Handler
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	userHandler *user.Handler,
	authHandler *auth.Handler,
	noteHandler *note.Handler,
	tokenService shared.TokenService,
	userService shared.Service,
) (*Server, error) {
	if err := db.AutoMigrate(&user.User{}, &note.Note{}); err != nil {
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	// CORS Middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	authMW := middleware.AuthMiddleware(tokenService, userService, logger.Named("AuthMiddleware"))

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Notes App API is healthy!"})
	})

	api := router.Group("/api")

	userHandler.RegisterRoutes(api)
	authHandler.RegisterRoutes(api)
	noteHandler.RegisterRoutes(api, authMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:  httpServer,
		router:      router,
		cfg:         cfg,
		logger:      logger,
		userHandler: userHandler,
		authHandler: authHandler,
		noteHandler: noteHandler,
	}, nil
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("Starting server", zap.String("address", s.httpServer.Addr), zap.String("ginMode", s.cfg.GinMode))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.httpServer.Shutdown(ctx)
}

package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/aukdevgh/project-backend/internal/catalog"
	"github.com/aukdevgh/project-backend/internal/config"
	custommiddleware "github.com/aukdevgh/project-backend/internal/middleware"
	"github.com/aukdevgh/project-backend/internal/repository"
	"github.com/aukdevgh/project-backend/internal/service"
	"github.com/aukdevgh/project-backend/internal/token"
	"github.com/aukdevgh/project-backend/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
}

// NewServer assembles the router, repositories, services, and handlers. The
// redis client is optional; without it the rate limiter is skipped.
func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB, store *catalog.Store, redisClient *redis.Client) *Server {
	router := chi.NewRouter()

	// Basic middleware stack
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env == "development"))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Token managers: one signing key per token class
	accessTokens := token.NewManager(cfg.JWT.AccessSecret, time.Duration(cfg.JWT.AccessExpiry)*time.Minute)
	refreshTokens := token.NewManager(cfg.JWT.RefreshSecret, time.Duration(cfg.JWT.RefreshExpiry)*24*time.Hour)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, accessTokens, refreshTokens)
	cartService := service.NewCartService(cartRepo, store)
	orderService := service.NewOrderService(orderRepo, cartRepo, store)
	commentService := service.NewCommentService(commentRepo)
	settingsService := service.NewSettingsService(settingsRepo)

	// Handlers
	authHandler := transport.NewAuthHandler(authService, logger)
	productHandler := transport.NewProductHandler(store, logger)
	cartHandler := transport.NewCartHandler(cartService, logger)
	orderHandler := transport.NewOrderHandler(orderService, logger)
	commentHandler := transport.NewCommentHandler(commentService, logger)
	settingsHandler := transport.NewSettingsHandler(settingsService, logger)

	// The token refresh gate guards every protected route
	authMiddleware := custommiddleware.AuthMiddleware(accessTokens, refreshTokens, accessTokens, logger)

	// Brute-force protection on the auth routes
	if redisClient != nil {
		router.Group(func(r chi.Router) {
			r.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
				RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
				Window:            cfg.RateLimit.Window,
				KeyPrefix:         "rate_limit:auth",
			}, logger))
			authHandler.RegisterRoutes(r, authMiddleware)
		})
	} else {
		authHandler.RegisterRoutes(router, authMiddleware)
	}

	productHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router, authMiddleware)
	orderHandler.RegisterRoutes(router, authMiddleware)
	commentHandler.RegisterRoutes(router, authMiddleware)
	settingsHandler.RegisterRoutes(router, authMiddleware)

	// Product images ship as static files next to the catalog
	if cfg.Catalog.ImagesDir != "" {
		fileServer := http.StripPrefix("/api/images/", http.FileServer(http.Dir(cfg.Catalog.ImagesDir)))
		router.Get("/api/images/*", fileServer.ServeHTTP)
	}

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}

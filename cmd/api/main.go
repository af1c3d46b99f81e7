package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"roomreserve/internal/config"
	"roomreserve/internal/database"
	"roomreserve/internal/middleware"
	"roomreserve/internal/modules/auth"
	"roomreserve/internal/modules/booking"
	"roomreserve/internal/modules/catalog"
	"roomreserve/internal/pkg/logger"
	"roomreserve/internal/pkg/response"
	"roomreserve/internal/repository"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	authService := auth.NewService(userRepo, sessionRepo, cfg.Session.Pepper, cfg.Session.TTL)
	bookingService := booking.NewService(bookingRepo, roomRepo)
	catalogService := catalog.NewService(roomRepo, bookingRepo)

	authHandler := auth.NewHandler(authService, cfg.Session.TTL, !cfg.IsDevelopment())
	bookingHandler := booking.NewHandler(bookingService)
	catalogHandler := catalog.NewHandler(catalogService, bookingService)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.CORS(cfg.CORSOrigins),
	)

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Landing point for the unauthenticated redirect.
	router.GET("/login", func(c *gin.Context) {
		response.Error(c, http.StatusUnauthorized, "LOGIN_REQUIRED", "Authentication required")
	})

	v1 := router.Group("/api/v1")
	authHandler.RegisterPublicRoutes(v1)
	catalogHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.RequireAuth(authService))
	authHandler.RegisterProtectedRoutes(protected)
	bookingHandler.RegisterRoutes(protected)

	admin := v1.Group("/admin")
	admin.Use(middleware.RequireAuth(authService), middleware.RequireAdmin())
	catalogHandler.RegisterAdminRoutes(admin)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}

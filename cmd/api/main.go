package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/podstore/podstore/internal/cache"
	"github.com/podstore/podstore/internal/config"
	"github.com/podstore/podstore/internal/database"
	"github.com/podstore/podstore/internal/handler"
	"github.com/podstore/podstore/internal/middleware"
	"github.com/podstore/podstore/internal/repository"
	"github.com/podstore/podstore/internal/service"
	"github.com/podstore/podstore/internal/utils"
	"github.com/podstore/podstore/internal/worker"
)

// main is the application entrypoint for the PodStore API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting podstore api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 3c. Initialize redis-backed stores
	cartStore := cache.NewCartStore(redisClient, cfg.Cart.TTL)
	denylist := cache.NewTokenDenylist(redisClient)

	// 4. Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)

	// 5. Initialize services
	jwtManager := utils.NewJWTManager(cfg.JWTSecret, 24*time.Hour)
	authSvc := service.NewAuthService(userRepo, jwtManager, denylist)
	catalogSvc := service.NewCatalogService(productRepo)
	cartSvc := service.NewCartService(cartStore, productRepo)
	productMgmtSvc := service.NewProductManagementService(productRepo, catalogSvc)

	// 6. Initialize handlers
	handlers := &Handlers{
		Health:            handler.NewHealthHandler(db, redisClient),
		Auth:              handler.NewAuthHandler(authSvc),
		Catalog:           handler.NewCatalogHandler(catalogSvc),
		Cart:              handler.NewCartHandler(cartSvc),
		ProductManagement: handler.NewProductManagementHandler(productMgmtSvc),
	}

	// 7. Initialize middleware
	sessionMw := middleware.NewSessionMiddleware(authSvc)
	adminMw := middleware.NewAdminMiddleware(authSvc)

	// 8. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, sessionMw, adminMw)

	// 9. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 10. Start workers
	go worker.NewCatalogWorker(catalogSvc, cfg.Worker.CatalogRefreshInterval).Start(ctx)

	// 11. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 12. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 13. Cancel context to stop workers
	cancel()

	// 14. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health            *handler.HealthHandler
	Auth              *handler.AuthHandler
	Catalog           *handler.CatalogHandler
	Cart              *handler.CartHandler
	ProductManagement *handler.ProductManagementHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, sessionMiddleware *middleware.SessionMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// Auth routes
	auth := router.Group("/v1/auth")
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
		auth.GET("/session", handlers.Auth.Session)
		auth.POST("/logout", sessionMiddleware.Handle(), handlers.Auth.Logout)
	}

	// Public catalog
	catalog := router.Group("/v1/catalog")
	{
		catalog.GET("/products", handlers.Catalog.GetProducts)
		catalog.GET("/categories", handlers.Catalog.GetCategories)
	}

	// Cart (cookie-scoped, anonymous shoppers included)
	cart := router.Group("/v1/cart")
	{
		cart.GET("", handlers.Cart.GetCart)
		cart.DELETE("", handlers.Cart.ClearCart)
		cart.POST("/items", handlers.Cart.AddItem)
		cart.PATCH("/items/:productId", handlers.Cart.UpdateItem)
	}

	// Admin routes: session first, then the admin-role gate
	admin := router.Group("/v1/admin")
	admin.Use(sessionMiddleware.Handle(), adminMiddleware.Handle())
	{
		admin.GET("/products", handlers.ProductManagement.ListProducts)
		admin.POST("/products", handlers.ProductManagement.CreateProduct)
		admin.PUT("/products/:id", handlers.ProductManagement.UpdateProduct)
		admin.DELETE("/products/:id", handlers.ProductManagement.DeleteProduct)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	// Run migrations
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

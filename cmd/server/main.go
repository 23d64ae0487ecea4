package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cartapp "github.com/kapzar/backend/internal/application/cart"
	catalogapp "github.com/kapzar/backend/internal/application/catalog"
	identityapp "github.com/kapzar/backend/internal/application/identity"
	orderapp "github.com/kapzar/backend/internal/application/order"
	"github.com/kapzar/backend/internal/domain/order"
	"github.com/kapzar/backend/internal/domain/shared/valueobject"
	"github.com/kapzar/backend/internal/infrastructure/auth"
	"github.com/kapzar/backend/internal/infrastructure/config"
	"github.com/kapzar/backend/internal/infrastructure/logger"
	"github.com/kapzar/backend/internal/infrastructure/persistence"
	"github.com/kapzar/backend/internal/infrastructure/session"
	"github.com/kapzar/backend/internal/interfaces/http/handler"
	"github.com/kapzar/backend/internal/interfaces/http/middleware"
	"github.com/kapzar/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		panic("Invalid configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting KapZar backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	sessionStore := buildSessionStore(cfg, log)

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	cartService := cartapp.NewService(sessionStore, productRepo, log)
	orderService := orderapp.NewService(orderRepo, productRepo, deliveryPolicy(cfg, log), log)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(
		logger.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Session(int(cfg.Shop.SessionTTL.Seconds()), cfg.IsProduction()),
	)

	router.Setup(engine, jwtService, router.Handlers{
		Auth:     handler.NewAuthHandler(authService, cartService, log),
		Category: handler.NewCategoryHandler(categoryService),
		Product:  handler.NewProductHandler(productService),
		Cart:     handler.NewCartHandler(cartService),
		Order:    handler.NewOrderHandler(orderService, cartService, log),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}

// buildSessionStore prefers Redis and falls back to the in-memory store,
// which serves a single instance but loses carts on restart.
func buildSessionStore(cfg *config.Config, log *zap.Logger) session.Store {
	store, err := session.NewRedisStore(session.RedisConfig{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TTL:      cfg.Shop.SessionTTL,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory session store", zap.Error(err))
		return session.NewMemoryStore()
	}
	log.Info("Redis session store connected", zap.String("addr", cfg.Redis.Addr()))
	return store
}

func deliveryPolicy(cfg *config.Config, log *zap.Logger) order.DeliveryPolicy {
	threshold, err := valueobject.NewMoneyFromString(cfg.Shop.FreeDeliveryThreshold)
	if err != nil {
		log.Warn("Invalid free delivery threshold, using default",
			zap.String("value", cfg.Shop.FreeDeliveryThreshold))
		return order.DefaultDeliveryPolicy()
	}
	charge, err := valueobject.NewMoneyFromString(cfg.Shop.DeliveryCharge)
	if err != nil {
		log.Warn("Invalid delivery charge, using default",
			zap.String("value", cfg.Shop.DeliveryCharge))
		return order.DefaultDeliveryPolicy()
	}
	return order.DeliveryPolicy{FreeThreshold: threshold, Charge: charge}
}

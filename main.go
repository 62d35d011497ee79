package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"food-storefront/accounts"
	"food-storefront/catalog"
	"food-storefront/config"
	"food-storefront/handlers"
	"food-storefront/middleware"
	"food-storefront/orders"
	"food-storefront/routes"
	"food-storefront/session"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.OpenDB(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer func() {
		if err := config.CloseDB(db); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()
	log.Printf("Database ready at %s", cfg.DBPath)

	var revoker session.Revoker = session.NewMemoryRevoker()
	if cfg.RedisURL != "" {
		rr, err := session.NewRedisRevoker(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal("Failed to connect to redis: ", err)
		}
		defer rr.Close()
		revoker = rr
		log.Println("Using redis for session revocation")
	}

	engine := orders.NewEngine(db)
	h := &handlers.Handler{
		Orders: orders.NewAccess(engine),
		Quoter: orders.NewQuoter(db, orders.Pricing{
			DeliveryFee: cfg.Pricing.DeliveryFee,
			GSTPercent:  cfg.Pricing.GSTPercent,
		}),
		Catalog:  catalog.New(db),
		Accounts: accounts.New(db),
		Auth:     middleware.NewAuth(cfg.JWTSecret, cfg.TokenTTL, revoker),
	}

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Food Storefront API",
		})
	})

	routes.SetupRoutes(r, h, middleware.NewRateLimiter(cfg.LoginRatePerMin))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Origin", "Content-Type", "Authorization"},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsHandler.Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server: ", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}

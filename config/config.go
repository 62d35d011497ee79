package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"food-storefront/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const devJWTSecret = "food_storefront_dev_secret"

type Config struct {
	Port            string
	GinMode         string
	DBPath          string
	JWTSecret       []byte
	TokenTTL        time.Duration
	RedisURL        string
	CORSOrigins     []string
	LoginRatePerMin int
	Pricing         PricingConfig
}

// PricingConfig drives the advisory checkout quote.
type PricingConfig struct {
	DeliveryFee float64
	GSTPercent  float64
}

// Load reads configuration from the environment, after merging an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		DBPath:      getEnv("DB_PATH", "food_storefront.db"),
		RedisURL:    os.Getenv("REDIS_URL"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if cfg.GinMode == "release" {
			return nil, errors.New("JWT_SECRET is required in release mode")
		}
		secret = devJWTSecret
	}
	cfg.JWTSecret = []byte(secret)

	var err error
	if cfg.TokenTTL, err = time.ParseDuration(getEnv("TOKEN_TTL", "24h")); err != nil {
		return nil, fmt.Errorf("TOKEN_TTL: %w", err)
	}
	if cfg.LoginRatePerMin, err = strconv.Atoi(getEnv("LOGIN_RATE_PER_MIN", "10")); err != nil {
		return nil, fmt.Errorf("LOGIN_RATE_PER_MIN: %w", err)
	}
	if cfg.Pricing.DeliveryFee, err = strconv.ParseFloat(getEnv("DELIVERY_FEE", "49"), 64); err != nil {
		return nil, fmt.Errorf("DELIVERY_FEE: %w", err)
	}
	if cfg.Pricing.GSTPercent, err = strconv.ParseFloat(getEnv("GST_PERCENT", "5"), 64); err != nil {
		return nil, fmt.Errorf("GST_PERCENT: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// OpenDB opens the SQLite store at dsn and migrates every model.
// The caller owns the handle and must release it with CloseDB.
func OpenDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.Order{},
	)
	if err != nil {
		_ = CloseDB(db)
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

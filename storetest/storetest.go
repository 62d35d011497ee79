// Package storetest opens throwaway in-memory stores for package tests.
package storetest

import (
	"fmt"
	"testing"

	"food-storefront/config"
	"food-storefront/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Open returns a migrated in-memory database private to t.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := config.OpenDB(dsn)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { _ = config.CloseDB(db) })
	return db
}

// SeedUser inserts a user whose password is "secret123".
func SeedUser(t testing.TB, db *gorm.DB, email string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &models.User{Name: "Test User", Email: email, Phone: "9999999999", PasswordHash: string(hash)}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedRestaurant inserts an open restaurant with the given slug.
func SeedRestaurant(t testing.TB, db *gorm.DB, slug string) *models.Restaurant {
	t.Helper()
	r := &models.Restaurant{
		SlugID:       slug,
		Name:         "Spice Route " + slug,
		Cuisine:      "North Indian",
		Rating:       4.5,
		DeliveryTime: "30-40 min",
		DeliveryFee:  49,
		IsOpen:       true,
		Description:  "Curries and tandoor",
	}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("seed restaurant: %v", err)
	}
	return r
}

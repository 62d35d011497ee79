// Package accounts registers users and checks their credentials.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"food-storefront/apperr"
	"food-storefront/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Registration struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

type ProfileUpdate struct {
	Name    string
	Phone   string
	Address string
}

type Accounts struct {
	db   *gorm.DB
	cost int
}

func New(db *gorm.DB) *Accounts {
	return &Accounts{db: db, cost: bcrypt.DefaultCost}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *Accounts) Register(ctx context.Context, r Registration) (*models.User, error) {
	email := normalizeEmail(r.Email)
	db := a.db.WithContext(ctx)

	var existing int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing > 0 {
		return nil, apperr.Conflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(r.Password), a.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:         r.Name,
		Email:        email,
		Phone:        r.Phone,
		PasswordHash: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("email already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Authenticate returns the user matching email and password. Unknown email
// and wrong password fail the same way.
func (a *Accounts) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := a.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("invalid email or password")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Unauthorized("invalid email or password")
	}
	return &user, nil
}

func (a *Accounts) Profile(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := a.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}

// UpdateProfile replaces name, phone and address. An empty address clears it.
func (a *Accounts) UpdateProfile(ctx context.Context, userID uint, p ProfileUpdate) (*models.User, error) {
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Phone) == "" {
		return nil, apperr.Validation("name and phone are required")
	}
	user, err := a.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Name = p.Name
	user.Phone = p.Phone
	user.Address = strings.TrimSpace(p.Address)
	err = a.db.WithContext(ctx).Model(user).Select("Name", "Phone", "Address").Updates(user).Error
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"food-storefront/models"
	"food-storefront/session"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const claimsKey = "claims"

type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// Auth issues and verifies session tokens.
type Auth struct {
	secret  []byte
	ttl     time.Duration
	revoker session.Revoker
	now     func() time.Time
}

func NewAuth(secret []byte, ttl time.Duration, revoker session.Revoker) *Auth {
	return &Auth{secret: secret, ttl: ttl, revoker: revoker, now: time.Now}
}

// GenerateToken creates a signed JWT for a given user
func (a *Auth) GenerateToken(user *models.User) (string, error) {
	now := a.now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

func (a *Auth) parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": msg})
}

// Required validates the bearer token and injects claims into context
func (a *Auth) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			unauthorized(c, "Authorization header required (Bearer <token>)")
			return
		}
		claims, err := a.parse(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil || claims.UserID == 0 {
			unauthorized(c, "Invalid or expired token")
			return
		}
		revoked, err := a.revoker.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			log.Printf("session revocation lookup failed: %v", err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "Session store unavailable"})
			return
		}
		if revoked {
			unauthorized(c, "Session has been signed out")
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// Revoke invalidates the token behind claims until it would have expired anyway.
func (a *Auth) Revoke(ctx context.Context, claims *Claims) error {
	until := a.now().Add(a.ttl)
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	return a.revoker.Revoke(ctx, claims.ID, until)
}

// GetClaims returns the caller's claims, or nil on unauthenticated routes.
func GetClaims(c *gin.Context) *Claims {
	val, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := val.(*Claims)
	return claims
}

// GetUserID extracts caller user ID from context; zero means anonymous.
func GetUserID(c *gin.Context) uint {
	if claims := GetClaims(c); claims != nil {
		return claims.UserID
	}
	return 0
}

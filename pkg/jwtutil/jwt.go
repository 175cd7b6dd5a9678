package jwtutil

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"menu-service/pkg/config"
)

var (
	signingKey []byte
	expiration time.Duration
)

// UserClaims represents the JWT claims for an authenticated caller
type UserClaims struct {
	Email       string `json:"email"`
	UserID      uint   `json:"user_id"`
	IsStaff     bool   `json:"is_staff"`     // Required for any mutating operation
	IsSuperuser bool   `json:"is_superuser"` // Exempt from tenant scoping
	jwt.RegisteredClaims
}

// Initialize configures the signing key and token lifetime
func Initialize(cfg *config.JWTConfig) {
	signingKey = []byte(cfg.SigningKey)
	expiration = cfg.ExpirationTime
}

// GenerateToken creates a signed token for the given caller identity
func GenerateToken(userID uint, email string, isStaff, isSuperuser bool) (string, error) {
	claims := UserClaims{
		Email:       email,
		UserID:      userID,
		IsStaff:     isStaff,
		IsSuperuser: isSuperuser,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey)
}

// ValidateToken validates and parses the JWT token
func ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return signingKey, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}

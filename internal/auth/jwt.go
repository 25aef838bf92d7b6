package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"blogapi/internal/models"
)

var (
	jwtSecret = []byte("super-secret-key") // overridden from config at startup
	tokenTTL  = 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid token")

// Configure sets the signing secret and token lifetime. Called once from main.
func Configure(secret string, ttl time.Duration) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
	if ttl > 0 {
		tokenTTL = ttl
	}
}

func GenerateToken(user models.User) (string, error) {
	return GenerateTokenWithTTL(user, tokenTTL)
}

// GenerateTokenWithTTL issues a token with an explicit lifetime. A negative
// ttl produces an already-expired token.
func GenerateTokenWithTTL(user models.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ParseToken(tokenStr string) (*jwt.Token, error) {
	return jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return jwtSecret, nil
	})
}

// TokenClaims parses a token string and returns its claims, rejecting
// anything unsigned, tampered with, or expired.
func TokenClaims(tokenStr string) (jwt.MapClaims, error) {
	token, err := ParseToken(tokenStr)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

package services

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrTokensDisabled = errors.New("admin bearer tokens disabled: JWT_SECRET not set")

// AdminAuthService answers one question: does the caller hold operator
// privilege? It accepts the shared secret directly or a short-lived bearer
// token minted from it. Stateless, checked on every request, fails closed.
type AdminAuthService struct {
	cfg *config.Config
}

func NewAdminAuthService(cfg *config.Config) *AdminAuthService {
	return &AdminAuthService{cfg: cfg}
}

// IsAuthorizedSecret verifies a presented shared secret. Prefers the bcrypt
// hash when configured; otherwise constant-time compares the plain secret.
// With no credential configured at all, nothing authorizes.
func (s *AdminAuthService) IsAuthorizedSecret(presented string) bool {
	if presented == "" {
		return false
	}
	if s.cfg.AdminSecretHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminSecretHash), []byte(presented)) == nil
	}
	if s.cfg.AdminSecret != "" {
		return subtle.ConstantTimeCompare([]byte(s.cfg.AdminSecret), []byte(presented)) == 1
	}
	return false
}

// MintToken issues a short-lived admin JWT in exchange for the shared secret.
func (s *AdminAuthService) MintToken() (string, time.Time, error) {
	if s.cfg.JWTSecret == "" {
		return "", time.Time{}, ErrTokensDisabled
	}
	expiresAt := time.Now().Add(s.cfg.AdminTokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "admin",
		"iat":  time.Now().Unix(),
		"exp":  expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// IsAuthorizedToken verifies a bearer token previously minted by MintToken.
func (s *AdminAuthService) IsAuthorizedToken(tokenString string) bool {
	if s.cfg.JWTSecret == "" || tokenString == "" {
		return false
	}
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	role, _ := claims["role"].(string)
	return role == "admin"
}

package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/blacks1k-sc/ParcelVision/internal/config"
	"github.com/blacks1k-sc/ParcelVision/internal/domain"
)

// Claims represents the JWT claims for an operator session.
type Claims struct {
	jwt.RegisteredClaims
	Operator bool `json:"operator"`
}

// LoginInput is the DTO for operator login requests.
type LoginInput struct {
	PIN string `json:"pin" binding:"required,min=4"`
}

// TokenResult holds the issued session token.
type TokenResult struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// AuthService defines the operator authentication contract. A single shared
// PIN guards the upload and valet management routes; there are no user
// accounts.
type AuthService interface {
	Login(input LoginInput) (*TokenResult, error)
	ValidateToken(tokenString string) (*Claims, error)
	// Enabled reports whether a PIN is configured. With no PIN the protected
	// routes are open, which is the single-building deployment default.
	Enabled() bool
}

type authService struct {
	cfg config.AuthConfig
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(cfg config.AuthConfig) AuthService {
	return &authService{cfg: cfg}
}

func (s *authService) Enabled() bool {
	return s.cfg.PINHash != ""
}

func (s *authService) Login(input LoginInput) (*TokenResult, error) {
	if !s.Enabled() {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.PINHash), []byte(input.PIN)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	expiry := now.Add(s.cfg.TokenExpiry)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "operator",
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
			ID:        uuid.New().String(),
		},
		Operator: true,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}

	return &TokenResult{AccessToken: signed, ExpiresAt: expiry}, nil
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid || !claims.Operator {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

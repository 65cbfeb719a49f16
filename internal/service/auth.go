package service

import (
	"context"
	"errors"
	"time"

	"deslimste/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// AuthService issues and validates admin and team tokens. The admin
// password itself lives in the game state document (set once during
// first-run configuration).
type AuthService struct {
	lifecycle *Lifecycle
	jwtSecret []byte
}

// NewAuthService creates the auth service
func NewAuthService(lifecycle *Lifecycle, jwtSecret string) *AuthService {
	return &AuthService{
		lifecycle: lifecycle,
		jwtSecret: []byte(jwtSecret),
	}
}

// Login validates the admin password and returns a token
func (s *AuthService) Login(ctx context.Context, password string) (*model.LoginResponse, error) {
	gs, err := s.lifecycle.State(ctx)
	if err != nil {
		return nil, err
	}
	if gs.AdminPassword == "" {
		return nil, ErrNotConfigured
	}
	if password != gs.AdminPassword {
		return nil, ErrWrongPassword
	}

	adminID := "admin_" + uuid.New().String()[:8]
	claims := &model.AdminClaims{
		AdminID: adminID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{Token: signed, AdminID: adminID}, nil
}

// ValidateAdminToken validates an admin JWT and returns its claims
func (s *AuthService) ValidateAdminToken(tokenString string) (*model.AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*model.AdminClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GenerateTeamToken creates a session token for a joined team
func (s *AuthService) GenerateTeamToken(teamID string) (string, error) {
	claims := &model.TeamClaims{
		TeamID: teamID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateTeamToken validates a team JWT and returns its claims
func (s *AuthService) ValidateTeamToken(tokenString string) (*model.TeamClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.TeamClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*model.TeamClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

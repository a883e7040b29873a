package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"ellavera-site/internal/models"
	"ellavera-site/internal/repository"
)

var ErrInvalidToken = errors.New("invalid token")

// AuthService forwards credentials to the backend, which issues and verifies
// tokens. This server only reads the claims it needs to manage the cookie.
type AuthService struct {
	auth repository.AuthRepository
	now  func() time.Time
}

func NewAuthService(authRepo repository.AuthRepository) *AuthService {
	return &AuthService{auth: authRepo, now: time.Now}
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return nil, invalidInput("email and password are required")
	}
	return s.auth.Login(ctx, req)
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.TokenResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		return nil, invalidInput("email, password and full name are required")
	}
	if len(req.Password) < 6 {
		return nil, invalidInput("password must be at least 6 characters")
	}
	return s.auth.Register(ctx, req)
}

// CurrentUser asks the backend who the token in ctx belongs to.
func (s *AuthService) CurrentUser(ctx context.Context) (*models.User, error) {
	return s.auth.Me(ctx)
}

// TokenInfo is what the server reads from a token without verifying it.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
}

// InspectToken decodes the claims of a backend token. The signature is not
// checked here; the backend rejects forged tokens on every admin call.
func (s *AuthService) InspectToken(token string) (*TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, ErrInvalidToken
	}

	info := &TokenInfo{}
	if subject, err := claims.GetSubject(); err == nil {
		info.Subject = subject
	}
	if expiresAt, err := claims.GetExpirationTime(); err == nil && expiresAt != nil {
		info.ExpiresAt = expiresAt.Time
		if !info.ExpiresAt.After(s.now()) {
			return nil, ErrInvalidToken
		}
	}
	return info, nil
}

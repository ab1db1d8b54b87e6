package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/boozeclub/backoffice/internal/platform/httpx"
)

var ErrInvalidCredentials = fmt.Errorf("auth: invalid credentials: %w", httpx.ErrUnauthorized)

// User is an operator account. The password never leaves storage; only its
// salt and scrypt hash are held.
type User struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Salt        string `json:"-"`
	Hash        string `json:"-"`
}

// Repository looks up operator accounts.
type Repository interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
}

type Service struct {
	repo   Repository
	secret []byte
	logger *slog.Logger
}

func NewService(repo Repository, secret []byte, logger *slog.Logger) *Service {
	return &Service{repo: repo, secret: secret, logger: logger}
}

// Login verifies credentials and issues a session token. Unknown users and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (*User, string, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}
	if !VerifyPassword(password, user.Salt, user.Hash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := SignToken(s.secret, user.Username, user.DisplayName, time.Now().UTC())
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return user, token, nil
}

// Verify resolves a session token to its claims.
func (s *Service) Verify(token string) (*Claims, error) {
	claims, err := VerifyToken(s.secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: token rejected", httpx.ErrUnauthorized)
	}
	return claims, nil
}

package ports

import (
	"context"
	"time"

	"github.com/sociogram/social-api/internal/core/domain"
)

// RegisterInput carries the signup payload.
type RegisterInput struct {
	Username string
	FullName string
	Email    string
	Password string
}

// Session is an issued credential: the signed token plus its expiry, used by
// the transport layer to set the session cookie.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// AuthService implements signup, login, logout and session resolution.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, *Session, error)
	Login(ctx context.Context, username, password string) (*domain.User, *Session, error)
	// Logout revokes the session identified by its token ID until expiresAt.
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}

package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sociogram/social-api/internal/api/metrics"
	"github.com/sociogram/social-api/internal/core/domain"
	"github.com/sociogram/social-api/internal/core/ports"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SessionRevoker abstracts the server-side token denylist (Redis).
type SessionRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthService implements signup, login, logout and session resolution.
type AuthService struct {
	users     ports.UserRepository
	revoker   SessionRevoker
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, revoker SessionRevoker, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 15 * 24 * time.Hour
	}
	return &AuthService{users: users, revoker: revoker, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// Register creates a new account and issues a session for it. The plaintext
// password is hashed with bcrypt; it is never stored or logged.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, *ports.Session, error) {
	if !emailPattern.MatchString(in.Email) {
		return nil, nil, domain.ErrInvalidEmail
	}
	if len(in.Password) < minPasswordLength {
		return nil, nil, domain.ErrPasswordTooShort
	}

	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		return nil, nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, nil, err
	}
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: string(hash),
		Following:    []string{},
		Followers:    []string{},
		LikedPosts:   []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.issueSession(created.ID)
	if err != nil {
		return nil, nil, err
	}

	metrics.RegistrationsTotal.Inc()
	s.log.Info().Str("username", created.Username).Msg("account created")

	return created, session, nil
}

// Login verifies credentials and issues a session. Unknown usernames and wrong
// passwords both yield ErrInvalidCredentials so callers cannot enumerate users.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, *ports.Session, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, nil, domain.ErrInvalidCredentials
	}

	session, err := s.issueSession(user.ID)
	if err != nil {
		return nil, nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("username", user.Username).Msg("login")

	return user, session, nil
}

// Logout denylists the token until its natural expiry, so the session is dead
// server-side even if a copy of the cookie survives.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.revoker.Revoke(ctx, tokenID, ttl)
}

// CurrentUser resolves an authenticated user ID to its account.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) issueSession(userID string) (*ports.Session, error) {
	expiresAt := time.Now().Add(s.tokenTTL)
	claims := jwt.MapClaims{
		"sub": userID,
		"jti": uuid.NewString(),
		"exp": expiresAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}
	return &ports.Session{Token: signed, ExpiresAt: expiresAt}, nil
}

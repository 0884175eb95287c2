package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sociogram/social-api/internal/core/domain"
	"github.com/sociogram/social-api/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Following = append([]string(nil), u.Following...)
	clone.Followers = append([]string(nil), u.Followers...)
	clone.LikedPosts = append([]string(nil), u.LikedPosts...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindManyByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) AddFollow(_ context.Context, actorID, targetID string) error {
	target, ok := r.users[targetID]
	if !ok {
		return domain.ErrUserNotFound
	}
	actor, ok := r.users[actorID]
	if !ok {
		return domain.ErrUserNotFound
	}
	target.Followers = addToSet(target.Followers, actorID)
	actor.Following = addToSet(actor.Following, targetID)
	return nil
}

func (r *stubUserRepo) RemoveFollow(_ context.Context, actorID, targetID string) error {
	target, ok := r.users[targetID]
	if !ok {
		return domain.ErrUserNotFound
	}
	actor, ok := r.users[actorID]
	if !ok {
		return domain.ErrUserNotFound
	}
	target.Followers = removeFromSet(target.Followers, actorID)
	actor.Following = removeFromSet(actor.Following, targetID)
	return nil
}

func (r *stubUserRepo) AddLikedPost(_ context.Context, userID, postID string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.LikedPosts = addToSet(u.LikedPosts, postID)
	return nil
}

func (r *stubUserRepo) RemoveLikedPost(_ context.Context, userID, postID string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.LikedPosts = removeFromSet(u.LikedPosts, postID)
	return nil
}

func (r *stubUserRepo) SampleExcluding(_ context.Context, excludeID string, size int) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.ID == excludeID {
			continue
		}
		out = append(out, cloneUser(u))
		if len(out) == size {
			break
		}
	}
	return out, nil
}

func addToSet(set []string, v string) []string {
	for _, s := range set {
		if s == v {
			return set
		}
	}
	return append(set, v)
}

func removeFromSet(set []string, v string) []string {
	out := set[:0]
	for _, s := range set {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}

type stubRevoker struct {
	revoked map[string]time.Duration
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]time.Duration)}
}

func (s *stubRevoker) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	s.revoked[tokenID] = ttl
	return nil
}

func (s *stubRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := s.revoked[tokenID]
	return ok, nil
}

func signupInput(username string) ports.RegisterInput {
	return ports.RegisterInput{
		Username: username,
		FullName: "Test User",
		Email:    username + "@example.com",
		Password: "s3cret99",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubRevoker(), "secret", time.Hour, zerolog.Nop())

	user, session, err := svc.Register(context.Background(), signupInput("alice"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil || user.ID == "" {
		t.Fatalf("expected created user with ID, got %+v", user)
	}
	if user.PasswordHash == "s3cret99" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret99")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if session == nil || session.Token == "" {
		t.Fatalf("expected session token")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(session.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if sub, _ := claims.GetSubject(); sub != user.ID {
		t.Fatalf("expected sub %q, got %q", user.ID, sub)
	}
	if jti, _ := claims["jti"].(string); jti == "" {
		t.Fatalf("expected jti claim")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubRevoker(), "secret", time.Hour, zerolog.Nop())

	in := signupInput("bob")
	in.Email = "not-an-email"
	if _, _, err := svc.Register(context.Background(), in); err != domain.ErrInvalidEmail {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}

	in = signupInput("bob")
	in.Password = "short"
	if _, _, err := svc.Register(context.Background(), in); err != domain.ErrPasswordTooShort {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubRevoker(), "secret", time.Hour, zerolog.Nop())

	if _, _, err := svc.Register(context.Background(), signupInput("bob")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	if _, _, err := svc.Register(context.Background(), signupInput("bob")); err != domain.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	in := signupInput("robert")
	in.Email = "bob@example.com"
	if _, _, err := svc.Register(context.Background(), in); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubRevoker(), "secret", time.Hour, zerolog.Nop())

	created, _, err := svc.Register(context.Background(), signupInput("carol"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, session, err := svc.Login(context.Background(), "carol", "s3cret99")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("expected user %q, got %q", created.ID, user.ID)
	}
	if session == nil || session.Token == "" {
		t.Fatalf("expected session token")
	}
	if !session.ExpiresAt.After(time.Now()) {
		t.Fatalf("expected future expiry, got %v", session.ExpiresAt)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubRevoker(), "secret", time.Hour, zerolog.Nop())

	if _, _, err := svc.Register(context.Background(), signupInput("dave")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Unknown username and wrong password must be indistinguishable.
	if _, _, err := svc.Login(context.Background(), "nobody", "whatever"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "dave", "wrongpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	revoker := newStubRevoker()
	svc := NewAuthService(newStubUserRepo(), revoker, "secret", time.Hour, zerolog.Nop())

	if err := svc.Logout(context.Background(), "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if revoked, _ := revoker.IsRevoked(context.Background(), "jti-1"); !revoked {
		t.Fatalf("expected token to be revoked")
	}
	if ttl := revoker.revoked["jti-1"]; ttl <= 0 || ttl > time.Hour {
		t.Fatalf("unexpected revocation ttl: %v", ttl)
	}
}

func TestAuthService_Logout_ExpiredTokenIsNoop(t *testing.T) {
	revoker := newStubRevoker()
	svc := NewAuthService(newStubUserRepo(), revoker, "secret", time.Hour, zerolog.Nop())

	if err := svc.Logout(context.Background(), "jti-2", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if revoked, _ := revoker.IsRevoked(context.Background(), "jti-2"); revoked {
		t.Fatalf("expired token should not hit the denylist")
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubRevoker(), "secret", time.Hour, zerolog.Nop())

	created, _, err := svc.Register(context.Background(), signupInput("erin"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, err := svc.CurrentUser(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("CurrentUser failed: %v", err)
	}
	if user.Username != "erin" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.CurrentUser(context.Background(), "missing"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

package ports

import (
	"context"

	"github.com/sociogram/social-api/internal/core/domain"
)

// UpdateProfileInput carries the profile update payload. Empty string fields
// are left unchanged. A password change requires both CurrentPassword and
// NewPassword. ProfileImg and CoverImg are raw image payloads to upload.
type UpdateProfileInput struct {
	FullName        string
	Email           string
	Username        string
	Bio             string
	Link            string
	CurrentPassword string
	NewPassword     string
	ProfileImg      string
	CoverImg        string
}

// UserService implements profile reads and social-graph mutations.
type UserService interface {
	Profile(ctx context.Context, username string) (*domain.User, error)
	// Suggested returns a bounded randomized sample of users the actor does
	// not yet follow, never including the actor.
	Suggested(ctx context.Context, actorID string) ([]*domain.User, error)
	// ToggleFollow follows target when no edge exists and unfollows otherwise,
	// reporting whether the actor follows target after the call.
	ToggleFollow(ctx context.Context, actorID, targetID string) (bool, error)
	UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*domain.User, error)
}

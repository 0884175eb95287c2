package ports

import (
	"context"

	"github.com/sociogram/social-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts and their
// denormalized social sets.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindManyByIDs returns the users whose IDs appear in ids; missing IDs are
	// silently skipped.
	FindManyByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	// Update persists mutable profile fields (full name, email, username, bio,
	// link, images, password hash) of an existing user.
	Update(ctx context.Context, user *domain.User) error

	// AddFollow adds actorID to target.followers and targetID to
	// actor.following. The two documents are updated independently; a crash
	// between the writes can leave a half-applied edge until the next toggle.
	AddFollow(ctx context.Context, actorID, targetID string) error
	RemoveFollow(ctx context.Context, actorID, targetID string) error

	AddLikedPost(ctx context.Context, userID, postID string) error
	RemoveLikedPost(ctx context.Context, userID, postID string) error

	// SampleExcluding returns up to size random users, excluding excludeID.
	SampleExcluding(ctx context.Context, excludeID string, size int) ([]*domain.User, error)
}

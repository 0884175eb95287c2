package ports

import (
	"context"

	"github.com/sociogram/social-api/internal/core/domain"
)

// CreatePostInput carries the new-post payload. At least one of Text or Image
// must be present; Image is the raw payload handed to the asset store.
type CreatePostInput struct {
	Text  string
	Image string
}

// PostService implements content mutations and feed queries.
type PostService interface {
	Create(ctx context.Context, authorID string, in CreatePostInput) (*domain.Post, error)
	// Delete removes the post and best-effort deletes its hosted image. Only
	// the post's author may delete it.
	Delete(ctx context.Context, requesterID, postID string) error
	Comment(ctx context.Context, authorID, postID, text string) (*domain.Post, error)
	// ToggleLike likes the post when the actor has not liked it and unlikes it
	// otherwise, returning the new liked state and the resulting like set.
	ToggleLike(ctx context.Context, actorID, postID string) (bool, []string, error)

	All(ctx context.Context) ([]*domain.Post, error)
	Liked(ctx context.Context, userID string) ([]*domain.Post, error)
	Following(ctx context.Context, userID string) ([]*domain.Post, error)
	ByUsername(ctx context.Context, username string) ([]*domain.Post, error)
}

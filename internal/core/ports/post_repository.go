package ports

import (
	"context"

	"github.com/sociogram/social-api/internal/core/domain"
)

// PostRepository defines persistence operations for posts. All list methods
// return posts ordered by creation time descending.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	Delete(ctx context.Context, id string) error

	// AddComment appends a comment to the post's ordered sequence and returns
	// the updated post.
	AddComment(ctx context.Context, postID string, comment domain.Comment) (*domain.Post, error)

	// AddLike / RemoveLike mutate only the post's like set. The liker's
	// likedPosts mirror is written separately through UserRepository; the pair
	// is not atomic across documents.
	AddLike(ctx context.Context, postID, userID string) error
	RemoveLike(ctx context.Context, postID, userID string) error

	ListAll(ctx context.Context) ([]*domain.Post, error)
	ListByUserID(ctx context.Context, userID string) ([]*domain.Post, error)
	ListByUserIDs(ctx context.Context, userIDs []string) ([]*domain.Post, error)
	ListByIDs(ctx context.Context, ids []string) ([]*domain.Post, error)
}

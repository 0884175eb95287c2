package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/sociogram/social-api/internal/api/metrics"
	"github.com/sociogram/social-api/internal/core/domain"
	"github.com/sociogram/social-api/internal/core/ports"
	"github.com/sociogram/social-api/internal/pkg/security"
)

// PostService implements content mutations and feed queries.
type PostService struct {
	posts         ports.PostRepository
	users         ports.UserRepository
	notifications ports.NotificationRepository
	assets        ports.AssetStore
	sanitizer     *security.TextSanitizer
	log           zerolog.Logger
}

func NewPostService(
	posts ports.PostRepository,
	users ports.UserRepository,
	notifications ports.NotificationRepository,
	assets ports.AssetStore,
	sanitizer *security.TextSanitizer,
	log zerolog.Logger,
) *PostService {
	return &PostService{
		posts:         posts,
		users:         users,
		notifications: notifications,
		assets:        assets,
		sanitizer:     sanitizer,
		log:           log,
	}
}

// Create stores a new post. At least one of text or image is required; image
// bytes go to the asset store and only the returned URL is persisted.
func (s *PostService) Create(ctx context.Context, authorID string, in ports.CreatePostInput) (*domain.Post, error) {
	if _, err := s.users.FindByID(ctx, authorID); err != nil {
		return nil, err
	}

	text := s.sanitizer.Sanitize(in.Text)
	if text == "" && in.Image == "" {
		return nil, domain.ErrEmptyPost
	}

	var imageURL string
	if in.Image != "" {
		url, err := s.assets.Upload(ctx, in.Image)
		if err != nil {
			s.log.Error().Err(err).Msg("asset upload failed")
			return nil, err
		}
		imageURL = url
	}

	post := &domain.Post{
		UserID:    authorID,
		Text:      text,
		ImageURL:  imageURL,
		Likes:     []string{},
		Comments:  []domain.Comment{},
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	metrics.PostsCreatedTotal.WithLabelValues(postKind(text, imageURL)).Inc()
	s.log.Info().Str("post_id", created.ID).Str("author", authorID).Msg("post created")

	return created, nil
}

// Delete removes the post after an ownership check, then best-effort deletes
// the hosted image. Asset cleanup failures are logged and never roll back the
// post deletion.
func (s *PostService) Delete(ctx context.Context, requesterID, postID string) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != requesterID {
		return domain.ErrNotOwner
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}

	if post.ImageURL != "" {
		if err := s.assets.Delete(ctx, post.ImageURL); err != nil {
			s.log.Warn().Err(err).Str("url", post.ImageURL).Msg("failed to delete post asset")
		}
	}

	s.log.Info().Str("post_id", postID).Msg("post deleted")
	return nil
}

// Comment appends a comment to the post's ordered sequence and notifies the
// post's author. Comments are immutable once created.
func (s *PostService) Comment(ctx context.Context, authorID, postID, text string) (*domain.Post, error) {
	text = s.sanitizer.Sanitize(text)
	if text == "" {
		return nil, domain.ErrEmptyComment
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	updated, err := s.posts.AddComment(ctx, postID, domain.Comment{
		UserID:    authorID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	metrics.CommentsCreatedTotal.Inc()

	if post.UserID != authorID {
		s.notify(ctx, authorID, post.UserID, domain.NotificationComment)
	}

	return updated, nil
}

// ToggleLike likes the post when the actor has not liked it and unlikes it
// otherwise. The post's like set and the actor's likedPosts set are updated as
// two single-document writes; they may transiently diverge if the second write
// fails, which the caller sees as an error.
func (s *PostService) ToggleLike(ctx context.Context, actorID, postID string) (bool, []string, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return false, nil, err
	}

	if post.LikedBy(actorID) {
		if err := s.posts.RemoveLike(ctx, postID, actorID); err != nil {
			return true, nil, err
		}
		if err := s.users.RemoveLikedPost(ctx, actorID, postID); err != nil {
			return false, nil, err
		}
		metrics.LikesToggledTotal.WithLabelValues("unlike").Inc()
		return false, without(post.Likes, actorID), nil
	}

	if err := s.posts.AddLike(ctx, postID, actorID); err != nil {
		return false, nil, err
	}
	if err := s.users.AddLikedPost(ctx, actorID, postID); err != nil {
		return true, nil, err
	}
	metrics.LikesToggledTotal.WithLabelValues("like").Inc()

	if post.UserID != actorID {
		s.notify(ctx, actorID, post.UserID, domain.NotificationLike)
	}

	return true, append(without(post.Likes, actorID), actorID), nil
}

// All returns every post, newest first, with authors hydrated.
func (s *PostService) All(ctx context.Context) ([]*domain.Post, error) {
	posts, err := s.posts.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, posts)
}

// Liked returns the posts in the user's likedPosts set.
func (s *PostService) Liked(ctx context.Context, userID string) ([]*domain.Post, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.ListByIDs(ctx, user.LikedPosts)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, posts)
}

// Following returns the feed of posts authored by users the caller follows.
func (s *PostService) Following(ctx context.Context, userID string) ([]*domain.Post, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.ListByUserIDs(ctx, user.Following)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, posts)
}

// ByUsername returns the posts authored by the named user.
func (s *PostService) ByUsername(ctx context.Context, username string) ([]*domain.Post, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.ListByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, posts)
}

// notify inserts a notification record; failures are logged, never surfaced.
func (s *PostService) notify(ctx context.Context, fromID, toID string, typ domain.NotificationType) {
	n := &domain.Notification{
		FromID:    fromID,
		ToID:      toID,
		Type:      typ,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.notifications.Insert(ctx, n); err != nil {
		s.log.Warn().Err(err).Str("to", toID).Str("type", string(typ)).Msg("failed to insert notification")
		return
	}
	metrics.NotificationsCreatedTotal.WithLabelValues(string(typ)).Inc()
}

// hydrate attaches scrubbed author records to posts and their comments with a
// single batched user lookup.
func (s *PostService) hydrate(ctx context.Context, posts []*domain.Post) ([]*domain.Post, error) {
	if len(posts) == 0 {
		return []*domain.Post{}, nil
	}

	seen := make(map[string]struct{})
	var ids []string
	add := func(id string) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, p := range posts {
		add(p.UserID)
		for _, c := range p.Comments {
			add(c.UserID)
		}
	}

	authors, err := s.users.FindManyByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.User, len(authors))
	for _, u := range authors {
		byID[u.ID] = scrubUser(u)
	}

	for _, p := range posts {
		p.Author = byID[p.UserID]
		for i := range p.Comments {
			p.Comments[i].Author = byID[p.Comments[i].UserID]
		}
	}
	return posts, nil
}

func postKind(text, imageURL string) string {
	switch {
	case text != "" && imageURL != "":
		return "mixed"
	case imageURL != "":
		return "image"
	default:
		return "text"
	}
}

// without returns ids minus id, preserving order.
func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sociogram/social-api/internal/api/metrics"
	"github.com/sociogram/social-api/internal/core/domain"
	"github.com/sociogram/social-api/internal/core/ports"
	"github.com/sociogram/social-api/internal/pkg/security"
)

const (
	suggestedSampleSize = 10
	suggestedLimit      = 4
)

// UserService implements profile reads and social-graph mutations.
type UserService struct {
	users         ports.UserRepository
	notifications ports.NotificationRepository
	assets        ports.AssetStore
	sanitizer     *security.TextSanitizer
	log           zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	notifications ports.NotificationRepository,
	assets ports.AssetStore,
	sanitizer *security.TextSanitizer,
	log zerolog.Logger,
) *UserService {
	return &UserService{
		users:         users,
		notifications: notifications,
		assets:        assets,
		sanitizer:     sanitizer,
		log:           log,
	}
}

// Profile returns the public profile for username.
func (s *UserService) Profile(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return scrubUser(user), nil
}

// Suggested returns up to four random users the actor does not follow yet. A
// larger sample is drawn first so already-followed users can be dropped
// without another round trip.
func (s *UserService) Suggested(ctx context.Context, actorID string) ([]*domain.User, error) {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	sample, err := s.users.SampleExcluding(ctx, actorID, suggestedSampleSize)
	if err != nil {
		return nil, err
	}

	suggested := make([]*domain.User, 0, suggestedLimit)
	for _, u := range sample {
		if actor.IsFollowing(u.ID) {
			continue
		}
		suggested = append(suggested, scrubUser(u))
		if len(suggested) == suggestedLimit {
			break
		}
	}
	return suggested, nil
}

// ToggleFollow follows target when the actor is not in target.followers and
// unfollows otherwise. Both users' sets are mutated; a "follow" notification
// is emitted on follow only. Returns whether the actor follows target after
// the call.
func (s *UserService) ToggleFollow(ctx context.Context, actorID, targetID string) (bool, error) {
	if actorID == targetID {
		return false, domain.ErrSelfFollow
	}

	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return false, err
	}

	following := false
	for _, id := range target.Followers {
		if id == actorID {
			following = true
			break
		}
	}

	if following {
		if err := s.users.RemoveFollow(ctx, actorID, targetID); err != nil {
			return true, err
		}
		metrics.FollowsToggledTotal.WithLabelValues("unfollow").Inc()
		return false, nil
	}

	if err := s.users.AddFollow(ctx, actorID, targetID); err != nil {
		return false, err
	}
	metrics.FollowsToggledTotal.WithLabelValues("follow").Inc()

	notification := &domain.Notification{
		FromID:    actorID,
		ToID:      targetID,
		Type:      domain.NotificationFollow,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.notifications.Insert(ctx, notification); err != nil {
		s.log.Warn().Err(err).Str("to", targetID).Msg("failed to insert follow notification")
	} else {
		metrics.NotificationsCreatedTotal.WithLabelValues(string(domain.NotificationFollow)).Inc()
	}

	return true, nil
}

// UpdateProfile applies the non-empty fields of in to the user's profile.
// Username and email changes re-run the uniqueness checks; a password change
// requires the current password; new images replace (and best-effort delete)
// the previously hosted ones.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if (in.CurrentPassword == "") != (in.NewPassword == "") {
		return nil, domain.ErrPasswordPair
	}
	if in.NewPassword != "" {
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)) != nil {
			return nil, domain.ErrInvalidCredentials
		}
		if len(in.NewPassword) < minPasswordLength {
			return nil, domain.ErrPasswordTooShort
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if in.Username != "" && in.Username != user.Username {
		if other, err := s.users.FindByUsername(ctx, in.Username); err == nil && other.ID != userID {
			return nil, domain.ErrUsernameTaken
		} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		user.Username = in.Username
	}
	if in.Email != "" && in.Email != user.Email {
		if !emailPattern.MatchString(in.Email) {
			return nil, domain.ErrInvalidEmail
		}
		if other, err := s.users.FindByEmail(ctx, in.Email); err == nil && other.ID != userID {
			return nil, domain.ErrEmailTaken
		} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		user.Email = in.Email
	}

	if in.FullName != "" {
		user.FullName = in.FullName
	}
	if in.Bio != "" {
		user.Bio = s.sanitizer.Sanitize(in.Bio)
	}
	if in.Link != "" {
		user.Link = in.Link
	}

	if in.ProfileImg != "" {
		url, err := s.replaceImage(ctx, user.ProfileImg, in.ProfileImg)
		if err != nil {
			return nil, err
		}
		user.ProfileImg = url
	}
	if in.CoverImg != "" {
		url, err := s.replaceImage(ctx, user.CoverImg, in.CoverImg)
		if err != nil {
			return nil, err
		}
		user.CoverImg = url
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("username", user.Username).Msg("profile updated")
	return scrubUser(user), nil
}

// replaceImage uploads the new payload and best-effort deletes the previous
// asset. Cleanup failures are logged, never surfaced.
func (s *UserService) replaceImage(ctx context.Context, oldURL, payload string) (string, error) {
	url, err := s.assets.Upload(ctx, payload)
	if err != nil {
		return "", err
	}
	if oldURL != "" {
		if err := s.assets.Delete(ctx, oldURL); err != nil {
			s.log.Warn().Err(err).Str("url", oldURL).Msg("failed to delete replaced asset")
		}
	}
	return url, nil
}

// scrubUser returns a copy of u with the password hash cleared, so hashes can
// never leak through embedded author references regardless of serialization.
func scrubUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""
	return &clone
}

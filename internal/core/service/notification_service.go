package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sociogram/social-api/internal/core/domain"
	"github.com/sociogram/social-api/internal/core/ports"
)

// NotificationService implements notification reads and deletion with
// ownership checks.
type NotificationService struct {
	notifications ports.NotificationRepository
	users         ports.UserRepository
	log           zerolog.Logger
}

func NewNotificationService(notifications ports.NotificationRepository, users ports.UserRepository, log zerolog.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, users: users, log: log}
}

// List returns all notifications addressed to userID with the sender's public
// identity attached, then marks them all read. The returned records reflect
// the pre-read state.
func (s *NotificationService) List(ctx context.Context, userID string) ([]*domain.Notification, error) {
	items, err := s.notifications.ListByRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(items) > 0 {
		seen := make(map[string]struct{})
		var ids []string
		for _, n := range items {
			if _, ok := seen[n.FromID]; !ok {
				seen[n.FromID] = struct{}{}
				ids = append(ids, n.FromID)
			}
		}
		senders, err := s.users.FindManyByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		byID := make(map[string]*domain.User, len(senders))
		for _, u := range senders {
			byID[u.ID] = &domain.User{ID: u.ID, Username: u.Username, ProfileImg: u.ProfileImg}
		}
		for _, n := range items {
			n.From = byID[n.FromID]
		}

		if err := s.notifications.MarkAllRead(ctx, userID); err != nil {
			return nil, err
		}
	}

	return items, nil
}

// DeleteOne removes a single notification; only its recipient may delete it.
func (s *NotificationService) DeleteOne(ctx context.Context, requesterID, notificationID string) error {
	n, err := s.notifications.FindByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.ToID != requesterID {
		return domain.ErrNotOwner
	}
	return s.notifications.Delete(ctx, notificationID)
}

// DeleteAll removes every notification addressed to the requester.
func (s *NotificationService) DeleteAll(ctx context.Context, requesterID string) error {
	return s.notifications.DeleteAllForRecipient(ctx, requesterID)
}

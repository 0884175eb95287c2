package ports

import (
	"context"

	"github.com/sociogram/social-api/internal/core/domain"
)

// NotificationService implements notification reads and deletion with
// ownership checks.
type NotificationService interface {
	// List returns all notifications addressed to userID and, as an observable
	// side effect, marks them all read.
	List(ctx context.Context, userID string) ([]*domain.Notification, error)
	DeleteOne(ctx context.Context, requesterID, notificationID string) error
	DeleteAll(ctx context.Context, requesterID string) error
}

package domain

import "time"

// NotificationType enumerates the events that produce a notification.
type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationFollow  NotificationType = "follow"
	NotificationComment NotificationType = "comment"
)

// Notification records a social event addressed to a single user. It is
// created as a side effect of a like, follow or comment and is owned (and
// deletable) only by its recipient.
type Notification struct {
	ID        string           `json:"_id"`
	FromID    string           `json:"fromId"`
	ToID      string           `json:"toId"`
	Type      NotificationType `json:"type"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`

	// From is populated on reads with the sender's public identity.
	From *User `json:"from,omitempty"`
}

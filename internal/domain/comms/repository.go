package comms

import (
	"context"

	"github.com/google/uuid"
)

// NotificationFilter defines filtering options for notification queries
type NotificationFilter struct {
	SchoolID *uuid.UUID
	UserID   *uuid.UUID
	Limit    int
}

// AnnouncementFilter defines filtering options for announcement queries
type AnnouncementFilter struct {
	SchoolID      *uuid.UUID
	PublishedOnly bool
	Limit         int
}

// NotificationRepository defines the interface for notification persistence
type NotificationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)

	// FindAll finds notifications matching the filter, newest first
	FindAll(ctx context.Context, filter NotificationFilter) ([]Notification, error)

	// CountUnreadByUser counts unread notifications for a user
	CountUnreadByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	Save(ctx context.Context, notification *Notification) error
}

// AnnouncementRepository defines the interface for announcement persistence
type AnnouncementRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Announcement, error)

	// FindAll finds announcements matching the filter, newest first
	FindAll(ctx context.Context, filter AnnouncementFilter) ([]Announcement, error)

	Save(ctx context.Context, announcement *Announcement) error
}

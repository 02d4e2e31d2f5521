package comms

import (
	"time"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/shared"
)

// NotificationPriority represents how urgently a notification should surface
type NotificationPriority string

const (
	NotificationPriorityLow    NotificationPriority = "low"
	NotificationPriorityNormal NotificationPriority = "normal"
	NotificationPriorityHigh   NotificationPriority = "high"
	NotificationPriorityUrgent NotificationPriority = "urgent"
)

// IsValid checks if the priority is a valid NotificationPriority
func (p NotificationPriority) IsValid() bool {
	switch p {
	case NotificationPriorityLow, NotificationPriorityNormal,
		NotificationPriorityHigh, NotificationPriorityUrgent:
		return true
	}
	return false
}

// Notification is a message addressed to one user within a school
type Notification struct {
	shared.BaseEntity
	SchoolID uuid.UUID            `json:"school_id"`
	UserID   uuid.UUID            `json:"user_id"`
	Type     string               `json:"type"`
	Title    string               `json:"title"`
	Message  string               `json:"message"`
	Priority NotificationPriority `json:"priority"`
	IsRead   bool                 `json:"is_read"`
}

// NewNotification creates an unread notification. An empty priority
// defaults to normal.
func NewNotification(
	schoolID uuid.UUID,
	userID uuid.UUID,
	notificationType string,
	title string,
	message string,
	priority NotificationPriority,
) (*Notification, error) {
	if schoolID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SCHOOL", "School ID cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if notificationType == "" {
		return nil, shared.NewDomainError("INVALID_TYPE", "Notification type cannot be empty")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Notification title cannot be empty")
	}
	if message == "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Notification message cannot be empty")
	}
	if priority == "" {
		priority = NotificationPriorityNormal
	}
	if !priority.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRIORITY", "Notification priority is not valid")
	}

	return &Notification{
		BaseEntity: shared.NewBaseEntity(),
		SchoolID:   schoolID,
		UserID:     userID,
		Type:       notificationType,
		Title:      title,
		Message:    message,
		Priority:   priority,
		IsRead:     false,
	}, nil
}

// MarkRead flags the notification as read
func (n *Notification) MarkRead() {
	n.IsRead = true
	n.UpdatedAt = time.Now()
}

package comms

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/comms"
	"go.uber.org/zap"
)

// NotificationService provides application-level notification operations
type NotificationService struct {
	notificationRepo comms.NotificationRepository
	logger           *zap.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo comms.NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID        uuid.UUID `json:"id"`
	SchoolID  uuid.UUID `json:"school_id"`
	UserID    uuid.UUID `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Priority  string    `json:"priority"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateNotificationRequest represents a request to send a notification
type CreateNotificationRequest struct {
	SchoolID uuid.UUID `json:"school_id" binding:"required"`
	UserID   uuid.UUID `json:"user_id" binding:"required"`
	Type     string    `json:"type" binding:"required"`
	Title    string    `json:"title" binding:"required"`
	Message  string    `json:"message" binding:"required"`
	Priority string    `json:"priority"`
}

// NotificationListFilter defines filtering options for notification queries
type NotificationListFilter struct {
	SchoolID *uuid.UUID `form:"school_id"`
	UserID   *uuid.UUID `form:"user_id"`
	Limit    int        `form:"limit"`
}

// CreateNotification creates a notification addressed to a user
func (s *NotificationService) CreateNotification(ctx context.Context, req CreateNotificationRequest) (*NotificationResponse, error) {
	notification, err := comms.NewNotification(
		req.SchoolID,
		req.UserID,
		req.Type,
		req.Title,
		req.Message,
		comms.NotificationPriority(req.Priority),
	)
	if err != nil {
		return nil, err
	}

	if err := s.notificationRepo.Save(ctx, notification); err != nil {
		return nil, err
	}

	s.logger.Info("Notification created",
		zap.String("notification_id", notification.ID.String()),
		zap.String("user_id", notification.UserID.String()),
		zap.String("type", notification.Type))

	return toNotificationResponse(notification), nil
}

// ListNotifications lists notifications newest first
func (s *NotificationService) ListNotifications(ctx context.Context, filter NotificationListFilter) ([]NotificationResponse, error) {
	notifications, err := s.notificationRepo.FindAll(ctx, comms.NotificationFilter{
		SchoolID: filter.SchoolID,
		UserID:   filter.UserID,
		Limit:    filter.Limit,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = *toNotificationResponse(&n)
	}
	return responses, nil
}

// MarkRead flags a notification as read. Marking an already-read
// notification is a no-op.
func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) (*NotificationResponse, error) {
	notification, err := s.notificationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	notification.MarkRead()
	if err := s.notificationRepo.Save(ctx, notification); err != nil {
		return nil, err
	}
	return toNotificationResponse(notification), nil
}

// CountUnread counts a user's unread notifications
func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notificationRepo.CountUnreadByUser(ctx, userID)
}

func toNotificationResponse(n *comms.Notification) *NotificationResponse {
	return &NotificationResponse{
		ID:        n.ID,
		SchoolID:  n.SchoolID,
		UserID:    n.UserID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Priority:  string(n.Priority),
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

package comms

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/comms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockNotificationRepository is a mock implementation of comms.NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*comms.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*comms.Notification), args.Error(1)
}

func (m *MockNotificationRepository) FindAll(ctx context.Context, filter comms.NotificationFilter) ([]comms.Notification, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]comms.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnreadByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) Save(ctx context.Context, notification *comms.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func TestNotificationService_CreateNotification(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults priority to normal", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		service := NewNotificationService(repo, zap.NewNop())
		repo.On("Save", ctx, mock.AnythingOfType("*comms.Notification")).Return(nil)

		resp, err := service.CreateNotification(ctx, CreateNotificationRequest{
			SchoolID: uuid.New(),
			UserID:   uuid.New(),
			Type:     "payment_received",
			Title:    "Payment received",
			Message:  "Your payment was recorded.",
		})

		require.NoError(t, err)
		assert.Equal(t, "normal", resp.Priority)
		assert.False(t, resp.IsRead)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		service := NewNotificationService(repo, zap.NewNop())

		resp, err := service.CreateNotification(ctx, CreateNotificationRequest{
			SchoolID: uuid.New(),
			UserID:   uuid.New(),
			Type:     "payment_received",
			Message:  "Your payment was recorded.",
		})

		require.Error(t, err)
		assert.Nil(t, resp)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestNotificationService_MarkRead(t *testing.T) {
	ctx := context.Background()

	t.Run("flags the notification as read", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		service := NewNotificationService(repo, zap.NewNop())

		notification, err := comms.NewNotification(
			uuid.New(), uuid.New(), "overdue_invoice",
			"Invoice overdue", "Invoice INV-1 is overdue.", "",
		)
		require.NoError(t, err)

		repo.On("FindByID", ctx, notification.ID).Return(notification, nil)
		repo.On("Save", ctx, notification).Return(nil)

		resp, err := service.MarkRead(ctx, notification.ID)

		require.NoError(t, err)
		assert.True(t, resp.IsRead)
	})
}

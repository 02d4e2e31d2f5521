package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/comms"
	"github.com/preschool/backend/internal/domain/shared"
	"github.com/preschool/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormNotificationRepository implements comms.NotificationRepository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// FindByID finds a notification by its ID
func (r *GormNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*comms.Notification, error) {
	var model models.NotificationModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds notifications matching the filter, newest first
func (r *GormNotificationRepository) FindAll(ctx context.Context, filter comms.NotificationFilter) ([]comms.Notification, error) {
	var notificationModels []models.NotificationModel
	query := r.db.WithContext(ctx).Model(&models.NotificationModel{})
	if filter.SchoolID != nil {
		query = query.Where("school_id = ?", *filter.SchoolID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	query = query.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Find(&notificationModels).Error; err != nil {
		return nil, err
	}
	notifications := make([]comms.Notification, len(notificationModels))
	for i, model := range notificationModels {
		notifications[i] = *model.ToDomain()
	}
	return notifications, nil
}

// CountUnreadByUser counts unread notifications for a user
func (r *GormNotificationRepository) CountUnreadByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a notification
func (r *GormNotificationRepository) Save(ctx context.Context, notification *comms.Notification) error {
	model := models.NotificationModelFromDomain(notification)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormNotificationRepository implements comms.NotificationRepository
var _ comms.NotificationRepository = (*GormNotificationRepository)(nil)

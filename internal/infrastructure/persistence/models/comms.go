package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/comms"
)

// NotificationModel is the persistence model for the Notification entity.
type NotificationModel struct {
	BaseModel
	SchoolID uuid.UUID                  `gorm:"type:uuid;not null;index"`
	UserID   uuid.UUID                  `gorm:"type:uuid;not null;index"`
	Type     string                     `gorm:"type:varchar(50);not null"`
	Title    string                     `gorm:"type:varchar(200);not null"`
	Message  string                     `gorm:"type:text;not null"`
	Priority comms.NotificationPriority `gorm:"type:varchar(20);not null;default:'normal'"`
	IsRead   bool                       `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts the persistence model to a domain Notification entity.
func (m *NotificationModel) ToDomain() *comms.Notification {
	return &comms.Notification{
		BaseEntity: m.BaseModel.ToDomain(),
		SchoolID:   m.SchoolID,
		UserID:     m.UserID,
		Type:       m.Type,
		Title:      m.Title,
		Message:    m.Message,
		Priority:   m.Priority,
		IsRead:     m.IsRead,
	}
}

// FromDomain populates the persistence model from a domain Notification entity.
func (m *NotificationModel) FromDomain(n *comms.Notification) {
	m.FromDomainBaseEntity(n.BaseEntity)
	m.SchoolID = n.SchoolID
	m.UserID = n.UserID
	m.Type = n.Type
	m.Title = n.Title
	m.Message = n.Message
	m.Priority = n.Priority
	m.IsRead = n.IsRead
}

// NotificationModelFromDomain creates a new persistence model from a domain Notification.
func NotificationModelFromDomain(n *comms.Notification) *NotificationModel {
	m := &NotificationModel{}
	m.FromDomain(n)
	return m
}

// AnnouncementModel is the persistence model for the Announcement entity.
type AnnouncementModel struct {
	BaseModel
	SchoolID       uuid.UUID            `gorm:"type:uuid;not null;index"`
	CreatedBy      *uuid.UUID           `gorm:"type:uuid;index"`
	Title          string               `gorm:"type:varchar(200);not null"`
	Content        string               `gorm:"type:text;not null"`
	TargetAudience comms.TargetAudience `gorm:"type:varchar(20);not null;default:'all'"`
	IsPublished    bool                 `gorm:"not null;default:false;index"`
	PublishedAt    *time.Time
}

// TableName returns the table name for GORM
func (AnnouncementModel) TableName() string {
	return "announcements"
}

// ToDomain converts the persistence model to a domain Announcement entity.
func (m *AnnouncementModel) ToDomain() *comms.Announcement {
	return &comms.Announcement{
		BaseEntity:     m.BaseModel.ToDomain(),
		SchoolID:       m.SchoolID,
		CreatedBy:      m.CreatedBy,
		Title:          m.Title,
		Content:        m.Content,
		TargetAudience: m.TargetAudience,
		IsPublished:    m.IsPublished,
		PublishedAt:    m.PublishedAt,
	}
}

// FromDomain populates the persistence model from a domain Announcement entity.
func (m *AnnouncementModel) FromDomain(a *comms.Announcement) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.SchoolID = a.SchoolID
	m.CreatedBy = a.CreatedBy
	m.Title = a.Title
	m.Content = a.Content
	m.TargetAudience = a.TargetAudience
	m.IsPublished = a.IsPublished
	m.PublishedAt = a.PublishedAt
}

// AnnouncementModelFromDomain creates a new persistence model from a domain Announcement.
func AnnouncementModelFromDomain(a *comms.Announcement) *AnnouncementModel {
	m := &AnnouncementModel{}
	m.FromDomain(a)
	return m
}

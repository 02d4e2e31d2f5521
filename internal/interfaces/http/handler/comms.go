package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	commsapp "github.com/preschool/backend/internal/application/comms"
)

// CommsHandler handles notification and announcement API endpoints
type CommsHandler struct {
	*BaseHandler
	notificationService *commsapp.NotificationService
	announcementService *commsapp.AnnouncementService
}

// NewCommsHandler creates a new CommsHandler
func NewCommsHandler(
	base *BaseHandler,
	notificationService *commsapp.NotificationService,
	announcementService *commsapp.AnnouncementService,
) *CommsHandler {
	return &CommsHandler{
		BaseHandler:         base,
		notificationService: notificationService,
		announcementService: announcementService,
	}
}

// RegisterRoutes registers all comms routes
func (h *CommsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.ListNotifications)
		notifications.GET("/unread-count", h.CountUnread)
		notifications.POST("", h.CreateNotification)
		notifications.POST("/:id/read", h.MarkRead)
	}

	announcements := rg.Group("/announcements")
	{
		announcements.GET("", h.ListAnnouncements)
		announcements.GET("/:id", h.GetAnnouncement)
		announcements.POST("", h.CreateAnnouncement)
		announcements.POST("/:id/publish", h.PublishAnnouncement)
	}
}

// ===================== Notifications =====================

// ListNotifications lists notifications, newest first. Without an explicit
// user filter it returns the caller's own notifications.
func (h *CommsHandler) ListNotifications(c *gin.Context) {
	var filter commsapp.NotificationListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}
	if filter.UserID == nil {
		if userID := h.getUserID(c); userID != uuid.Nil {
			filter.UserID = &userID
		}
	}

	notifications, err := h.notificationService.ListNotifications(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, notifications)
}

// CountUnread returns the caller's unread notification count
func (h *CommsHandler) CountUnread(c *gin.Context) {
	count, err := h.notificationService.CountUnread(c.Request.Context(), h.getUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"unread": count})
}

// CreateNotification creates a notification addressed to a user
func (h *CommsHandler) CreateNotification(c *gin.Context) {
	var req commsapp.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	notification, err := h.notificationService.CreateNotification(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, notification)
}

// MarkRead marks a notification as read
func (h *CommsHandler) MarkRead(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	notification, err := h.notificationService.MarkRead(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, notification)
}

// ===================== Announcements =====================

// ListAnnouncements lists announcements, optionally only published ones
func (h *CommsHandler) ListAnnouncements(c *gin.Context) {
	var filter commsapp.AnnouncementListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	announcements, err := h.announcementService.ListAnnouncements(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, announcements)
}

// GetAnnouncement returns a single announcement
func (h *CommsHandler) GetAnnouncement(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	announcement, err := h.announcementService.GetAnnouncement(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, announcement)
}

// CreateAnnouncement creates an announcement, optionally publishing it
// immediately
func (h *CommsHandler) CreateAnnouncement(c *gin.Context) {
	var req commsapp.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	if userID := h.getUserID(c); userID != uuid.Nil {
		req.CreatedBy = &userID
	}

	announcement, err := h.announcementService.CreateAnnouncement(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, announcement)
}

// PublishAnnouncement publishes a draft announcement
func (h *CommsHandler) PublishAnnouncement(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	announcement, err := h.announcementService.PublishAnnouncement(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, announcement)
}

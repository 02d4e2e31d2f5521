package comms

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/comms"
	"go.uber.org/zap"
)

// AnnouncementService provides application-level announcement operations
type AnnouncementService struct {
	announcementRepo comms.AnnouncementRepository
	logger           *zap.Logger
}

// NewAnnouncementService creates a new AnnouncementService
func NewAnnouncementService(announcementRepo comms.AnnouncementRepository, logger *zap.Logger) *AnnouncementService {
	return &AnnouncementService{
		announcementRepo: announcementRepo,
		logger:           logger,
	}
}

// AnnouncementResponse represents an announcement in API responses
type AnnouncementResponse struct {
	ID             uuid.UUID  `json:"id"`
	SchoolID       uuid.UUID  `json:"school_id"`
	CreatedBy      *uuid.UUID `json:"created_by,omitempty"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	TargetAudience string     `json:"target_audience"`
	IsPublished    bool       `json:"is_published"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// CreateAnnouncementRequest represents a request to create an announcement
type CreateAnnouncementRequest struct {
	SchoolID       uuid.UUID  `json:"school_id" binding:"required"`
	Title          string     `json:"title" binding:"required"`
	Content        string     `json:"content" binding:"required"`
	TargetAudience string     `json:"target_audience"`
	IsPublished    bool       `json:"is_published"`
	CreatedBy      *uuid.UUID `json:"-"` // Set from JWT context, not from request body
}

// AnnouncementListFilter defines filtering options for announcement queries
type AnnouncementListFilter struct {
	SchoolID      *uuid.UUID `form:"school_id"`
	PublishedOnly bool       `form:"published_only"`
	Limit         int        `form:"limit"`
}

// CreateAnnouncement creates an announcement, optionally published
// immediately
func (s *AnnouncementService) CreateAnnouncement(ctx context.Context, req CreateAnnouncementRequest) (*AnnouncementResponse, error) {
	announcement, err := comms.NewAnnouncement(
		req.SchoolID,
		req.CreatedBy,
		req.Title,
		req.Content,
		comms.TargetAudience(req.TargetAudience),
		req.IsPublished,
	)
	if err != nil {
		return nil, err
	}

	if err := s.announcementRepo.Save(ctx, announcement); err != nil {
		return nil, err
	}

	s.logger.Info("Announcement created",
		zap.String("announcement_id", announcement.ID.String()),
		zap.Bool("published", announcement.IsPublished))

	return toAnnouncementResponse(announcement), nil
}

// GetAnnouncement gets an announcement by ID
func (s *AnnouncementService) GetAnnouncement(ctx context.Context, id uuid.UUID) (*AnnouncementResponse, error) {
	announcement, err := s.announcementRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAnnouncementResponse(announcement), nil
}

// ListAnnouncements lists announcements newest first
func (s *AnnouncementService) ListAnnouncements(ctx context.Context, filter AnnouncementListFilter) ([]AnnouncementResponse, error) {
	announcements, err := s.announcementRepo.FindAll(ctx, comms.AnnouncementFilter{
		SchoolID:      filter.SchoolID,
		PublishedOnly: filter.PublishedOnly,
		Limit:         filter.Limit,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]AnnouncementResponse, len(announcements))
	for i, a := range announcements {
		responses[i] = *toAnnouncementResponse(&a)
	}
	return responses, nil
}

// PublishAnnouncement makes a draft announcement visible
func (s *AnnouncementService) PublishAnnouncement(ctx context.Context, id uuid.UUID) (*AnnouncementResponse, error) {
	announcement, err := s.announcementRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	announcement.Publish()
	if err := s.announcementRepo.Save(ctx, announcement); err != nil {
		return nil, err
	}

	s.logger.Info("Announcement published", zap.String("announcement_id", id.String()))
	return toAnnouncementResponse(announcement), nil
}

func toAnnouncementResponse(a *comms.Announcement) *AnnouncementResponse {
	return &AnnouncementResponse{
		ID:             a.ID,
		SchoolID:       a.SchoolID,
		CreatedBy:      a.CreatedBy,
		Title:          a.Title,
		Content:        a.Content,
		TargetAudience: string(a.TargetAudience),
		IsPublished:    a.IsPublished,
		PublishedAt:    a.PublishedAt,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

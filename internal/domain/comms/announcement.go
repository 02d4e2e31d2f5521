package comms

import (
	"time"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/shared"
)

// TargetAudience identifies which school group an announcement addresses
type TargetAudience string

const (
	TargetAudienceAll      TargetAudience = "all"
	TargetAudienceParents  TargetAudience = "parents"
	TargetAudienceTeachers TargetAudience = "teachers"
	TargetAudienceStaff    TargetAudience = "staff"
)

// IsValid checks if the audience is a valid TargetAudience
func (a TargetAudience) IsValid() bool {
	switch a {
	case TargetAudienceAll, TargetAudienceParents, TargetAudienceTeachers, TargetAudienceStaff:
		return true
	}
	return false
}

// Announcement is a school-wide message, optionally held as a draft
// until published
type Announcement struct {
	shared.BaseEntity
	SchoolID       uuid.UUID      `json:"school_id"`
	CreatedBy      *uuid.UUID     `json:"created_by"`
	Title          string         `json:"title"`
	Content        string         `json:"content"`
	TargetAudience TargetAudience `json:"target_audience"`
	IsPublished    bool           `json:"is_published"`
	PublishedAt    *time.Time     `json:"published_at"`
}

// NewAnnouncement creates an announcement. An empty audience defaults to
// all; publishing immediately stamps PublishedAt.
func NewAnnouncement(
	schoolID uuid.UUID,
	createdBy *uuid.UUID,
	title string,
	content string,
	targetAudience TargetAudience,
	isPublished bool,
) (*Announcement, error) {
	if schoolID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SCHOOL", "School ID cannot be empty")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Announcement title cannot be empty")
	}
	if content == "" {
		return nil, shared.NewDomainError("INVALID_CONTENT", "Announcement content cannot be empty")
	}
	if targetAudience == "" {
		targetAudience = TargetAudienceAll
	}
	if !targetAudience.IsValid() {
		return nil, shared.NewDomainError("INVALID_AUDIENCE", "Target audience is not valid")
	}

	a := &Announcement{
		BaseEntity:     shared.NewBaseEntity(),
		SchoolID:       schoolID,
		CreatedBy:      createdBy,
		Title:          title,
		Content:        content,
		TargetAudience: targetAudience,
		IsPublished:    isPublished,
	}
	if isPublished {
		now := time.Now()
		a.PublishedAt = &now
	}
	return a, nil
}

// Publish makes a draft announcement visible and stamps the publish time
func (a *Announcement) Publish() {
	now := time.Now()
	a.IsPublished = true
	a.PublishedAt = &now
	a.UpdatedAt = now
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// SchoolModel holds the school reference data joined into receipt
// projections. Managed by migrations; no CRUD surface.
type SchoolModel struct {
	BaseModel
	Name    string `gorm:"type:varchar(200);not null"`
	Address string `gorm:"type:text"`
	Email   string `gorm:"type:varchar(255)"`
	Phone   string `gorm:"type:varchar(30)"`
}

// TableName returns the table name for GORM
func (SchoolModel) TableName() string {
	return "schools"
}

// StudentModel holds the student reference data that invoices and receipt
// projections link to. Managed by migrations; no CRUD surface.
type StudentModel struct {
	BaseModel
	SchoolID    uuid.UUID `gorm:"type:uuid;not null;index"`
	FirstName   string    `gorm:"type:varchar(100);not null"`
	LastName    string    `gorm:"type:varchar(100);not null"`
	DateOfBirth *time.Time
}

// TableName returns the table name for GORM
func (StudentModel) TableName() string {
	return "students"
}

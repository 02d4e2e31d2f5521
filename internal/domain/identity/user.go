package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/shared"
)

// Role represents a user's role within a school
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleParent  Role = "parent"
	RoleStaff   Role = "staff"
)

// DefaultRole is assigned when registration does not specify one
const DefaultRole = RoleParent

// IsValid checks if the role is a valid Role
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleParent, RoleStaff:
		return true
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// DefaultSchoolID is assigned to accounts registered without a school
var DefaultSchoolID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// User represents an account in the identity module. Password hashing is
// handled by the application layer; the aggregate only stores the hash.
type User struct {
	shared.BaseAggregateRoot
	SchoolID     uuid.UUID  `json:"school_id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Phone        string     `json:"phone"`
	Role         Role       `json:"role"`
	IsActive     bool       `json:"is_active"`
	LastLogin    *time.Time `json:"last_login"`
}

// NewUser creates an active user account. An empty role defaults to
// parent; a nil school falls back to the default school.
func NewUser(
	schoolID uuid.UUID,
	email string,
	passwordHash string,
	firstName string,
	lastName string,
	role Role,
) (*User, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	if firstName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "First name cannot be empty")
	}
	if lastName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Last name cannot be empty")
	}
	if role == "" {
		role = DefaultRole
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role is not valid")
	}
	if schoolID == uuid.Nil {
		schoolID = DefaultSchoolID
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SchoolID:          schoolID,
		Email:             email,
		PasswordHash:      passwordHash,
		FirstName:         firstName,
		LastName:          lastName,
		Role:              role,
		IsActive:          true,
	}, nil
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// RecordLogin stamps the last successful login time
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLogin = &now
	u.UpdatedAt = now
}

// Deactivate disables the account; login is rejected while inactive
func (u *User) Deactivate() {
	u.IsActive = false
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

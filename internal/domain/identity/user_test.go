package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active user", func(t *testing.T) {
		schoolID := uuid.New()
		u, err := NewUser(schoolID, "jo@school.example", "hash", "Jo", "Riley", RoleTeacher)
		require.NoError(t, err)
		assert.Equal(t, schoolID, u.SchoolID)
		assert.True(t, u.IsActive)
		assert.Nil(t, u.LastLogin)
		assert.Equal(t, "Jo Riley", u.FullName())
	})

	t.Run("empty role defaults to parent", func(t *testing.T) {
		u, err := NewUser(uuid.New(), "a@b.example", "hash", "A", "B", "")
		require.NoError(t, err)
		assert.Equal(t, RoleParent, u.Role)
	})

	t.Run("nil school falls back to default school", func(t *testing.T) {
		u, err := NewUser(uuid.Nil, "a@b.example", "hash", "A", "B", "")
		require.NoError(t, err)
		assert.Equal(t, DefaultSchoolID, u.SchoolID)
	})

	t.Run("rejects invalid role", func(t *testing.T) {
		_, err := NewUser(uuid.New(), "a@b.example", "hash", "A", "B", "principal")
		assert.Error(t, err)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		_, err := NewUser(uuid.New(), "", "hash", "A", "B", "")
		assert.Error(t, err)
		_, err = NewUser(uuid.New(), "a@b.example", "", "A", "B", "")
		assert.Error(t, err)
		_, err = NewUser(uuid.New(), "a@b.example", "hash", "", "B", "")
		assert.Error(t, err)
	})
}

func TestUserRecordLogin(t *testing.T) {
	u, err := NewUser(uuid.New(), "a@b.example", "hash", "A", "B", "")
	require.NoError(t, err)
	u.RecordLogin()
	require.NotNil(t, u.LastLogin)
}

func TestUserDeactivate(t *testing.T) {
	u, err := NewUser(uuid.New(), "a@b.example", "hash", "A", "B", "")
	require.NoError(t, err)
	u.Deactivate()
	assert.False(t, u.IsActive)
	assert.Equal(t, 2, u.GetVersion())
}

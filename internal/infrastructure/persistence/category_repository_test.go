package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/comms"
	"github.com/preschool/backend/internal/domain/shared"
	"github.com/preschool/backend/internal/domain/spending"
	"github.com/preschool/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newSQLiteDB opens an in-memory database for repository round-trips that
// don't touch Postgres-only SQL (row locking, ILIKE).
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.CategoryModel{},
		&models.NotificationModel{},
	))
	return db
}

func TestGormCategoryRepository(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()
	schoolID := uuid.New()

	t.Run("save and find round-trip", func(t *testing.T) {
		category, err := spending.NewCategory(schoolID, "Snacks", "Morning and afternoon snacks")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, category))

		found, err := repo.FindByID(ctx, category.ID)
		require.NoError(t, err)
		assert.Equal(t, "Snacks", found.Name)
		assert.Equal(t, schoolID, found.SchoolID)
	})

	t.Run("lists school categories ordered by name", func(t *testing.T) {
		for _, name := range []string{"Utilities", "Art supplies"} {
			category, err := spending.NewCategory(schoolID, name, "")
			require.NoError(t, err)
			require.NoError(t, repo.Save(ctx, category))
		}
		other, err := spending.NewCategory(uuid.New(), "Other school", "")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, other))

		categories, err := repo.FindBySchool(ctx, schoolID)
		require.NoError(t, err)
		require.Len(t, categories, 3)
		assert.Equal(t, "Art supplies", categories[0].Name)
		assert.Equal(t, "Utilities", categories[2].Name)
	})

	t.Run("delete removes the category", func(t *testing.T) {
		category, err := spending.NewCategory(schoolID, "Temporary", "")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, category))

		require.NoError(t, repo.Delete(ctx, category.ID))

		_, err = repo.FindByID(ctx, category.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("delete of unknown id reports not found", func(t *testing.T) {
		err := repo.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormNotificationRepository(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormNotificationRepository(db)
	ctx := context.Background()
	schoolID := uuid.New()
	userID := uuid.New()

	newSaved := func(t *testing.T, title string) *comms.Notification {
		t.Helper()
		n, err := comms.NewNotification(schoolID, userID, "payment_received", title, "A payment was recorded", "")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, n))
		return n
	}

	t.Run("save and find round-trip", func(t *testing.T) {
		n := newSaved(t, "Receipt ready")

		found, err := repo.FindByID(ctx, n.ID)
		require.NoError(t, err)
		assert.Equal(t, "Receipt ready", found.Title)
		assert.False(t, found.IsRead)
	})

	t.Run("filters by user", func(t *testing.T) {
		newSaved(t, "Second")
		otherUser := uuid.New()
		other, err := comms.NewNotification(schoolID, otherUser, "invoice_due", "Not yours", "Different recipient", "")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, other))

		notifications, err := repo.FindAll(ctx, comms.NotificationFilter{UserID: &userID})
		require.NoError(t, err)
		require.Len(t, notifications, 2)
		for _, n := range notifications {
			assert.Equal(t, userID, n.UserID)
		}
	})

	t.Run("unread count drops after mark read", func(t *testing.T) {
		n := newSaved(t, "Unread one")

		before, err := repo.CountUnreadByUser(ctx, userID)
		require.NoError(t, err)

		n.MarkRead()
		require.NoError(t, repo.Save(ctx, n))

		after, err := repo.CountUnreadByUser(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, before-1, after)
	})
}

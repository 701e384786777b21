package audit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hadithapp/hadith/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	return db
}

func TestRepository_LogEvent(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	event := &entities.AuditEvent{
		EventType:   entities.AuditEventBookmark,
		Action:      "bookmark_toggle",
		Description: "Saved Sahih Bukhari_5",
		EntityRef:   "Sahih Bukhari_5",
		Status:      entities.AuditStatusSuccess,
	}

	err := repo.LogEvent(event)
	require.NoError(t, err)
	assert.NotZero(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestRepository_GetEvents(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 15; i++ {
		require.NoError(t, repo.LogEvent(&entities.AuditEvent{
			EventType: entities.AuditEventBookmark,
			Action:    fmt.Sprintf("event_%d", i),
			Status:    entities.AuditStatusSuccess,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	t.Run("first page, newest first", func(t *testing.T) {
		events, total, err := repo.GetEvents(10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		require.Len(t, events, 10)
		assert.Equal(t, "event_14", events[0].Action)
	})

	t.Run("second page", func(t *testing.T) {
		events, total, err := repo.GetEvents(10, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		assert.Len(t, events, 5)
	})

	t.Run("default limit", func(t *testing.T) {
		events, _, err := repo.GetEvents(0, -3)
		require.NoError(t, err)
		assert.Len(t, events, 15)
	})
}

func TestRepository_GetEventsByType(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	require.NoError(t, repo.LogEvent(&entities.AuditEvent{EventType: entities.AuditEventBookmark, Action: "bookmark_toggle"}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{EventType: entities.AuditEventDiagnostic, Action: "bookmarks_save"}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{EventType: entities.AuditEventDiagnostic, Action: "bookmarks_load"}))

	events, total, err := repo.GetEventsByType(entities.AuditEventDiagnostic, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, e := range events {
		assert.Equal(t, entities.AuditEventDiagnostic, e.EventType)
	}
}

func TestRepository_GetEventsForEntity(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	require.NoError(t, repo.LogEvent(&entities.AuditEvent{EventType: entities.AuditEventBookmark, Action: "bookmark_add", EntityRef: "X_1"}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{EventType: entities.AuditEventBookmark, Action: "bookmark_add", EntityRef: "Y_2"}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{EventType: entities.AuditEventBookmark, Action: "bookmark_remove", EntityRef: "X_1"}))

	events, err := repo.GetEventsForEntity("X_1", 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "bookmark_remove", events[0].Action)
}

func TestRepository_DeleteOldEvents(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	require.NoError(t, repo.LogEvent(&entities.AuditEvent{Action: "old", CreatedAt: time.Now().Add(-48 * time.Hour)}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{Action: "new"}))

	deleted, err := repo.DeleteOldEvents(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	events, total, err := repo.GetEvents(10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "new", events[0].Action)
}

func TestRepository_GetEventByID(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	event := &entities.AuditEvent{Action: "lookup"}
	require.NoError(t, repo.LogEvent(event))

	found, err := repo.GetEventByID(event.ID)
	require.NoError(t, err)
	assert.Equal(t, "lookup", found.Action)

	_, err = repo.GetEventByID(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

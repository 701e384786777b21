package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8190), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 2, cfg.ShutdownTimeoutInSeconds)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, DefaultUserDatabasePath, cfg.Database.UserPath)
	assert.Equal(t, "savedHadiths", cfg.Bookmarks.StorageKey)
	assert.True(t, cfg.Bookmarks.CleanupEnabled)
	assert.Equal(t, "0 3 * * *", cfg.Bookmarks.CleanupSchedule)
	assert.Equal(t, 3, cfg.Search.MinLength)
	assert.Equal(t, 100, cfg.Search.Limit)
	assert.Equal(t, 30, cfg.Audit.RetentionDays)
	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 2, cfg.Tasks.Workers)
	assert.Equal(t, 5*time.Minute, cfg.Tasks.TaskTimeout)
}

func TestNewConfig_Environment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("BOOKMARKS_STORAGE_KEY", "legacyKey")
	t.Setenv("BOOKMARKS_CLEANUP_ENABLED", "false")
	t.Setenv("SEARCH_MIN_LENGTH", "2")
	t.Setenv("TASK_RELEASE_AFTER", "30s")

	cfg := NewConfig()

	assert.Equal(t, int32(9000), cfg.HTTP.Port)
	assert.Equal(t, "legacyKey", cfg.Bookmarks.StorageKey)
	assert.False(t, cfg.Bookmarks.CleanupEnabled)
	assert.Equal(t, 2, cfg.Search.MinLength)
	assert.Equal(t, 30*time.Second, cfg.Tasks.ReleaseAfter)
}

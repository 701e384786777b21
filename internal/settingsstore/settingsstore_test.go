package settingsstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadithapp/hadith/internal/bookmarks"
	"github.com/hadithapp/hadith/internal/database"
	"github.com/hadithapp/hadith/internal/database/settings"
	"github.com/hadithapp/hadith/internal/entities"
)

func setupTestRepo(t *testing.T) *settings.Repository {
	t.Helper()
	db, err := database.NewUserDatabase(filepath.Join(t.TempDir(), "user.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return settings.NewRepository(db.DB)
}

var _ bookmarks.Slot = (*BlobSlot)(nil)

func TestBlobSlot(t *testing.T) {
	t.Run("unwritten key reports empty slot", func(t *testing.T) {
		slot := NewBlobSlot(setupTestRepo(t))

		_, err := slot.Read(bookmarks.DefaultStorageKey)
		assert.ErrorIs(t, err, bookmarks.ErrSlotEmpty)
	})

	t.Run("write then read", func(t *testing.T) {
		slot := NewBlobSlot(setupTestRepo(t))

		require.NoError(t, slot.Write("k", []byte(`["A_1"]`)))
		require.NoError(t, slot.Write("k", []byte(`["A_1","B_2"]`)))

		data, err := slot.Read("k")
		require.NoError(t, err)
		assert.Equal(t, `["A_1","B_2"]`, string(data))
	})

	t.Run("store survives reopen", func(t *testing.T) {
		repo := setupTestRepo(t)

		first := bookmarks.New(NewBlobSlot(repo))
		first.Toggle(" Sahih Bukhari _5")
		first.Toggle("Sahih Muslim_2")

		second := bookmarks.New(NewBlobSlot(repo))
		assert.Equal(t, []string{"Sahih Bukhari_5", "Sahih Muslim_2"}, second.List())

		value, ok, err := repo.GetValue(bookmarks.DefaultStorageKey)
		require.NoError(t, err)
		require.True(t, ok)
		assert.JSONEq(t, `["Sahih Bukhari_5","Sahih Muslim_2"]`, value)
	})
}

func TestOpenSavedSet(t *testing.T) {
	repo := setupTestRepo(t)
	require.NoError(t, repo.SetSetting("custom", `["A_1"," A _1","B _2"]`))

	var reports []string
	diag := bookmarks.DiagnosticsFunc(func(op string, err error) { reports = append(reports, op) })

	saved := OpenSavedSet(repo, "custom", diag)

	assert.Equal(t, []string{"A_1", "B_2"}, saved.List())
	value, _, err := repo.GetValue("custom")
	require.NoError(t, err)
	assert.JSONEq(t, `["A_1","B_2"]`, value)
	assert.Empty(t, reports)

	t.Run("undecodable blob is reported", func(t *testing.T) {
		require.NoError(t, repo.SetSetting("broken", "{"))

		saved := OpenSavedSet(repo, "broken", diag)

		assert.Equal(t, 0, saved.Len())
		assert.Contains(t, reports, bookmarks.OpLoad)
	})
}

func TestCleanupEnabled(t *testing.T) {
	repo := setupTestRepo(t)
	store := New(repo, Defaults{CleanupEnabled: true})

	assert.True(t, store.GetCleanupEnabled())
	assert.Equal(t, SourceConfig, store.GetCleanupEnabledSource())

	require.NoError(t, store.SetCleanupEnabled(false))
	assert.False(t, store.GetCleanupEnabled())
	assert.Equal(t, SourceDatabase, store.GetCleanupEnabledSource())

	require.NoError(t, store.ClearCleanupSettings())
	assert.True(t, store.GetCleanupEnabled())
	assert.Equal(t, SourceConfig, store.GetCleanupEnabledSource())
}

func TestCleanupSchedule(t *testing.T) {
	t.Run("falls back to default schedule", func(t *testing.T) {
		store := New(setupTestRepo(t), Defaults{})
		assert.Equal(t, DefaultCleanupSchedule, store.GetCleanupSchedule())
	})

	t.Run("config value", func(t *testing.T) {
		store := New(setupTestRepo(t), Defaults{CleanupSchedule: "0 * * * *"})
		assert.Equal(t, "0 * * * *", store.GetCleanupSchedule())
		assert.Equal(t, SourceConfig, store.GetCleanupScheduleSource())
	})

	t.Run("database override", func(t *testing.T) {
		store := New(setupTestRepo(t), Defaults{CleanupSchedule: "0 * * * *"})
		require.NoError(t, store.SetCleanupSchedule("*/30 * * * *"))
		assert.Equal(t, "*/30 * * * *", store.GetCleanupSchedule())
		assert.Equal(t, SourceDatabase, store.GetCleanupScheduleSource())
	})

	t.Run("rejects invalid schedule", func(t *testing.T) {
		store := New(setupTestRepo(t), Defaults{})
		assert.Error(t, store.SetCleanupSchedule("every day"))
		assert.Equal(t, DefaultCleanupSchedule, store.GetCleanupSchedule())
	})
}

func TestCleanupConfigInfo(t *testing.T) {
	store := New(setupTestRepo(t), Defaults{CleanupEnabled: true})

	info := store.GetCleanupConfigInfo()
	assert.True(t, info.Enabled)
	assert.Equal(t, DefaultCleanupSchedule, info.Schedule)
	require.NotNil(t, info.NextRunAt)
	assert.True(t, info.NextRunAt.After(time.Now()))

	require.NoError(t, store.SetCleanupEnabled(false))
	assert.Nil(t, store.GetCleanupConfigInfo().NextRunAt)
}

func TestCleanupStatus(t *testing.T) {
	repo := setupTestRepo(t)
	store := New(repo, Defaults{})

	empty := store.GetCleanupStatus()
	assert.Nil(t, empty.LastRunAt)
	assert.Empty(t, empty.Status)

	require.NoError(t, store.SetCleanupStatus(StatusSuccess, "3 entries, 1 collapsed"))

	status := store.GetCleanupStatus()
	require.NotNil(t, status.LastRunAt)
	assert.WithinDuration(t, time.Now(), *status.LastRunAt, time.Minute)
	assert.Equal(t, StatusSuccess, status.Status)
	assert.Equal(t, "3 entries, 1 collapsed", status.Message)

	setting, err := repo.GetSetting(entities.SettingKeyBookmarksCleanupLastStatus)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, setting.Value)
}

func TestCorpusImportedAt(t *testing.T) {
	store := New(setupTestRepo(t), Defaults{})
	assert.Nil(t, store.GetCorpusImportedAt())

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.MarkCorpusImported(at))

	got := store.GetCorpusImportedAt()
	require.NotNil(t, got)
	assert.True(t, at.Equal(*got))
}

func TestValidateCronSchedule(t *testing.T) {
	valid := []string{"0 3 * * *", "*/15 * * * *", "0 0 * * 0"}
	for _, s := range valid {
		assert.NoError(t, ValidateCronSchedule(s), s)
	}

	invalid := []string{"", "every day", "0 3 * *", "61 * * * *"}
	for _, s := range invalid {
		assert.Error(t, ValidateCronSchedule(s), s)
	}
}

func TestGetCronDescription(t *testing.T) {
	assert.Equal(t, "Daily at 03:00", GetCronDescription("0 3 * * *"))
	assert.Equal(t, "Custom schedule: 5 4 * * *", GetCronDescription("5 4 * * *"))
}

func TestGetNextRunTime(t *testing.T) {
	next, err := GetNextRunTime("0 * * * *")
	require.NoError(t, err)
	assert.Equal(t, 0, next.Minute())
	assert.True(t, next.After(time.Now()))

	_, err = GetNextRunTime("bad")
	assert.Error(t, err)
}

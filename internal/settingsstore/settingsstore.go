package settingsstore

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hadithapp/hadith/internal/database/settings"
)

const (
	SourceDatabase = "database"
	SourceConfig   = "config"
)

// Defaults holds the values used when the database has no override,
// normally taken from the loaded configuration.
type Defaults struct {
	CleanupEnabled  bool
	CleanupSchedule string
}

// Priority: database > config
type SettingsStore struct {
	repo     *settings.Repository
	defaults Defaults
}

func New(repo *settings.Repository, defaults Defaults) *SettingsStore {
	if defaults.CleanupSchedule == "" {
		defaults.CleanupSchedule = DefaultCleanupSchedule
	}
	return &SettingsStore{repo: repo, defaults: defaults}
}

// override returns the database value for key when one is set to a non-empty string.
func (s *SettingsStore) override(key string) (string, bool) {
	value, ok, err := s.repo.GetValue(key)
	if err != nil || !ok || value == "" {
		return "", false
	}
	return value, true
}

func (s *SettingsStore) clear(keys ...string) error {
	for _, key := range keys {
		if err := s.repo.DeleteSetting(key); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	return nil
}

package settingsstore

import (
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/hadithapp/hadith/internal/entities"
)

// DefaultCleanupSchedule runs the bookmark cleanup daily at 03:00.
const DefaultCleanupSchedule = "0 3 * * *"

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// CleanupConfig is the effective configuration for the scheduled bookmark cleanup.
type CleanupConfig struct {
	Enabled  bool   `json:"enabled"`
	Schedule string `json:"schedule"`
}

// CleanupConfigInfo includes source information for each field.
type CleanupConfigInfo struct {
	Enabled       bool   `json:"enabled"`
	EnabledSource string `json:"enabled_source"` // "database" or "config"

	Schedule       string `json:"schedule"`
	ScheduleSource string `json:"schedule_source"`

	NextRunAt *time.Time `json:"next_run_at,omitempty"`
}

// CleanupStatus represents the outcome of the last cleanup run.
type CleanupStatus struct {
	LastRunAt *time.Time `json:"last_run_at,omitempty"`
	Status    string     `json:"status,omitempty"`  // "success", "failed", ""
	Message   string     `json:"message,omitempty"` // Error message or stats summary
}

func (s *SettingsStore) GetCleanupEnabled() bool {
	if value, ok := s.override(entities.SettingKeyBookmarksCleanupEnabled); ok {
		return value == "true" || value == "1"
	}
	return s.defaults.CleanupEnabled
}

func (s *SettingsStore) GetCleanupEnabledSource() string {
	if _, ok := s.override(entities.SettingKeyBookmarksCleanupEnabled); ok {
		return SourceDatabase
	}
	return SourceConfig
}

func (s *SettingsStore) SetCleanupEnabled(enabled bool) error {
	return s.repo.SetSetting(entities.SettingKeyBookmarksCleanupEnabled, strconv.FormatBool(enabled))
}

func (s *SettingsStore) GetCleanupSchedule() string {
	if value, ok := s.override(entities.SettingKeyBookmarksCleanupSchedule); ok {
		return value
	}
	return s.defaults.CleanupSchedule
}

func (s *SettingsStore) GetCleanupScheduleSource() string {
	if _, ok := s.override(entities.SettingKeyBookmarksCleanupSchedule); ok {
		return SourceDatabase
	}
	return SourceConfig
}

// SetCleanupSchedule validates and saves a schedule override.
func (s *SettingsStore) SetCleanupSchedule(schedule string) error {
	if err := ValidateCronSchedule(schedule); err != nil {
		return err
	}
	return s.repo.SetSetting(entities.SettingKeyBookmarksCleanupSchedule, schedule)
}

func (s *SettingsStore) GetCleanupConfig() CleanupConfig {
	return CleanupConfig{
		Enabled:  s.GetCleanupEnabled(),
		Schedule: s.GetCleanupSchedule(),
	}
}

func (s *SettingsStore) GetCleanupConfigInfo() CleanupConfigInfo {
	info := CleanupConfigInfo{
		Enabled:        s.GetCleanupEnabled(),
		EnabledSource:  s.GetCleanupEnabledSource(),
		Schedule:       s.GetCleanupSchedule(),
		ScheduleSource: s.GetCleanupScheduleSource(),
	}
	if info.Enabled {
		if next, err := GetNextRunTime(info.Schedule); err == nil {
			info.NextRunAt = next
		}
	}
	return info
}

// ClearCleanupSettings removes database overrides, reverting to config values.
func (s *SettingsStore) ClearCleanupSettings() error {
	return s.clear(
		entities.SettingKeyBookmarksCleanupEnabled,
		entities.SettingKeyBookmarksCleanupSchedule,
	)
}

func (s *SettingsStore) GetCleanupStatus() CleanupStatus {
	status := CleanupStatus{}

	if value, ok := s.override(entities.SettingKeyBookmarksCleanupLastAt); ok {
		if ts, err := time.Parse(time.RFC3339, value); err == nil {
			status.LastRunAt = &ts
		}
	}
	status.Status, _ = s.override(entities.SettingKeyBookmarksCleanupLastStatus)
	status.Message, _ = s.override(entities.SettingKeyBookmarksCleanupLastMessage)

	return status
}

// SetCleanupStatus records the outcome of a cleanup run.
func (s *SettingsStore) SetCleanupStatus(status, message string) error {
	return s.repo.SetSettings(map[string]string{
		entities.SettingKeyBookmarksCleanupLastAt:      time.Now().UTC().Format(time.RFC3339),
		entities.SettingKeyBookmarksCleanupLastStatus:  status,
		entities.SettingKeyBookmarksCleanupLastMessage: message,
	})
}

// MarkCorpusImported records when the corpus was last imported.
func (s *SettingsStore) MarkCorpusImported(at time.Time) error {
	return s.repo.SetSetting(entities.SettingKeyCorpusImportedAt, at.UTC().Format(time.RFC3339))
}

// GetCorpusImportedAt returns nil if the corpus was never imported through this app.
func (s *SettingsStore) GetCorpusImportedAt() *time.Time {
	value, ok := s.override(entities.SettingKeyCorpusImportedAt)
	if !ok {
		return nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}
	return &ts
}

func newCronParser() cron.Parser {
	return cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
}

// ValidateCronSchedule validates a five-field cron schedule string.
func ValidateCronSchedule(schedule string) error {
	_, err := newCronParser().Parse(schedule)
	return err
}

// GetCronDescription returns a human-readable description of a cron schedule
func GetCronDescription(schedule string) string {
	switch schedule {
	case "0 * * * *":
		return "Every hour at :00"
	case "0 */6 * * *":
		return "Every 6 hours"
	case "0 0 * * *":
		return "Daily at midnight"
	case "0 3 * * *":
		return "Daily at 03:00"
	case "0 0 * * 0":
		return "Weekly on Sunday at midnight"
	default:
		return "Custom schedule: " + schedule
	}
}

// GetNextRunTime calculates when the next run happens based on the schedule.
func GetNextRunTime(schedule string) (*time.Time, error) {
	sched, err := newCronParser().Parse(schedule)
	if err != nil {
		return nil, err
	}
	next := sched.Next(time.Now())
	return &next, nil
}

package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Bookmarks
		Search
		Corpus
		Audit
		Tasks
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path     string // Corpus database
		UserPath string // Saved set, settings, audit
	}
	Bookmarks struct {
		StorageKey      string
		CleanupEnabled  bool
		CleanupSchedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
	Search struct {
		MinLength int
		Limit     int
	}
	Corpus struct {
		HadithsCSVPath   string
		NarratorsCSVPath string
	}
	Audit struct {
		RetentionDays int // Days to keep audit events (default: 30)
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		TaskTimeout     time.Duration
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("user_database_path", DefaultUserDatabasePath)

	// Saved set
	v.SetDefault("bookmarks_storage_key", "savedHadiths")
	v.SetDefault("bookmarks_cleanup_enabled", true)
	v.SetDefault("bookmarks_cleanup_schedule", "0 3 * * *")

	v.SetDefault("search_min_length", 3)
	v.SetDefault("search_limit", 100)
	v.SetDefault("hadiths_csv_path", DefaultHadithsCSVPath)
	v.SetDefault("narrators_csv_path", DefaultNarratorsCSVPath)
	v.SetDefault("audit_retention_days", 30)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_timeout", "5m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:     v.GetString("DATABASE_PATH"),
			UserPath: v.GetString("USER_DATABASE_PATH"),
		},
		Bookmarks: Bookmarks{
			StorageKey:      v.GetString("BOOKMARKS_STORAGE_KEY"),
			CleanupEnabled:  v.GetBool("BOOKMARKS_CLEANUP_ENABLED"),
			CleanupSchedule: v.GetString("BOOKMARKS_CLEANUP_SCHEDULE"),
		},
		Search: Search{
			MinLength: v.GetInt("SEARCH_MIN_LENGTH"),
			Limit:     v.GetInt("SEARCH_LIMIT"),
		},
		Corpus: Corpus{
			HadithsCSVPath:   v.GetString("HADITHS_CSV_PATH"),
			NarratorsCSVPath: v.GetString("NARRATORS_CSV_PATH"),
		},
		Audit: Audit{
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			TaskTimeout:     v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
	}
}

package tasks

import (
	"path/filepath"
	"strings"
	"time"
)

// Config holds configuration for the task queue system.
type Config struct {
	// DBPath is the queue's own sqlite file, usually QueueDBPath(user database path).
	DBPath string

	// Workers is the number of concurrent task workers. Default: 2
	Workers int

	// TaskTimeout bounds a single corpus import. Default: 5m
	TaskTimeout time.Duration

	// ReleaseAfter is when stuck tasks are released back to queue. Default: 15m
	ReleaseAfter time.Duration

	// CleanupInterval is how often to clean up completed tasks. Default: 1h
	CleanupInterval time.Duration

	// AuditRetentionDays is used by purge_audit tasks that do not name their own. Default: 30
	AuditRetentionDays int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:            2,
		TaskTimeout:        5 * time.Minute,
		ReleaseAfter:       15 * time.Minute,
		CleanupInterval:    1 * time.Hour,
		AuditRetentionDays: 30,
	}
}

// QueueDBPath places the queue database next to the user database:
// "hadith-user.db" becomes "hadith-user-tasks.db".
func QueueDBPath(userDBPath string) string {
	ext := filepath.Ext(userDBPath)
	return strings.TrimSuffix(userDBPath, ext) + "-tasks" + ext
}

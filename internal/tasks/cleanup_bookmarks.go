package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
)

// BookmarkCleaner re-normalizes the saved set and records the outcome.
type BookmarkCleaner interface {
	RunNow() error
}

// CleanupBookmarksTask runs the saved-set cleanup outside its cron schedule.
type CleanupBookmarksTask struct{}

// Config returns the queue configuration for bookmark cleanup tasks.
func (t CleanupBookmarksTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        KindCleanupBookmarks,
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupBookmarksProcessor creates a processor function for CleanupBookmarksTask.
func CleanupBookmarksProcessor(cleaner BookmarkCleaner) backlite.QueueProcessor[CleanupBookmarksTask] {
	return func(ctx context.Context, task CleanupBookmarksTask) error {
		if cleaner == nil {
			return fmt.Errorf("bookmark cleaner not configured")
		}
		if err := cleaner.RunNow(); err != nil {
			return fmt.Errorf("cleanup bookmarks: %w", err)
		}
		return nil
	}
}

// NewCleanupBookmarksQueue creates a backlite queue for bookmark cleanup tasks.
func NewCleanupBookmarksQueue(cleaner BookmarkCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupBookmarksProcessor(cleaner))
}

package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/hadithapp/hadith/internal/settingsstore"
)

// SavedSet is the part of the bookmark store the cleanup job drives.
type SavedSet interface {
	Cleanup()
	Len() int
}

// CleanupSettings supplies the schedule and stores the outcome of each run.
type CleanupSettings interface {
	GetCleanupConfig() settingsstore.CleanupConfig
	SetCleanupStatus(status, message string) error
}

// MaintenanceLogger records maintenance runs in the audit log.
type MaintenanceLogger interface {
	LogMaintenance(action, description string, err error)
}

const cleanupAction = "bookmarks_cleanup"

// BookmarkCleanupScheduler periodically re-normalizes the saved set so entries
// written by older clients collapse onto their canonical form.
type BookmarkCleanupScheduler struct {
	saved    SavedSet
	settings CleanupSettings
	audit    MaintenanceLogger

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	runMu      sync.Mutex
	isRunning  bool
	cancelFunc context.CancelFunc
	stopped    chan struct{}
}

// NewBookmarkCleanupScheduler creates a new scheduler instance. audit may be nil.
func NewBookmarkCleanupScheduler(saved SavedSet, settings CleanupSettings, audit MaintenanceLogger) *BookmarkCleanupScheduler {
	return &BookmarkCleanupScheduler{
		saved:    saved,
		settings: settings,
		audit:    audit,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if cleanup is enabled
func (s *BookmarkCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	config := s.settings.GetCleanupConfig()

	if !config.Enabled {
		log.Printf("Bookmark cleanup scheduler: disabled")
		return nil
	}

	if err := settingsstore.ValidateCronSchedule(config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", config.Schedule, err)
	}

	entryID, err := s.cron.AddFunc(config.Schedule, func() {
		if err := s.RunNow(); err != nil {
			log.Printf("Bookmark cleanup: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule cleanup job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)
	stopped := make(chan struct{})
	s.stopped = stopped

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := settingsstore.GetNextRunTime(config.Schedule)
	log.Printf("Bookmark cleanup scheduler: started with schedule '%s' (%s). Next run: %v",
		config.Schedule,
		settingsstore.GetCronDescription(config.Schedule),
		nextRun)

	// The watcher only stops the run it was started with.
	go func() {
		select {
		case <-cancelCtx.Done():
			s.stopRun(stopped)
		case <-stopped:
		}
	}()

	return nil
}

// Stop waits for a running job and removes the schedule.
func (s *BookmarkCleanupScheduler) Stop() {
	s.stopRun(nil)
}

// stopRun stops the active run. A non-nil run is only stopped if it is still current.
func (s *BookmarkCleanupScheduler) stopRun(run chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	if run != nil && run != s.stopped {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.cron.Remove(s.entryID)

	s.isRunning = false
	close(s.stopped)
	s.stopped = nil
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	log.Printf("Bookmark cleanup scheduler: stopped")
}

// Reschedule applies changed settings.
func (s *BookmarkCleanupScheduler) Reschedule(ctx context.Context) error {
	s.Stop()
	return s.Start(ctx)
}

// IsRunning returns whether the scheduler is active
func (s *BookmarkCleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next cleanup will occur, or nil when stopped.
func (s *BookmarkCleanupScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// RunNow performs a cleanup synchronously and records its outcome.
// Concurrent calls run one after another.
func (s *BookmarkCleanupScheduler) RunNow() error {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	startTime := time.Now()
	before := s.saved.Len()
	s.saved.Cleanup()
	after := s.saved.Len()

	msg := fmt.Sprintf("Kept %d of %d entries (%d collapsed) in %v",
		after, before, before-after, time.Since(startTime).Round(time.Millisecond))
	log.Printf("Bookmark cleanup: %s", msg)

	if s.audit != nil {
		s.audit.LogMaintenance(cleanupAction, msg, nil)
	}
	if err := s.settings.SetCleanupStatus(settingsstore.StatusSuccess, msg); err != nil {
		return fmt.Errorf("failed to record cleanup status: %w", err)
	}
	return nil
}

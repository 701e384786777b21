package audit

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/hadithapp/hadith/internal/database/audit"
	"github.com/hadithapp/hadith/internal/entities"
)

const maxMessageLen = 500

// Service provides high-level audit logging functionality.
// It also acts as the bookmark store's diagnostics sink.
type Service struct {
	repo *audit.Repository

	// mu orders pending.Add against pending.Wait.
	mu      sync.RWMutex
	closed  bool
	pending sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
// After Close it writes synchronously.
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
		return
	}
	s.pending.Add(1)
	s.mu.RUnlock()

	go func() {
		defer s.pending.Done()
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// Flush blocks until every event queued with LogAsync has been written.
func (s *Service) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.Wait()
}

// Close waits for pending events and makes later LogAsync calls synchronous,
// so events logged during shutdown are not lost.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.pending.Wait()
}

// Report records a failure the bookmark store recovered from.
// The store calls this while holding its lock, so the write happens in the background.
func (s *Service) Report(op string, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventDiagnostic,
		Action:      "bookmarks_" + op,
		Description: fmt.Sprintf("Bookmark %s failed", op),
		EntityType:  "saved_set",
		Status:      entities.AuditStatusFailed,
	}
	if err != nil {
		event.ErrorMsg = truncate(err.Error(), maxMessageLen)
	}

	s.LogAsync(event)
}

// LogBookmark records a saved-set change. saved is the state after the change.
func (s *Service) LogBookmark(id string, saved bool) {
	action, verb := "bookmark_remove", "Removed"
	if saved {
		action, verb = "bookmark_add", "Saved"
	}

	s.LogAsync(&entities.AuditEvent{
		EventType:   entities.AuditEventBookmark,
		Action:      action,
		Description: truncate(verb+" "+id, maxMessageLen),
		EntityType:  "hadith",
		EntityRef:   id,
		Status:      entities.AuditStatusSuccess,
	})
}

// LogImport records a corpus import event.
func (s *Service) LogImport(description string, narrationsCount, narratorsCount int, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventImport,
		Action:      "corpus_import",
		Description: description,
		EntityType:  "corpus",
		Status:      entities.AuditStatusSuccess,
	}

	metadata := map[string]any{
		"narrations_count": narrationsCount,
		"narrators_count":  narratorsCount,
	}
	if mdBytes, e := json.Marshal(metadata); e == nil {
		event.Metadata = string(mdBytes)
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), maxMessageLen)
	}

	s.LogAsync(event)
}

// LogMaintenance records a maintenance run such as a scheduled cleanup.
func (s *Service) LogMaintenance(action, description string, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventMaintenance,
		Action:      action,
		Description: description,
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), maxMessageLen)
	}

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(limit, offset)
}

// GetEventsByType retrieves audit events filtered by type.
func (s *Service) GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEventsByType(eventType, limit, offset)
}

// GetBookmarkHistory returns the recorded changes for one saved ID.
func (s *Service) GetBookmarkHistory(id string, limit int) ([]entities.AuditEvent, error) {
	return s.repo.GetEventsForEntity(id, limit)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

package http

import (
	"context"

	"github.com/hadithapp/hadith/internal/database"
	"github.com/hadithapp/hadith/internal/database/narrations"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Context the background work started from handlers runs under.
	AppContext context.Context

	// Core dependencies
	Corpus    CorpusReader
	Narrators NarratorReader
	Saved     SavedSet
	Rand      narrations.Rand

	// Databases, for health checks
	CorpusDatabase *database.Database
	UserDatabase   *database.Database

	// Saved-set change stream (optional)
	Events *SavedEventsHub

	// Audit log (optional)
	Auditor     BookmarkAuditor
	AuditReader AuditReader

	// Cleanup scheduling (optional)
	Cleaner          Cleaner
	CleanupSettings  CleanupSettingsStore
	CleanupScheduler CleanupScheduler

	// Task queue (optional)
	Tasks TaskDispatcher

	// Application info
	Version string
}

package entities

import (
	"time"
)

type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Known setting keys
const (
	// The saved set itself is stored under the configured bookmarks storage key
	// (bookmarks.DefaultStorageKey unless overridden).

	// Bookmark cleanup overrides
	SettingKeyBookmarksCleanupEnabled  = "bookmarks_cleanup_enabled"
	SettingKeyBookmarksCleanupSchedule = "bookmarks_cleanup_schedule"

	// Bookmark cleanup status
	SettingKeyBookmarksCleanupLastAt      = "bookmarks_cleanup_last_at"
	SettingKeyBookmarksCleanupLastStatus  = "bookmarks_cleanup_last_status"
	SettingKeyBookmarksCleanupLastMessage = "bookmarks_cleanup_last_message"

	// Corpus import status
	SettingKeyCorpusImportedAt = "corpus_imported_at"
)

package entities

import "time"

type AuditEventType string

const (
	AuditEventBookmark    AuditEventType = "bookmark"
	AuditEventDiagnostic  AuditEventType = "diagnostic"
	AuditEventImport      AuditEventType = "import"
	AuditEventMaintenance AuditEventType = "maintenance"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

type AuditEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	EventType   AuditEventType `gorm:"index;size:50" json:"event_type"`
	Action      string         `gorm:"size:100" json:"action"`      // e.g., "bookmark_add", "bookmarks_save"
	Description string         `gorm:"size:500" json:"description"` // Human-readable summary
	EntityType  string         `gorm:"size:50" json:"entity_type,omitempty"`
	EntityRef   string         `gorm:"index;size:256" json:"entity_ref,omitempty"` // e.g., a saved hadith ID
	Metadata    string         `gorm:"type:text" json:"metadata,omitempty"`        // JSON for extra data
	Status      AuditStatus    `gorm:"size:20" json:"status"`
	ErrorMsg    string         `gorm:"size:500" json:"error_msg,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}

package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

const defaultRetentionDays = 30

// AuditEventCleaner provides the ability to delete old audit events.
type AuditEventCleaner interface {
	DeleteOldEvents(retention time.Duration) (int64, error)
}

// PurgeAuditTask removes audit events older than the configured retention period.
type PurgeAuditTask struct {
	RetentionDays int `json:"retention_days"`
}

// Config returns the queue configuration for audit purge tasks.
func (t PurgeAuditTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        KindPurgeAudit,
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// PurgeAuditProcessor creates a processor function for PurgeAuditTask.
func PurgeAuditProcessor(cleaner AuditEventCleaner) backlite.QueueProcessor[PurgeAuditTask] {
	return func(ctx context.Context, task PurgeAuditTask) error {
		if cleaner == nil {
			return fmt.Errorf("audit event cleaner not configured")
		}

		retentionDays := task.RetentionDays
		if retentionDays <= 0 {
			retentionDays = defaultRetentionDays
		}
		retention := time.Duration(retentionDays) * 24 * time.Hour

		deleted, err := cleaner.DeleteOldEvents(retention)
		if err != nil {
			return fmt.Errorf("purge audit events: %w", err)
		}

		log.Printf("[TASK] Purged %d audit events older than %d days", deleted, retentionDays)
		return nil
	}
}

// NewPurgeAuditQueue creates a backlite queue for audit purge tasks.
func NewPurgeAuditQueue(cleaner AuditEventCleaner) backlite.Queue {
	return backlite.NewQueue(PurgeAuditProcessor(cleaner))
}

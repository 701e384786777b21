package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/mikestefanello/backlite"
)

// Task kinds accepted by Dispatcher.Enqueue. They double as backlite queue names.
const (
	KindImportCorpus     = "import_corpus"
	KindCleanupBookmarks = "cleanup_bookmarks"
	KindPurgeAudit       = "purge_audit"
)

// ErrUnknownKind is returned by Enqueue for a kind with no queue.
var ErrUnknownKind = errors.New("unknown task type")

// Kinds lists every task kind in a stable order.
func Kinds() []string {
	return []string{KindImportCorpus, KindCleanupBookmarks, KindPurgeAudit}
}

// Dependencies are the services the queues run against.
type Dependencies struct {
	Importer       CorpusImporter
	ImportReporter ImportReporter
	Cleaner        BookmarkCleaner
	AuditCleaner   AuditEventCleaner
}

// Defaults fill task payloads that are enqueued by kind alone.
type Defaults struct {
	HadithsPath        string
	NarratorsPath      string
	AuditRetentionDays int
}

// Dispatcher registers the application queues and enqueues tasks by kind.
type Dispatcher struct {
	client   *Client
	defaults Defaults
}

// NewDispatcher registers every queue with client. Call before client.Start.
func NewDispatcher(client *Client, deps Dependencies, defaults Defaults) *Dispatcher {
	client.Register(
		NewImportCorpusQueue(deps.Importer, deps.ImportReporter),
		NewCleanupBookmarksQueue(deps.Cleaner),
		NewPurgeAuditQueue(deps.AuditCleaner),
	)
	return &Dispatcher{client: client, defaults: defaults}
}

// NewTask builds the payload for kind from defaults.
func NewTask(kind string, defaults Defaults) (backlite.Task, error) {
	switch kind {
	case KindImportCorpus:
		return ImportCorpusTask{HadithsPath: defaults.HadithsPath, NarratorsPath: defaults.NarratorsPath}, nil
	case KindCleanupBookmarks:
		return CleanupBookmarksTask{}, nil
	case KindPurgeAudit:
		return PurgeAuditTask{RetentionDays: defaults.AuditRetentionDays}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Enqueue adds a task of the given kind and returns its ID.
func (d *Dispatcher) Enqueue(ctx context.Context, kind string) (string, error) {
	task, err := NewTask(kind, d.defaults)
	if err != nil {
		return "", err
	}

	ids, err := d.client.Add(task).Ctx(ctx).Save()
	if err != nil {
		return "", fmt.Errorf("failed to enqueue %s: %w", kind, err)
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("failed to enqueue %s: no task id returned", kind)
	}
	return ids[0], nil
}

// Status returns the status of a previously enqueued task.
func (d *Dispatcher) Status(ctx context.Context, taskID string) (backlite.TaskStatus, error) {
	return d.client.Status(ctx, taskID)
}

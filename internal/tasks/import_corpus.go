package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/hadithapp/hadith/internal/importers"
)

// CorpusImporter loads CSV snapshots into the corpus database.
type CorpusImporter interface {
	Import(ctx context.Context, hadithsPath, narratorsPath string) (importers.ImportResult, error)
}

// ImportReporter is told about every finished import, successful or not.
type ImportReporter func(result importers.ImportResult, err error)

// ImportCorpusTask re-imports the corpus from CSV snapshots.
type ImportCorpusTask struct {
	HadithsPath   string `json:"hadiths_path"`
	NarratorsPath string `json:"narrators_path"`
}

// Config returns the queue configuration for corpus import tasks.
// Imports replace whole tables, so a failed attempt is not retried.
func (t ImportCorpusTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        KindImportCorpus,
		MaxAttempts: 1,
		Timeout:     30 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   7 * 24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ImportCorpusProcessor creates a processor function for ImportCorpusTask.
func ImportCorpusProcessor(importer CorpusImporter, report ImportReporter) backlite.QueueProcessor[ImportCorpusTask] {
	return func(ctx context.Context, task ImportCorpusTask) error {
		if importer == nil {
			return fmt.Errorf("corpus importer not configured")
		}

		result, err := importer.Import(ctx, task.HadithsPath, task.NarratorsPath)
		if report != nil {
			report(result, err)
		}
		if err != nil {
			return fmt.Errorf("import corpus: %w", err)
		}

		log.Printf("[TASK] Imported %d narrations and %d narrators",
			result.NarrationsImported, result.NarratorsImported)
		return nil
	}
}

// NewImportCorpusQueue creates a backlite queue for corpus import tasks.
func NewImportCorpusQueue(importer CorpusImporter, report ImportReporter) backlite.Queue {
	return backlite.NewQueue(ImportCorpusProcessor(importer, report))
}

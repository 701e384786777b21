package importers

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hadithapp/hadith/internal/entities"
)

// CorpusWriter persists a parsed corpus. A nil slice leaves that table untouched.
type CorpusWriter interface {
	ReplaceCorpus(ctx context.Context, narrations []entities.Narration, narrators []entities.Narrator, batchSize int) error
}

// ImportResult summarizes a corpus import.
type ImportResult struct {
	NarrationsImported int      `json:"narrations_imported"`
	NarratorsImported  int      `json:"narrators_imported"`
	Errors             []string `json:"errors,omitempty"`
}

// Importer reads CSV snapshots from disk and replaces the corpus tables.
type Importer struct {
	writer    CorpusWriter
	batchSize int
}

func NewImporter(writer CorpusWriter) *Importer {
	return &Importer{writer: writer}
}

// SetBatchSize overrides the insert batch size. Values <= 0 use the writer's default.
func (i *Importer) SetBatchSize(n int) {
	i.batchSize = n
}

// Import parses both snapshots and writes them in one transaction.
// An empty path skips that file. Per-line problems are collected in the result.
func (i *Importer) Import(ctx context.Context, hadithsPath, narratorsPath string) (ImportResult, error) {
	var result ImportResult
	var narrations []entities.Narration
	var narrators []entities.Narrator

	if hadithsPath == "" && narratorsPath == "" {
		return result, fmt.Errorf("no CSV paths configured")
	}

	if hadithsPath != "" {
		rows, lineErrors, err := parseFile(hadithsPath, ParseHadithsCSV)
		if err != nil {
			return result, err
		}
		if rows == nil {
			rows = []entities.Narration{}
		}
		narrations = rows
		result.Errors = append(result.Errors, prefix(hadithsPath, lineErrors)...)
	}

	if narratorsPath != "" {
		rows, lineErrors, err := parseFile(narratorsPath, ParseNarratorsCSV)
		if err != nil {
			return result, err
		}
		if rows == nil {
			rows = []entities.Narrator{}
		}
		narrators = rows
		result.Errors = append(result.Errors, prefix(narratorsPath, lineErrors)...)
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	if err := i.writer.ReplaceCorpus(ctx, narrations, narrators, i.batchSize); err != nil {
		return result, fmt.Errorf("failed to store corpus: %w", err)
	}

	result.NarrationsImported = len(narrations)
	result.NarratorsImported = len(narrators)

	log.Printf("[IMPORT] Imported %d narrations and %d narrators (%d skipped lines)",
		result.NarrationsImported, result.NarratorsImported, len(result.Errors))

	return result, nil
}

func parseFile[T any](path string, parse func(io.Reader) ([]T, []string, error)) ([]T, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rows, lineErrors, err := parse(f)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return rows, lineErrors, nil
}

func prefix(path string, lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = path + ": " + l
	}
	return out
}

package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hadithapp/hadith/internal/audit"
	"github.com/hadithapp/hadith/internal/config"
	"github.com/hadithapp/hadith/internal/database"
	auditrepo "github.com/hadithapp/hadith/internal/database/audit"
	"github.com/hadithapp/hadith/internal/database/settings"
	"github.com/hadithapp/hadith/internal/importers"
	"github.com/hadithapp/hadith/internal/settingsstore"
)

// ImportCorpusCommand loads the hadith and narrator CSV snapshots into the corpus database.
type ImportCorpusCommand struct {
	HadithsPath      string
	NarratorsPath    string
	DatabasePath     string
	UserDatabasePath string
	BatchSize        int
	Verbose          bool
}

func NewImportCorpusCommand() *ImportCorpusCommand {
	return &ImportCorpusCommand{}
}

func (cmd *ImportCorpusCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-corpus", flag.ExitOnError)

	fs.StringVar(&cmd.HadithsPath, "hadiths", config.DefaultHadithsCSVPath, "Path to the hadiths CSV snapshot (empty to skip)")
	fs.StringVar(&cmd.NarratorsPath, "narrators", config.DefaultNarratorsCSVPath, "Path to the narrators CSV snapshot (empty to skip)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the corpus database")
	fs.StringVar(&cmd.UserDatabasePath, "user-db", config.DefaultUserDatabasePath, "Path to the user database for the audit log (empty to skip)")
	fs.IntVar(&cmd.BatchSize, "batch", database.DefaultBatchSize, "Rows inserted per statement")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print every skipped line")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-corpus [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Replace the corpus tables with the contents of the CSV snapshots.\n")
		fmt.Fprintf(os.Stderr, "Both files are imported in one transaction.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s import-corpus -hadiths all_hadiths_clean.csv -narrators all_rawis.csv\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Refresh narrators only:\n")
		fmt.Fprintf(os.Stderr, "  %s import-corpus -hadiths \"\" -narrators all_rawis.csv\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.HadithsPath == "" && cmd.NarratorsPath == "" {
		return fmt.Errorf("at least one of -hadiths or -narrators is required")
	}

	return nil
}

func (cmd *ImportCorpusCommand) Run() error {
	fmt.Println("Corpus Import")
	fmt.Println("=============")

	for _, path := range []string{cmd.HadithsPath, cmd.NarratorsPath} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("snapshot not found: %s", path)
		}
		fmt.Printf("File: %s\n", path)
	}

	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}
	fmt.Printf("\nSaving to database: %s\n", absDBPath)

	db, err := database.NewDatabase(absDBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	importer := importers.NewImporter(db)
	importer.SetBatchSize(cmd.BatchSize)

	result, importErr := importer.Import(context.Background(), cmd.HadithsPath, cmd.NarratorsPath)

	if cmd.UserDatabasePath != "" {
		if err := cmd.record(result, importErr); err != nil {
			fmt.Printf("[WARN] Could not record import in audit log: %v\n", err)
		}
	}

	if importErr != nil {
		return fmt.Errorf("import failed: %w", importErr)
	}

	fmt.Println("\n=== Import Summary ===")
	fmt.Printf("Narrations: %d\n", result.NarrationsImported)
	fmt.Printf("Narrators: %d\n", result.NarratorsImported)

	if len(result.Errors) > 0 {
		fmt.Printf("\n%d lines skipped\n", len(result.Errors))
		if cmd.Verbose {
			for _, line := range result.Errors {
				fmt.Printf("  [SKIP] %s\n", line)
			}
		}
	}

	fmt.Println("\nImport complete!")
	return nil
}

func (cmd *ImportCorpusCommand) record(result importers.ImportResult, importErr error) error {
	userDB, err := database.NewUserDatabase(cmd.UserDatabasePath)
	if err != nil {
		return err
	}
	defer userDB.Close()

	auditSvc := audit.NewService(auditrepo.NewRepository(userDB.DB))
	auditSvc.LogImport(
		fmt.Sprintf("CLI import of %s, %s", cmd.HadithsPath, cmd.NarratorsPath),
		result.NarrationsImported, result.NarratorsImported, importErr)
	auditSvc.Flush()

	if importErr != nil {
		return nil
	}
	store := settingsstore.New(settings.NewRepository(userDB.DB), settingsstore.Defaults{})
	return store.MarkCorpusImported(time.Now())
}

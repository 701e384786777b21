package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/hadithapp/hadith/internal/audit"
	"github.com/hadithapp/hadith/internal/bookmarks"
	"github.com/hadithapp/hadith/internal/config"
	"github.com/hadithapp/hadith/internal/database"
	auditrepo "github.com/hadithapp/hadith/internal/database/audit"
	"github.com/hadithapp/hadith/internal/database/settings"
	"github.com/hadithapp/hadith/internal/settingsstore"
)

// BookmarksCommand inspects and edits the saved set stored in the user database.
type BookmarksCommand struct {
	UserDatabasePath string
	StorageKey       string
	List             bool
	Toggle           string
	Check            string
	Cleanup          bool
}

func NewBookmarksCommand() *BookmarksCommand {
	return &BookmarksCommand{}
}

func (cmd *BookmarksCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("bookmarks", flag.ExitOnError)

	fs.StringVar(&cmd.UserDatabasePath, "user-db", config.DefaultUserDatabasePath, "Path to the user database")
	fs.StringVar(&cmd.StorageKey, "key", bookmarks.DefaultStorageKey, "Settings key the saved set is stored under")
	fs.BoolVar(&cmd.List, "list", false, "List saved hadith IDs")
	fs.StringVar(&cmd.Toggle, "toggle", "", "Save the ID, or remove it if already saved")
	fs.StringVar(&cmd.Check, "check", "", "Report whether the ID is saved")
	fs.BoolVar(&cmd.Cleanup, "cleanup", false, "Collapse IDs that differ only by padding")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s bookmarks (-list | -toggle <id> | -check <id> | -cleanup) [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Manage saved hadiths. IDs have the form \"<collection>_<number>\".\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s bookmarks -toggle \"Sahih Bukhari_5\"\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s bookmarks -check \" Sahih Bukhari _5\"\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	actions := 0
	for _, set := range []bool{cmd.List, cmd.Toggle != "", cmd.Check != "", cmd.Cleanup} {
		if set {
			actions++
		}
	}
	if actions != 1 {
		return fmt.Errorf("exactly one of -list, -toggle, -check or -cleanup is required")
	}

	return nil
}

func (cmd *BookmarksCommand) Run() error {
	db, err := database.NewUserDatabase(cmd.UserDatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize user database: %w", err)
	}
	defer db.Close()

	auditSvc := audit.NewService(auditrepo.NewRepository(db.DB))
	defer auditSvc.Flush()

	// Toggle and check must see legacy entries as they are stored.
	var opts []bookmarks.Option
	if !cmd.Cleanup {
		opts = append(opts, bookmarks.SkipStartupCleanup())
	}
	saved := settingsstore.OpenSavedSet(settings.NewRepository(db.DB), cmd.StorageKey, auditSvc, opts...)

	switch {
	case cmd.List:
		ids := saved.List()
		for _, id := range ids {
			fmt.Println(id)
		}
		fmt.Printf("\n%d saved\n", len(ids))

	case cmd.Toggle != "":
		id := bookmarks.Normalize(cmd.Toggle)
		now := saved.ToggleAndCheck(cmd.Toggle)
		auditSvc.LogBookmark(id, now)
		if now {
			fmt.Printf("Saved %s\n", id)
		} else {
			fmt.Printf("Removed %s\n", id)
		}

	case cmd.Check != "":
		id := bookmarks.Normalize(cmd.Check)
		if saved.IsSaved(cmd.Check) {
			fmt.Printf("%s is saved\n", id)
		} else {
			fmt.Printf("%s is not saved\n", id)
		}

	case cmd.Cleanup:
		// Startup cleanup already ran when the set was opened.
		fmt.Printf("%d saved after cleanup\n", saved.Len())
	}

	return nil
}

package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/hadithapp/hadith/internal/config"
	"github.com/hadithapp/hadith/internal/database"
	"github.com/hadithapp/hadith/internal/database/narrations"
)

// SearchCommand runs a substring search over the corpus from the terminal.
type SearchCommand struct {
	DatabasePath string
	Query        string
	Limit        int
	MinLength    int
	Full         bool
}

func NewSearchCommand() *SearchCommand {
	return &SearchCommand{}
}

func (cmd *SearchCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the corpus database")
	fs.StringVar(&cmd.Query, "q", "", "Text to search for (required)")
	fs.IntVar(&cmd.Limit, "limit", 20, "Maximum number of results")
	fs.IntVar(&cmd.MinLength, "min-length", narrations.DefaultMinQueryLength, "Shortest accepted query")
	fs.BoolVar(&cmd.Full, "full", false, "Print the full English text instead of a preview")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s search -q <text> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Search English and Arabic text, collection names and hadith numbers.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if strings.TrimSpace(cmd.Query) == "" {
		return fmt.Errorf("required flag -q not provided")
	}

	return nil
}

func (cmd *SearchCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	repo := narrations.NewRepository(db.DB)
	repo.SetMinQueryLength(cmd.MinLength)

	results, err := repo.Search(cmd.Query, cmd.Limit)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("No matches")
		return nil
	}

	for i, n := range results {
		text := n.TextEn
		if !cmd.Full {
			text = preview(text, 120)
		}
		fmt.Printf("%d. [%s] %s\n   %s\n", i+1, n.SavedID(), n.Chapter, text)
	}
	fmt.Printf("\n%d results\n", len(results))

	return nil
}

func preview(s string, maxRunes int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "..."
}

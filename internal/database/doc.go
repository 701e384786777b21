// Package database provides the data access layer for the application.
//
// # Architecture
//
// Two sqlite files are used:
//
//   - the corpus database (bundled, read-only at runtime): narrations and narrators
//   - the user database: settings, including the saved set blob, and audit events
//
// The layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── narrations/      # Books, chapters, hadith lookup, search, random pick
//	├── narrators/       # Narrator details and isnad resolution
//	├── settings/        # Key/value settings
//	└── audit/           # Audit events
//
// # Using Sub-packages
//
//	corpus, err := database.NewDatabase("./source.db")
//	user, err := database.NewUserDatabase("./hadith-user.db")
//
//	narrationsRepo := narrations.NewRepository(corpus.DB)
//	narratorsRepo := narrators.NewRepository(corpus.DB)
//	settingsRepo := settings.NewRepository(user.DB)
//
//	chapters, err := narrationsRepo.GetChapters("Sahih Bukhari")
//	chain, err := narratorsRepo.GetChain(n.ChainIndx)
//
// # Interface Implementations
//
//   - narrations.Repository: implements http.CorpusReader
//   - narrators.Repository: implements http.NarratorReader
//   - settings.Repository: backs settingsstore.BlobSlot (bookmarks.Slot)
//   - audit.Repository: backs audit.Service (bookmarks.Diagnostics)
package database

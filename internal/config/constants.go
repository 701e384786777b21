package config

// Default paths for databases and corpus snapshots
const (
	// DefaultDatabasePath is the bundled corpus database (narrations and narrators)
	DefaultDatabasePath = "./source.db"

	// DefaultUserDatabasePath holds the saved set, settings and audit events
	DefaultUserDatabasePath = "./hadith-user.db"

	// DefaultHadithsCSVPath is the hadiths snapshot read by import-corpus
	DefaultHadithsCSVPath = "./all_hadiths_clean.csv"

	// DefaultNarratorsCSVPath is the narrators snapshot read by import-corpus
	DefaultNarratorsCSVPath = "./all_rawis.csv"
)

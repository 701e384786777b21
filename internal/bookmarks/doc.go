// Package bookmarks keeps the set of saved hadith identifiers.
//
// A saved identifier is "<collection>_<number>", for example "Sahih Bukhari_5".
// Identifiers are normalized before every lookup and mutation so that keys built
// from differently padded source fields ("  Sahih Bukhari _5") land on the same
// entry.
//
// # Persistence
//
// The whole set lives in memory and is written as one JSON array to a named
// Slot after every mutation:
//
//	store := bookmarks.New(slot,
//		bookmarks.WithStorageKey("savedHadiths"),
//		bookmarks.WithDiagnostics(bookmarks.LogDiagnostics{}),
//	)
//	store.Toggle("Sahih Bukhari_5")
//	store.IsSaved(" Sahih Bukhari _5") // true
//
// Store operations never return errors. Load and save failures go to the
// configured Diagnostics sink and the in-memory set stays authoritative.
//
// # Concurrency
//
// Store has no internal locking. Wrap it with NewSerialized when more than one
// goroutine can reach it (HTTP handlers, cron jobs, task workers).
package bookmarks

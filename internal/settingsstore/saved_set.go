package settingsstore

import (
	"github.com/hadithapp/hadith/internal/bookmarks"
	"github.com/hadithapp/hadith/internal/database/settings"
)

// OpenSavedSet loads the saved set persisted in the settings table under key
// and wraps it for concurrent use. Recovered failures are logged and also
// passed to diag when it is non-nil.
func OpenSavedSet(repo *settings.Repository, key string, diag bookmarks.Diagnostics, opts ...bookmarks.Option) *bookmarks.Serialized {
	all := append([]bookmarks.Option{
		bookmarks.WithStorageKey(key),
		bookmarks.WithDiagnostics(bookmarks.Tee(bookmarks.LogDiagnostics{}, diag)),
	}, opts...)
	return bookmarks.NewSerialized(bookmarks.New(NewBlobSlot(repo), all...))
}

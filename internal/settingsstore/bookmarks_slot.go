package settingsstore

import (
	"github.com/hadithapp/hadith/internal/bookmarks"
	"github.com/hadithapp/hadith/internal/database/settings"
)

// BlobSlot persists the saved set as a single settings row.
type BlobSlot struct {
	repo *settings.Repository
}

func NewBlobSlot(repo *settings.Repository) *BlobSlot {
	return &BlobSlot{repo: repo}
}

// Read returns bookmarks.ErrSlotEmpty when key has never been written.
func (b *BlobSlot) Read(key string) ([]byte, error) {
	value, ok, err := b.repo.GetValue(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, bookmarks.ErrSlotEmpty
	}
	return []byte(value), nil
}

func (b *BlobSlot) Write(key string, data []byte) error {
	return b.repo.SetSetting(key, string(data))
}

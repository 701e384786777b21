package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hadithapp/hadith/internal/bookmarks"
	"github.com/hadithapp/hadith/internal/entities"
)

// BookmarkAuditor records saved-set activity.
type BookmarkAuditor interface {
	LogBookmark(id string, saved bool)
	GetBookmarkHistory(id string, limit int) ([]entities.AuditEvent, error)
}

// Cleaner runs the saved-set cleanup and records its outcome.
type Cleaner interface {
	RunNow() error
}

type SavedController struct {
	saved   SavedSet
	corpus  CorpusReader
	auditor BookmarkAuditor
	cleaner Cleaner
}

// NewSavedController creates the controller. auditor and cleaner may be nil;
// without a cleaner the store is cleaned directly.
func NewSavedController(saved SavedSet, corpus CorpusReader, auditor BookmarkAuditor, cleaner Cleaner) *SavedController {
	return &SavedController{saved: saved, corpus: corpus, auditor: auditor, cleaner: cleaner}
}

// SavedStateResponse reports whether one identifier is saved.
type SavedStateResponse struct {
	ID    string `json:"id"`
	Saved bool   `json:"saved"`
}

// ListSaved returns the saved identifiers and the narrations they resolve to.
// GET /api/saved
func (sc *SavedController) ListSaved(c *gin.Context) {
	ids := sc.saved.List()

	rows, err := sc.corpus.GetBySavedIDs(ids)
	if err != nil {
		respondInternalError(c, err, "resolve saved hadiths")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ids":     ids,
		"count":   len(ids),
		"hadiths": newHadithViews(rows, sc.saved),
	})
}

// GetSavedCount returns the size of the saved set.
// GET /api/saved/count
func (sc *SavedController) GetSavedCount(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": sc.saved.Len()})
}

// GetSaved reports whether an identifier is saved. Padding around either
// part of the identifier does not matter.
// GET /api/saved/:id
func (sc *SavedController) GetSaved(c *gin.Context) {
	raw := c.Param("id")
	c.JSON(http.StatusOK, SavedStateResponse{
		ID:    bookmarks.Normalize(raw),
		Saved: sc.saved.IsSaved(raw),
	})
}

// ToggleSaved flips an identifier and returns the state read back from the store.
// POST /api/saved/:id/toggle
func (sc *SavedController) ToggleSaved(c *gin.Context) {
	raw := c.Param("id")
	id := bookmarks.Normalize(raw)

	saved := sc.saved.ToggleAndCheck(raw)
	if sc.auditor != nil {
		sc.auditor.LogBookmark(id, saved)
	}

	c.JSON(http.StatusOK, SavedStateResponse{ID: id, Saved: saved})
}

// GetHistory returns the recorded changes for one identifier.
// GET /api/saved/:id/history
func (sc *SavedController) GetHistory(c *gin.Context) {
	if sc.auditor == nil {
		respondError(c, http.StatusServiceUnavailable, "audit log not configured")
		return
	}

	id := bookmarks.Normalize(c.Param("id"))
	limit, _ := parsePagination(c, 50, 200)

	events, err := sc.auditor.GetBookmarkHistory(id, limit)
	if err != nil {
		respondInternalError(c, err, "bookmark history")
		return
	}
	if events == nil {
		events = []entities.AuditEvent{}
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "events": events})
}

// Cleanup collapses inconsistently formatted entries.
// POST /api/saved/cleanup
func (sc *SavedController) Cleanup(c *gin.Context) {
	before := sc.saved.Len()

	if sc.cleaner != nil {
		if err := sc.cleaner.RunNow(); err != nil {
			respondInternalError(c, err, "bookmark cleanup")
			return
		}
	} else {
		sc.saved.Cleanup()
	}

	after := sc.saved.Len()
	c.JSON(http.StatusOK, gin.H{
		"message":   "cleanup complete",
		"before":    before,
		"count":     after,
		"collapsed": before - after,
	})
}

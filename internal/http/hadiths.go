package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hadithapp/hadith/internal/database/narrations"
	"github.com/hadithapp/hadith/internal/entities"
)

type HadithsController struct {
	corpus    CorpusReader
	narrators NarratorReader
	saved     SavedSet
	rng       narrations.Rand
}

// NewHadithsController creates the controller. rng may be nil.
func NewHadithsController(corpus CorpusReader, narrators NarratorReader, saved SavedSet, rng narrations.Rand) *HadithsController {
	return &HadithsController{corpus: corpus, narrators: narrators, saved: saved, rng: rng}
}

func (hc *HadithsController) lookup(c *gin.Context) (*entities.Narration, bool) {
	hadith, err := hc.corpus.GetHadith(c.Param("book"), c.Param("number"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondNotFound(c, "hadith")
		return nil, false
	}
	if err != nil {
		respondInternalError(c, err, "get hadith")
		return nil, false
	}
	return hadith, true
}

// GetHadith returns one narration with its saved flag.
// GET /api/hadiths/:book/:number
func (hc *HadithsController) GetHadith(c *gin.Context) {
	hadith, ok := hc.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newHadithView(*hadith, hc.saved))
}

// GetChain resolves the narration's isnad.
// GET /api/hadiths/:book/:number/chain
func (hc *HadithsController) GetChain(c *gin.Context) {
	hadith, ok := hc.lookup(c)
	if !ok {
		return
	}

	links, err := hc.narrators.GetChain(hadith.ChainIndx)
	if err != nil {
		respondInternalError(c, err, "get chain")
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": hadith.SavedID(), "chain": links})
}

// Search does a substring search over the corpus.
// GET /api/search?q=...&limit=...
func (hc *HadithsController) Search(c *gin.Context) {
	query := c.Query("q")
	limit, _ := strconv.Atoi(c.Query("limit"))

	rows, err := hc.corpus.Search(query, limit)
	if errors.Is(err, narrations.ErrQueryTooShort) {
		respondBadRequestCode(c, "query_too_short", "search query too short",
			gin.H{"min_length": hc.corpus.MinQueryLength()})
		return
	}
	if err != nil {
		respondInternalError(c, err, "search")
		return
	}

	results := newHadithViews(rows, hc.saved)
	c.JSON(http.StatusOK, gin.H{"query": query, "count": len(results), "results": results})
}

// Random returns a randomly chosen narration.
// GET /api/random
func (hc *HadithsController) Random(c *gin.Context) {
	hadith, err := hc.corpus.Random(hc.rng)
	if errors.Is(err, narrations.ErrEmptyCorpus) {
		respondNotFound(c, "hadith")
		return
	}
	if err != nil {
		respondInternalError(c, err, "random hadith")
		return
	}
	c.JSON(http.StatusOK, newHadithView(*hadith, hc.saved))
}

// GetNarrator returns a narrator's biography.
// GET /api/narrators/:index
func (hc *HadithsController) GetNarrator(c *gin.Context) {
	narrator, err := hc.narrators.GetNarrator(c.Param("index"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondNotFound(c, "narrator")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get narrator")
		return
	}
	c.JSON(http.StatusOK, narrator)
}

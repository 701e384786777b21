package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hadithapp/hadith/internal/database"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
	Stats   map[string]int64  `json:"stats,omitempty"`
}

type HealthController struct {
	corpus  *database.Database
	user    *database.Database
	saved   SavedSet
	version string
}

func NewHealthController(corpus, user *database.Database, saved SavedSet, version string) *HealthController {
	return &HealthController{
		corpus:  corpus,
		user:    user,
		saved:   saved,
		version: version,
	}
}

func checkDatabase(db *database.Database) (string, bool) {
	if db == nil {
		return "not configured", true
	}
	if err := db.Ping(); err != nil {
		return "error: " + err.Error(), false
	}
	return "ok", true
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	stats := make(map[string]int64)
	status := "healthy"

	var ok bool
	if checks["corpus_database"], ok = checkDatabase(h.corpus); !ok {
		status = "unhealthy"
	}
	if checks["user_database"], ok = checkDatabase(h.user); !ok {
		status = "unhealthy"
	}

	if h.corpus != nil && status == "healthy" {
		if narrations, narrators, err := h.corpus.GetStats(); err == nil {
			stats["narrations"] = narrations
			stats["narrators"] = narrators
		}
	}
	if h.saved != nil {
		stats["saved"] = int64(h.saved.Len())
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
		Stats:   stats,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

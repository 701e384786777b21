package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hadithapp/hadith/internal/entities"
)

// AuditReader lists audit events.
type AuditReader interface {
	GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error)
	GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error)
}

type AuditController struct {
	auditService AuditReader
}

func NewAuditController(auditService AuditReader) *AuditController {
	return &AuditController{auditService: auditService}
}

// ListEvents returns recent audit events, optionally filtered by type.
// GET /api/audit?type=diagnostic&limit=25&offset=0
func (ac *AuditController) ListEvents(c *gin.Context) {
	limit, offset := parsePagination(c, 25, 200)
	eventType := c.Query("type")

	var events []entities.AuditEvent
	var total int64
	var err error

	if eventType != "" {
		events, total, err = ac.auditService.GetEventsByType(entities.AuditEventType(eventType), limit, offset)
	} else {
		events, total, err = ac.auditService.GetEvents(limit, offset)
	}
	if err != nil {
		respondInternalError(c, err, "list audit events")
		return
	}
	if events == nil {
		events = []entities.AuditEvent{}
	}

	c.JSON(http.StatusOK, newPaginatedResponse(events, total, limit, offset))
}

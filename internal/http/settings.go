package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hadithapp/hadith/internal/settingsstore"
)

// CleanupSettingsStore reads and overrides the bookmark cleanup settings.
type CleanupSettingsStore interface {
	GetCleanupConfigInfo() settingsstore.CleanupConfigInfo
	GetCleanupStatus() settingsstore.CleanupStatus
	SetCleanupEnabled(enabled bool) error
	SetCleanupSchedule(schedule string) error
	ClearCleanupSettings() error
}

// CleanupScheduler is restarted whenever the settings change.
type CleanupScheduler interface {
	Reschedule(ctx context.Context) error
	IsRunning() bool
}

type SettingsController struct {
	store     CleanupSettingsStore
	scheduler CleanupScheduler
	appCtx    context.Context
}

// NewSettingsController creates the controller. The scheduler is restarted
// under appCtx rather than the request context so it outlives the request.
func NewSettingsController(appCtx context.Context, store CleanupSettingsStore, scheduler CleanupScheduler) *SettingsController {
	if appCtx == nil {
		appCtx = context.Background()
	}
	return &SettingsController{store: store, scheduler: scheduler, appCtx: appCtx}
}

type cleanupSettingsResponse struct {
	Config      settingsstore.CleanupConfigInfo `json:"config"`
	Description string                          `json:"description"`
	Status      settingsstore.CleanupStatus     `json:"status"`
	Running     bool                            `json:"scheduler_running"`
}

// UpdateCleanupSettingsRequest carries the fields to override. Omitted fields are left as they are.
type UpdateCleanupSettingsRequest struct {
	Enabled  *bool   `json:"enabled"`
	Schedule *string `json:"schedule"`
}

func (sc *SettingsController) respondCleanupSettings(c *gin.Context) {
	info := sc.store.GetCleanupConfigInfo()
	resp := cleanupSettingsResponse{
		Config:      info,
		Description: settingsstore.GetCronDescription(info.Schedule),
		Status:      sc.store.GetCleanupStatus(),
	}
	if sc.scheduler != nil {
		resp.Running = sc.scheduler.IsRunning()
	}
	c.JSON(http.StatusOK, resp)
}

// GetCleanupSettings handles GET /api/settings/cleanup
func (sc *SettingsController) GetCleanupSettings(c *gin.Context) {
	sc.respondCleanupSettings(c)
}

// UpdateCleanupSettings handles PUT /api/settings/cleanup
func (sc *SettingsController) UpdateCleanupSettings(c *gin.Context) {
	var req UpdateCleanupSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if req.Schedule != nil {
		if err := settingsstore.ValidateCronSchedule(*req.Schedule); err != nil {
			respondBadRequestCode(c, "invalid_schedule", "invalid cron schedule", err.Error())
			return
		}
		if err := sc.store.SetCleanupSchedule(*req.Schedule); err != nil {
			respondInternalError(c, err, "save cleanup schedule")
			return
		}
	}
	if req.Enabled != nil {
		if err := sc.store.SetCleanupEnabled(*req.Enabled); err != nil {
			respondInternalError(c, err, "save cleanup enabled")
			return
		}
	}

	if !sc.reschedule(c) {
		return
	}
	sc.respondCleanupSettings(c)
}

// ResetCleanupSettings handles DELETE /api/settings/cleanup
func (sc *SettingsController) ResetCleanupSettings(c *gin.Context) {
	if err := sc.store.ClearCleanupSettings(); err != nil {
		respondInternalError(c, err, "reset cleanup settings")
		return
	}
	if !sc.reschedule(c) {
		return
	}
	sc.respondCleanupSettings(c)
}

func (sc *SettingsController) reschedule(c *gin.Context) bool {
	if sc.scheduler == nil {
		return true
	}
	if err := sc.scheduler.Reschedule(sc.appCtx); err != nil {
		respondInternalError(c, err, "reschedule cleanup")
		return false
	}
	return true
}

package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/hadithapp/hadith/internal/tasks"
)

// TaskDispatcher enqueues background tasks by kind.
type TaskDispatcher interface {
	Enqueue(ctx context.Context, kind string) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// TasksController handles task queue management endpoints.
type TasksController struct {
	dispatcher TaskDispatcher
}

// NewTasksController creates a new TasksController.
func NewTasksController(dispatcher TaskDispatcher) *TasksController {
	return &TasksController{dispatcher: dispatcher}
}

// TaskTypeInfo describes an available task type.
type TaskTypeInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

var taskDescriptions = map[string]string{
	tasks.KindImportCorpus:     "Re-import the corpus from the configured CSV snapshots",
	tasks.KindCleanupBookmarks: "Collapse saved hadith IDs that differ only by padding",
	tasks.KindPurgeAudit:       "Delete audit events older than the retention period",
}

// ListTaskTypes handles GET /api/tasks/types
func (tc *TasksController) ListTaskTypes(c *gin.Context) {
	types := make([]TaskTypeInfo, 0, len(tasks.Kinds()))
	for _, kind := range tasks.Kinds() {
		types = append(types, TaskTypeInfo{Type: kind, Description: taskDescriptions[kind]})
	}

	c.JSON(http.StatusOK, gin.H{"task_types": types})
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.dispatcher.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

// RunTask handles POST /api/tasks/:type/run
func (tc *TasksController) RunTask(c *gin.Context) {
	taskType := c.Param("type")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	id, err := tc.dispatcher.Enqueue(ctx, taskType)
	if errors.Is(err, tasks.ErrUnknownKind) {
		respondBadRequestCode(c, "unknown_task_type", "unknown task type: "+taskType, gin.H{"types": tasks.Kinds()})
		return
	}
	if err != nil {
		respondInternalError(c, err, "enqueue task")
		return
	}

	respondAccepted(c, "task enqueued", gin.H{"task_id": id, "type": taskType})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

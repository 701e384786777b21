package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Optional dependencies left nil in cfg leave their routes unregistered.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.CorpusDatabase, cfg.UserDatabase, cfg.Saved, cfg.Version)
	booksController := NewBooksController(cfg.Corpus, cfg.Saved)
	hadithsController := NewHadithsController(cfg.Corpus, cfg.Narrators, cfg.Saved, cfg.Rand)
	savedController := NewSavedController(cfg.Saved, cfg.Corpus, cfg.Auditor, cfg.Cleaner)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Corpus browsing
	router.GET("/api/books", booksController.GetBooks)
	router.GET("/api/books/:book/chapters", booksController.GetChapters)
	router.GET("/api/books/:book/chapters/:chapter/hadiths", booksController.GetHadithsByChapter)
	router.GET("/api/hadiths/:book/:number", hadithsController.GetHadith)
	router.GET("/api/hadiths/:book/:number/chain", hadithsController.GetChain)
	router.GET("/api/narrators/:index", hadithsController.GetNarrator)
	router.GET("/api/search", hadithsController.Search)
	router.GET("/api/random", hadithsController.Random)

	// Saved hadiths
	router.GET("/api/saved", savedController.ListSaved)
	router.GET("/api/saved/count", savedController.GetSavedCount)
	router.GET("/api/saved/:id", savedController.GetSaved)
	router.GET("/api/saved/:id/history", savedController.GetHistory)
	router.POST("/api/saved/:id/toggle", savedController.ToggleSaved)
	router.POST("/api/saved/cleanup", savedController.Cleanup)
	if cfg.Events != nil {
		router.GET("/api/saved/events", cfg.Events.Stream(cfg.Saved))
	}

	// Audit log
	if cfg.AuditReader != nil {
		auditController := NewAuditController(cfg.AuditReader)
		router.GET("/api/audit", auditController.ListEvents)
	}

	// Cleanup settings
	if cfg.CleanupSettings != nil {
		settingsController := NewSettingsController(cfg.AppContext, cfg.CleanupSettings, cfg.CleanupScheduler)
		router.GET("/api/settings/cleanup", settingsController.GetCleanupSettings)
		router.PUT("/api/settings/cleanup", settingsController.UpdateCleanupSettings)
		router.DELETE("/api/settings/cleanup", settingsController.ResetCleanupSettings)
	}

	// Task queue
	if cfg.Tasks != nil {
		tasksController := NewTasksController(cfg.Tasks)
		router.GET("/api/tasks/types", tasksController.ListTaskTypes)
		router.GET("/api/tasks/:id", tasksController.GetTaskStatus)
		router.POST("/api/tasks/:type/run", tasksController.RunTask)
	}

	return router
}

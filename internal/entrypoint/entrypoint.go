package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hadithapp/hadith/internal/audit"
	"github.com/hadithapp/hadith/internal/config"
	"github.com/hadithapp/hadith/internal/database"
	auditrepo "github.com/hadithapp/hadith/internal/database/audit"
	"github.com/hadithapp/hadith/internal/database/narrations"
	"github.com/hadithapp/hadith/internal/database/narrators"
	"github.com/hadithapp/hadith/internal/database/settings"
	http_controllers "github.com/hadithapp/hadith/internal/http"
	"github.com/hadithapp/hadith/internal/importers"
	"github.com/hadithapp/hadith/internal/scheduler"
	"github.com/hadithapp/hadith/internal/settingsstore"
	"github.com/hadithapp/hadith/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	// Request contexts derive from baseCtx so that open event streams end on shutdown.
	baseCtx, cancelRequests := context.WithCancel(context.Background())
	defer cancelRequests()

	srv := &http.Server{
		Addr:        fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:     router,
		BaseContext: func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(cancelRequests)

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT or SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Hadith v%s", version)

	// Corpus database
	corpusDB, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize corpus database: %v", err)
	}
	defer func() {
		if err := corpusDB.Close(); err != nil {
			log.Printf("Error closing corpus database: %v", err)
		}
	}()

	// User database: saved set, settings, audit events
	userDB, err := database.NewUserDatabase(cfg.Database.UserPath)
	if err != nil {
		log.Fatalf("Failed to initialize user database: %v", err)
	}
	defer func() {
		if err := userDB.Close(); err != nil {
			log.Printf("Error closing user database: %v", err)
		}
	}()

	corpus := narrations.NewRepository(corpusDB.DB)
	corpus.SetMinQueryLength(cfg.Search.MinLength)
	corpus.SetSearchLimit(cfg.Search.Limit)
	narratorRepo := narrators.NewRepository(corpusDB.DB)

	if count, err := corpus.Count(); err != nil {
		log.Printf("WARNING: Failed to count narrations: %v", err)
	} else if count == 0 {
		log.Printf("WARNING: Corpus is empty. Run 'import-corpus' or POST /api/tasks/import_corpus/run.")
	} else {
		log.Printf("Corpus has %d translated narrations", count)
	}

	auditSvc := audit.NewService(auditrepo.NewRepository(userDB.DB))
	settingsRepo := settings.NewRepository(userDB.DB)
	settingsStore := settingsstore.New(settingsRepo, settingsstore.Defaults{
		CleanupEnabled:  cfg.Bookmarks.CleanupEnabled,
		CleanupSchedule: cfg.Bookmarks.CleanupSchedule,
	})

	// Saved set. Legacy entries are collapsed while loading.
	saved := settingsstore.OpenSavedSet(settingsRepo, cfg.Bookmarks.StorageKey, auditSvc)
	log.Printf("[BOOKMARKS] Loaded %d saved hadiths", saved.Len())

	events := http_controllers.NewSavedEventsHub()
	saved.OnChange(events.Publish)

	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// Scheduled cleanup
	cleanupScheduler := scheduler.NewBookmarkCleanupScheduler(saved, settingsStore, auditSvc)
	if err := cleanupScheduler.Start(appCtx); err != nil {
		log.Printf("WARNING: Failed to start bookmark cleanup scheduler: %v", err)
	}

	// Task queue
	var taskClient *tasks.Client
	var dispatcher *tasks.Dispatcher
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			DBPath:             tasks.QueueDBPath(cfg.Database.UserPath),
			Workers:            cfg.Tasks.Workers,
			TaskTimeout:        cfg.Tasks.TaskTimeout,
			ReleaseAfter:       cfg.Tasks.ReleaseAfter,
			CleanupInterval:    cfg.Tasks.CleanupInterval,
			AuditRetentionDays: cfg.Audit.RetentionDays,
		}

		taskClient, err = tasks.NewClient(taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		reportImport := func(result importers.ImportResult, err error) {
			auditSvc.LogImport("Background corpus import", result.NarrationsImported, result.NarratorsImported, err)
			if err == nil {
				if err := settingsStore.MarkCorpusImported(time.Now()); err != nil {
					log.Printf("[TASK] Failed to record import time: %v", err)
				}
			}
		}

		dispatcher = tasks.NewDispatcher(taskClient, tasks.Dependencies{
			Importer:       importers.NewImporter(corpusDB),
			ImportReporter: reportImport,
			Cleaner:        cleanupScheduler,
			AuditCleaner:   auditSvc,
		}, tasks.Defaults{
			HadithsPath:        cfg.Corpus.HadithsCSVPath,
			NarratorsPath:      cfg.Corpus.NarratorsCSVPath,
			AuditRetentionDays: cfg.Audit.RetentionDays,
		})

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(appCtx)
		go taskClient.Start(taskCtx)
	}

	routerCfg := http_controllers.RouterConfig{
		AppContext:       appCtx,
		Corpus:           corpus,
		Narrators:        narratorRepo,
		Saved:            saved,
		CorpusDatabase:   corpusDB,
		UserDatabase:     userDB,
		Events:           events,
		Auditor:          auditSvc,
		AuditReader:      auditSvc,
		Cleaner:          cleanupScheduler,
		CleanupSettings:  settingsStore,
		CleanupScheduler: cleanupScheduler,
		Version:          version,
	}
	if dispatcher != nil {
		routerCfg.Tasks = dispatcher
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		cleanupScheduler.Stop()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
		appCancel()
		auditSvc.Close()
	}

	Serve(router, cfg, onShutdown)
}

package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goalboard/goalboard/internal/config"
	"github.com/goalboard/goalboard/internal/database"
	"github.com/goalboard/goalboard/internal/database/events"
	"github.com/goalboard/goalboard/internal/database/goals"
	http_controllers "github.com/goalboard/goalboard/internal/http"
	"github.com/goalboard/goalboard/internal/importer"
	"github.com/goalboard/goalboard/internal/metadata"
	"github.com/goalboard/goalboard/internal/scheduler"
	"github.com/goalboard/goalboard/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	// Wait for interrupt signal to gracefully shutdown the server with
	// the configured timeout.
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
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Goalboard v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	goalStore := goals.NewRepository(db.DB)
	eventStore := events.NewRepository(db.DB)

	// Create metadata enricher for show/movie enrichment from TVMaze
	provider := metadata.NewTVMazeClient(
		cfg.Enrichment.BaseURL,
		cfg.Enrichment.Interval,
		cfg.Enrichment.Timeout,
	)
	enricher := metadata.NewEnricher(provider, cfg.Enrichment.Interval, cfg.Classifier.MinConfidence)

	// Staged imports live in memory until confirmed or discarded
	registry := importer.NewStagedRegistry()

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		// Register task queues
		taskClient.Register(
			tasks.NewRefreshShowQueue(goalStore, enricher),
			tasks.NewRefreshAllShowsQueue(goalStore, taskClient),
		)

		// Start task workers in background
		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	// Start the periodic new-content check if configured
	syncScheduler := scheduler.NewNewContentSyncScheduler(cfg.NewContentSync, taskClient)
	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	defer schedulerCancel()
	if err := syncScheduler.Start(schedulerCtx); err != nil {
		log.Fatalf("Failed to start new-content sync scheduler: %v", err)
	}

	// Build router configuration with all dependencies
	routerCfg := http_controllers.RouterConfig{
		Database:   db,
		GoalStore:  goalStore,
		EventStore: eventStore,
		Enricher:   enricher,
		Registry:   registry,
		TaskClient: taskClient,
		Version:    version,
	}
	// The manual sync endpoint is only useful with a task queue behind it
	if taskClient != nil {
		routerCfg.SyncScheduler = syncScheduler
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		schedulerCancel()
		syncScheduler.Stop()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}

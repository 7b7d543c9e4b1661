package http

import (
	"github.com/goalboard/goalboard/internal/database"
	"github.com/goalboard/goalboard/internal/importer"
	"github.com/goalboard/goalboard/internal/metadata"
	"github.com/goalboard/goalboard/internal/scheduler"
	"github.com/goalboard/goalboard/internal/tasks"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. This replaces a long parameter list
// in NewRouter for better maintainability.
type RouterConfig struct {
	// Core dependencies
	Database   *database.Database
	GoalStore  GoalStore
	EventStore EventStore

	// Import pipeline
	Enricher *metadata.Enricher
	Registry *importer.StagedRegistry

	// Task queue client (optional)
	TaskClient *tasks.Client

	// Background new-content sync (optional)
	SyncScheduler *scheduler.NewContentSyncScheduler

	// Application info
	Version string
}

package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/goalboard/goalboard/internal/entities"
	"github.com/goalboard/goalboard/internal/metadata"
)

// ShowStore is the slice of the goals repository the refresh tasks need.
type ShowStore interface {
	GetTaskByID(id uint) (*entities.Task, error)
	GetEnrichedShowTasks() ([]entities.Task, error)
	UpdateTaskEnrichment(task *entities.Task) error
}

// RefreshShowTask re-fetches metadata for one committed show task and updates
// its new-content flags.
type RefreshShowTask struct {
	TaskID uint `json:"task_id"`
}

// Config returns the queue configuration for show refresh tasks.
func (t RefreshShowTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "refresh_show",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// RefreshShowProcessor creates a processor function for RefreshShowTask.
func RefreshShowProcessor(store ShowStore, enricher *metadata.Enricher) backlite.QueueProcessor[RefreshShowTask] {
	return func(ctx context.Context, task RefreshShowTask) error {
		if enricher == nil {
			return fmt.Errorf("enricher not configured")
		}

		stored, err := store.GetTaskByID(task.TaskID)
		if err != nil {
			return fmt.Errorf("load task %d: %w", task.TaskID, err)
		}

		switch stored.ContentKind {
		case entities.ContentKindTVSeries, entities.ContentKindAnime:
		default:
			log.Printf("[TASK] Task %d (%s) is not a show, skipping refresh", stored.ID, stored.Text)
			return nil
		}

		if err := enricher.EnrichTask(ctx, stored); err != nil {
			return fmt.Errorf("refresh metadata for task %d (%s): %w", stored.ID, stored.Text, err)
		}

		detection := metadata.DetectNewContent(stored)
		stored.HasNewContent = detection.HasNewContent
		stored.ShowStatus = detection.Status
		stored.UpcomingTitle = detection.UpcomingTitle
		stored.UpcomingDate = detection.UpcomingDate

		if err := store.UpdateTaskEnrichment(stored); err != nil {
			return fmt.Errorf("save refreshed metadata for task %d: %w", stored.ID, err)
		}

		if detection.HasNewContent {
			log.Printf("[TASK] Task %d (%s) has new content: %d seasons known",
				stored.ID, stored.Text, stored.Enrichment.TotalSeasons)
		} else {
			log.Printf("[TASK] Task %d (%s) is up to date", stored.ID, stored.Text)
		}

		return nil
	}
}

// NewRefreshShowQueue creates a backlite queue for show refresh tasks.
func NewRefreshShowQueue(store ShowStore, enricher *metadata.Enricher) backlite.Queue {
	return backlite.NewQueue(RefreshShowProcessor(store, enricher))
}

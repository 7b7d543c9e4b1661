package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// RefreshAllShowsTask fans out a RefreshShowTask for every committed task
// with cached show metadata. The scheduler enqueues this periodically.
type RefreshAllShowsTask struct{}

// Config returns the queue configuration for the fan-out task.
func (t RefreshAllShowsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "refresh_all_shows",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// enqueuer is the subset of Client the fan-out processor needs.
type enqueuer interface {
	Add(tasks ...backlite.Task) *backlite.TaskAddOp
}

// RefreshAllShowsProcessor creates a processor function for RefreshAllShowsTask.
func RefreshAllShowsProcessor(store ShowStore, client enqueuer) backlite.QueueProcessor[RefreshAllShowsTask] {
	return func(ctx context.Context, task RefreshAllShowsTask) error {
		shows, err := store.GetEnrichedShowTasks()
		if err != nil {
			return fmt.Errorf("list enriched shows: %w", err)
		}
		if len(shows) == 0 {
			log.Println("[TASK] No enriched shows to refresh")
			return nil
		}

		enqueued := 0
		for _, show := range shows {
			if _, err := client.Add(RefreshShowTask{TaskID: show.ID}).Save(); err != nil {
				log.Printf("[TASK ERROR] Failed to enqueue refresh for task %d: %v", show.ID, err)
				continue
			}
			enqueued++
		}

		log.Printf("[TASK] Enqueued %d of %d show refreshes", enqueued, len(shows))
		return nil
	}
}

// NewRefreshAllShowsQueue creates a backlite queue for the fan-out task.
func NewRefreshAllShowsQueue(store ShowStore, client enqueuer) backlite.Queue {
	return backlite.NewQueue(RefreshAllShowsProcessor(store, client))
}

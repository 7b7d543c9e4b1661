// Package scheduler runs periodic background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/goalboard/goalboard/internal/config"
	"github.com/goalboard/goalboard/internal/tasks"
)

// NewContentSyncScheduler periodically enqueues a fan-out refresh of all
// committed show tasks so new-content flags stay current.
type NewContentSyncScheduler struct {
	cfg    config.NewContentSync
	client *tasks.Client

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewNewContentSyncScheduler creates a new scheduler instance.
func NewNewContentSyncScheduler(cfg config.NewContentSync, client *tasks.Client) *NewContentSyncScheduler {
	return &NewContentSyncScheduler{
		cfg:    cfg,
		client: client,
		cron:   cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if new-content sync is enabled.
func (s *NewContentSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.cfg.Enabled {
		log.Printf("New-content sync scheduler: disabled")
		return nil
	}

	if s.client == nil {
		log.Printf("New-content sync scheduler: task queue not available, skipping")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		s.runSync()
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.cfg.Schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("New-content sync scheduler: started with schedule '%s'. Next run: %v",
		s.cfg.Schedule, s.nextRunLocked())

	// Monitor for context cancellation
	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler.
func (s *NewContentSyncScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("New-content sync scheduler: stopped")
}

// RunNow triggers an immediate refresh.
func (s *NewContentSyncScheduler) RunNow() {
	go s.runSync()
}

// IsRunning returns whether the scheduler is active.
func (s *NewContentSyncScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next refresh will occur.
func (s *NewContentSyncScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	return s.nextRunLocked()
}

func (s *NewContentSyncScheduler) nextRunLocked() *time.Time {
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// runSync enqueues the fan-out task; the queue workers do the actual work.
func (s *NewContentSyncScheduler) runSync() {
	log.Printf("New-content sync: enqueueing show refresh")
	if _, err := s.client.Add(tasks.RefreshAllShowsTask{}).Save(); err != nil {
		log.Printf("New-content sync: failed to enqueue refresh: %v", err)
		return
	}
	log.Printf("New-content sync: refresh enqueued")
}

// Package importer orchestrates the board import pipeline: parse, classify,
// enrich, finalize, stage. The coordinator mutates only the task slice it
// builds itself and hands the result to the caller at the staged transition;
// callers must not start two runs of one coordinator concurrently.
//
// Only a parse failure moves the coordinator to the error phase. Cancelling
// the context during enrichment returns the context error and resets the
// coordinator to idle: nothing is staged, and the partially enriched tasks
// are abandoned with the run.
package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/goalboard/goalboard/internal/classify"
	"github.com/goalboard/goalboard/internal/entities"
	"github.com/goalboard/goalboard/internal/metadata"
	"github.com/goalboard/goalboard/internal/trello"
)

type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseParsing        Phase = "parsing"
	PhaseDetectingTypes Phase = "detecting-types"
	PhaseEnriching      Phase = "enriching"
	PhaseFinalizing     Phase = "finalizing"
	PhaseStaged         Phase = "staged"
	PhaseError          Phase = "error"
)

// classifyProgressEvery controls how often classification progress is
// reported; enrichment reports per task because each call is slow.
const classifyProgressEvery = 5

// Progress is one externally observable pipeline update.
type Progress struct {
	Phase   Phase  `json:"phase"`
	Current int    `json:"current"`
	Total   int    `json:"total"`
	Status  string `json:"status,omitempty"`
}

type ProgressFunc func(Progress)

// Stats summarizes an import for the confirmation screen.
type Stats struct {
	Lists       int `json:"lists"`
	Tasks       int `json:"tasks"`
	Checklists  int `json:"checklists"`
	Attachments int `json:"attachments"`
	Comments    int `json:"comments"`
	Links       int `json:"links"` // deduplicated
}

// StagedImportResult is a fully assembled board import held in memory until
// the caller explicitly commits or discards it. Nothing is persisted before
// that decision.
type StagedImportResult struct {
	ID              string             `json:"id"`
	GoalTitle       string             `json:"goal_title"`
	GoalType        entities.GoalType  `json:"goal_type"`
	BoardType       entities.BoardType `json:"board_type"`
	Tasks           []entities.Task    `json:"tasks"`
	BackgroundImage string             `json:"background_image,omitempty"`
	SourceName      string             `json:"source_name"`
	SourceURL       string             `json:"source_url,omitempty"`
	Stats           Stats              `json:"stats"`
	StagedAt        time.Time          `json:"staged_at"`
}

// Goal converts the staged result into the persistent goal shape.
func (r *StagedImportResult) Goal() *entities.Goal {
	return &entities.Goal{
		Title:           r.GoalTitle,
		GoalType:        r.GoalType,
		BoardType:       r.BoardType,
		BackgroundImage: r.BackgroundImage,
		SourceName:      r.SourceName,
		SourceURL:       r.SourceURL,
		Tasks:           r.Tasks,
	}
}

// Coordinator runs one board import end to end. It holds no lock; preventing
// concurrent runs is the caller's obligation.
type Coordinator struct {
	enricher   *metadata.Enricher
	onProgress ProgressFunc
	classifyFn func(*entities.Task) classify.Result

	phase Phase
}

func NewCoordinator(enricher *metadata.Enricher, onProgress ProgressFunc) *Coordinator {
	return &Coordinator{
		enricher:   enricher,
		onProgress: onProgress,
		classifyFn: classify.Content,
		phase:      PhaseIdle,
	}
}

// Phase returns the coordinator's current phase.
func (c *Coordinator) Phase() Phase {
	return c.phase
}

func (c *Coordinator) report(progress Progress) {
	if c.onProgress != nil {
		c.onProgress(progress)
	}
}

func (c *Coordinator) setPhase(phase Phase) {
	c.phase = phase
}

// Run executes the full pipeline over a raw board export. A structural
// failure during parsing is the only error that crosses this boundary;
// per-task classification and enrichment failures are absorbed.
func (c *Coordinator) Run(ctx context.Context, data []byte) (*StagedImportResult, error) {
	c.setPhase(PhaseParsing)
	c.report(Progress{Phase: PhaseParsing})

	doc, err := trello.ParseDocument(data)
	if err != nil {
		c.setPhase(PhaseError)
		return nil, fmt.Errorf("parse board export: %w", err)
	}

	tasks := trello.TransformCards(doc)
	goalType, boardType := trello.ClassifyBoard(doc)
	trello.RemapMediaCategories(tasks, boardType)

	c.setPhase(PhaseDetectingTypes)
	total := len(tasks)
	for i := range tasks {
		result := c.classifyFn(&tasks[i])
		tasks[i].ContentKind = result.Kind
		tasks[i].Confidence = result.Confidence
		if (i+1)%classifyProgressEvery == 0 || i+1 == total {
			c.report(Progress{Phase: PhaseDetectingTypes, Current: i + 1, Total: total})
		}
	}

	c.setPhase(PhaseEnriching)
	taskPtrs := make([]*entities.Task, len(tasks))
	for i := range tasks {
		taskPtrs[i] = &tasks[i]
	}
	eligible := c.enricher.EligibleTasks(taskPtrs)
	err = c.enricher.EnrichAll(ctx, eligible, func(i int, title string) {
		c.report(Progress{
			Phase:   PhaseEnriching,
			Current: i + 1,
			Total:   len(eligible),
			Status:  "loading: " + title,
		})
	})
	if err != nil {
		// Context cancellation only; enrichment already applied stays.
		c.setPhase(PhaseIdle)
		return nil, err
	}

	for _, task := range eligible {
		if task.Enrichment == nil {
			continue
		}
		switch task.ContentKind {
		case entities.ContentKindTVSeries, entities.ContentKindAnime:
			detection := metadata.DetectNewContent(task)
			task.HasNewContent = detection.HasNewContent
			task.ShowStatus = detection.Status
			task.UpcomingTitle = detection.UpcomingTitle
			task.UpcomingDate = detection.UpcomingDate
		}
	}

	c.setPhase(PhaseFinalizing)
	c.report(Progress{Phase: PhaseFinalizing})

	result := &StagedImportResult{
		GoalTitle:       doc.Export.Name,
		GoalType:        goalType,
		BoardType:       boardType,
		Tasks:           tasks,
		BackgroundImage: doc.BackgroundImage(),
		SourceName:      "trello",
		SourceURL:       doc.Export.URL,
		Stats:           collectStats(doc, tasks),
		StagedAt:        time.Now(),
	}

	c.setPhase(PhaseStaged)
	c.report(Progress{Phase: PhaseStaged, Current: total, Total: total})
	return result, nil
}

func collectStats(doc *trello.Document, tasks []entities.Task) Stats {
	stats := Stats{
		Lists: len(doc.OpenLists),
		Tasks: len(tasks),
	}
	for i := range tasks {
		stats.Checklists += len(tasks[i].Checklists)
		stats.Links += len(tasks[i].Links)
	}
	openLists := make(map[string]bool, len(doc.OpenLists))
	for _, list := range doc.OpenLists {
		openLists[list.ID] = true
	}
	for _, card := range doc.Export.Cards {
		if card.Closed || !openLists[card.IDList] {
			continue
		}
		stats.Attachments += len(card.Attachments)
		stats.Comments += len(doc.CardComments[card.ID])
	}
	return stats
}

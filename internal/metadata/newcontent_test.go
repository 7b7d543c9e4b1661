package metadata

import (
	"testing"
	"time"

	"github.com/goalboard/goalboard/internal/entities"
)

func trackedShow(seasonsTracked int, meta *entities.EnrichmentCache) *entities.Task {
	items := make([]entities.ChecklistItem, 0, seasonsTracked)
	for i := 1; i <= seasonsTracked; i++ {
		items = append(items, entities.ChecklistItem{Text: "Season " + string(rune('0'+i))})
	}
	return &entities.Task{
		Text:       "Some Show",
		Checklists: []entities.Checklist{{Name: "Seasons", Items: items}},
		Enrichment: meta,
	}
}

func TestDetectNewContent_MoreSeasonsThanTracked(t *testing.T) {
	task := trackedShow(2, &entities.EnrichmentCache{TotalSeasons: 4, Status: "Running"})

	detection := DetectNewContent(task)

	if !detection.HasNewContent {
		t.Error("expected new content when metadata has more seasons than checklists")
	}
	if detection.Status != entities.ShowStatusOngoing {
		t.Errorf("expected ongoing, got %s", detection.Status)
	}
}

func TestDetectNewContent_UpToDate(t *testing.T) {
	task := trackedShow(3, &entities.EnrichmentCache{TotalSeasons: 3, Status: "Ended"})

	detection := DetectNewContent(task)

	if detection.HasNewContent {
		t.Error("expected no new content when counts match")
	}
	if detection.Status != entities.ShowStatusEnded {
		t.Errorf("expected ended, got %s", detection.Status)
	}
}

func TestDetectNewContent_UpcomingRequiresFutureDate(t *testing.T) {
	future := time.Now().AddDate(0, 1, 0).Format("2006-01-02")
	task := trackedShow(1, &entities.EnrichmentCache{
		TotalSeasons:     2,
		Status:           "To Be Determined",
		NextEpisodeTitle: "Season Premiere",
		NextEpisodeDate:  future,
	})

	detection := DetectNewContent(task)

	if detection.Status != entities.ShowStatusUpcoming {
		t.Errorf("expected upcoming, got %s", detection.Status)
	}
	if detection.UpcomingTitle != "Season Premiere" {
		t.Errorf("unexpected upcoming title %q", detection.UpcomingTitle)
	}
	if detection.UpcomingDate != future {
		t.Errorf("unexpected upcoming date %q", detection.UpcomingDate)
	}
}

func TestDetectNewContent_StaleUpcomingStatusFallsBackToEnded(t *testing.T) {
	task := trackedShow(1, &entities.EnrichmentCache{
		TotalSeasons:    1,
		Status:          "To Be Determined",
		NextEpisodeDate: "2020-01-01",
	})

	detection := DetectNewContent(task)

	if detection.Status != entities.ShowStatusEnded {
		t.Errorf("expected ended for a past release date, got %s", detection.Status)
	}
}

func TestDetectNewContent_NoEnrichment(t *testing.T) {
	task := &entities.Task{Text: "unenriched"}

	detection := DetectNewContent(task)

	if detection.HasNewContent || detection.Status != "" {
		t.Error("expected empty detection without cached enrichment")
	}
}

package metadata

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goalboard/goalboard/internal/entities"
)

type mockProvider struct {
	result *entities.EnrichmentCache
	err    error

	calls  int
	titles []string
	years  []int
}

func (m *mockProvider) FetchMetadata(ctx context.Context, title string, kind entities.ContentKind, year int) (*entities.EnrichmentCache, error) {
	m.calls++
	m.titles = append(m.titles, title)
	m.years = append(m.years, year)
	if m.err != nil {
		return nil, m.err
	}
	result := *m.result
	return &result, nil
}

func TestCleanTitle(t *testing.T) {
	cases := []struct {
		in    string
		title string
		year  int
	}{
		{"Dark (2017–2020)", "Dark", 2017},
		{"Severance (2022– )", "Severance", 2022},
		{"Dune (2021)", "Dune", 2021},
		{"Breaking Bad", "Breaking Bad", 0},
		{"  The Wire  ", "The Wire", 0},
	}

	for _, tc := range cases {
		title, year := CleanTitle(tc.in)
		if title != tc.title {
			t.Errorf("CleanTitle(%q) title = %q, want %q", tc.in, title, tc.title)
		}
		if year != tc.year {
			t.Errorf("CleanTitle(%q) year = %d, want %d", tc.in, year, tc.year)
		}
	}
}

func TestEligible_ConfidenceBoundary(t *testing.T) {
	enricher := NewEnricher(&mockProvider{}, 0, 25)

	task := &entities.Task{Text: "Dune", ContentKind: entities.ContentKindMovie, Confidence: 25}
	if !enricher.Eligible(task) {
		t.Error("confidence of exactly 25 must be accepted")
	}

	task.Confidence = 24
	if enricher.Eligible(task) {
		t.Error("confidence of 24 must be rejected")
	}
}

func TestEligible_UnknownKindRejected(t *testing.T) {
	enricher := NewEnricher(&mockProvider{}, 0, 25)
	task := &entities.Task{Text: "x", ContentKind: entities.ContentKindUnknown, Confidence: 99}
	if enricher.Eligible(task) {
		t.Error("unknown kind must never be eligible")
	}
}

func TestEligible_ShowsRequireSeasonMarker(t *testing.T) {
	enricher := NewEnricher(&mockProvider{}, 0, 25)

	show := &entities.Task{Text: "Dark", ContentKind: entities.ContentKindTVSeries, Confidence: 80}
	if enricher.Eligible(show) {
		t.Error("a show without season markers must not be eligible")
	}

	show.Checklists = []entities.Checklist{
		{Name: "Progress", Items: []entities.ChecklistItem{{Text: "Season 1"}}},
	}
	if !enricher.Eligible(show) {
		t.Error("a show with a season marker must be eligible")
	}

	movie := &entities.Task{Text: "Dune", ContentKind: entities.ContentKindMovie, Confidence: 80}
	if !enricher.Eligible(movie) {
		t.Error("movies are always eligible once classified")
	}
}

func TestEnrichTask_CachesResultWithTimestamp(t *testing.T) {
	provider := &mockProvider{result: &entities.EnrichmentCache{Title: "Dark", TotalSeasons: 3}}
	enricher := NewEnricher(provider, 0, 25)

	task := &entities.Task{Text: "Dark (2017–2020)", ContentKind: entities.ContentKindTVSeries}
	if err := enricher.EnrichTask(context.Background(), task); err != nil {
		t.Fatalf("EnrichTask failed: %v", err)
	}

	if task.Enrichment == nil {
		t.Fatal("expected enrichment to be cached on the task")
	}
	if task.Enrichment.FetchedAt.IsZero() {
		t.Error("expected a fetch timestamp")
	}
	if provider.titles[0] != "Dark" {
		t.Errorf("expected cleaned title, got %q", provider.titles[0])
	}
	if provider.years[0] != 2017 {
		t.Errorf("expected year hint 2017, got %d", provider.years[0])
	}
}

func TestEnrichAll_FailuresAreNonFatal(t *testing.T) {
	provider := &mockProvider{err: errors.New("provider down")}
	enricher := NewEnricher(provider, 0, 25)

	tasks := []*entities.Task{
		{Text: "Show A", ContentKind: entities.ContentKindTVSeries},
		{Text: "Show B", ContentKind: entities.ContentKindTVSeries},
	}

	if err := enricher.EnrichAll(context.Background(), tasks, nil); err != nil {
		t.Fatalf("EnrichAll must absorb per-task failures, got %v", err)
	}
	if provider.calls != 2 {
		t.Errorf("expected both tasks attempted, got %d calls", provider.calls)
	}
	for _, task := range tasks {
		if task.Enrichment != nil {
			t.Error("failed tasks must stay unenriched")
		}
	}
}

func TestEnrichAll_SequentialWithPause(t *testing.T) {
	provider := &mockProvider{result: &entities.EnrichmentCache{Title: "x"}}
	enricher := NewEnricher(provider, 30*time.Millisecond, 25)

	tasks := []*entities.Task{
		{Text: "A", ContentKind: entities.ContentKindMovie},
		{Text: "B", ContentKind: entities.ContentKindMovie},
		{Text: "C", ContentKind: entities.ContentKindMovie},
	}

	start := time.Now()
	if err := enricher.EnrichAll(context.Background(), tasks, nil); err != nil {
		t.Fatalf("EnrichAll failed: %v", err)
	}
	elapsed := time.Since(start)

	// Two pauses between three calls.
	if elapsed < 60*time.Millisecond {
		t.Errorf("expected at least 60ms of pacing, elapsed %v", elapsed)
	}
}

func TestEnrichAll_ProgressCallback(t *testing.T) {
	provider := &mockProvider{result: &entities.EnrichmentCache{}}
	enricher := NewEnricher(provider, 0, 25)

	var seen []string
	tasks := []*entities.Task{{Text: "Dark (2017–2020)", ContentKind: entities.ContentKindTVSeries}}
	err := enricher.EnrichAll(context.Background(), tasks, func(i int, title string) {
		seen = append(seen, title)
	})
	if err != nil {
		t.Fatalf("EnrichAll failed: %v", err)
	}

	if len(seen) != 1 || seen[0] != "Dark" {
		t.Errorf("expected progress with cleaned title, got %v", seen)
	}
}

func TestEnrichAll_CancelledContextStopsBatch(t *testing.T) {
	provider := &mockProvider{result: &entities.EnrichmentCache{}}
	enricher := NewEnricher(provider, 0, 25)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tasks := []*entities.Task{{Text: "A"}, {Text: "B"}}
	if err := enricher.EnrichAll(ctx, tasks, nil); err == nil {
		t.Error("expected a context error")
	}
}

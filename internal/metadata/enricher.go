package metadata

import (
	"context"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goalboard/goalboard/internal/classify"
	"github.com/goalboard/goalboard/internal/entities"
)

// Enricher fetches external metadata for classified tasks. Calls are issued
// strictly sequentially with a fixed pause between them; both the pacing and
// the confidence gate are configuration, not behavior baked into callers.
type Enricher struct {
	provider      Provider
	interval      time.Duration
	minConfidence int
}

func NewEnricher(provider Provider, interval time.Duration, minConfidence int) *Enricher {
	return &Enricher{
		provider:      provider,
		interval:      interval,
		minConfidence: minConfidence,
	}
}

// trailing parenthetical year range, e.g. "Show (2019– )" or "Show (2019-2022)"
var titleYearPattern = regexp.MustCompile(`\s*\(((19|20)\d{2})[^)]*\)\s*$`)

// CleanTitle strips a trailing parenthetical year range from a title and
// returns the year as a disambiguation hint (0 when absent).
func CleanTitle(title string) (string, int) {
	m := titleYearPattern.FindStringSubmatch(title)
	if m == nil {
		return strings.TrimSpace(title), 0
	}
	year, _ := strconv.Atoi(m[1])
	clean := strings.TrimSpace(titleYearPattern.ReplaceAllString(title, ""))
	return clean, year
}

// Eligible reports whether a task qualifies for enrichment: it must have
// passed the classification gate, and shows additionally need at least one
// season marker in their checklists before a lookup is worth anything.
func (e *Enricher) Eligible(task *entities.Task) bool {
	if task.ContentKind == entities.ContentKindUnknown || task.ContentKind == "" {
		return false
	}
	if task.Confidence < e.minConfidence {
		return false
	}
	switch task.ContentKind {
	case entities.ContentKindTVSeries, entities.ContentKindAnime:
		return classify.MaxTrackedSeason(task.Checklists) >= 1
	}
	return true
}

// EligibleTasks filters tasks down to the enrichment-eligible subset,
// preserving order.
func (e *Enricher) EligibleTasks(tasks []*entities.Task) []*entities.Task {
	eligible := make([]*entities.Task, 0, len(tasks))
	for _, task := range tasks {
		if e.Eligible(task) {
			eligible = append(eligible, task)
		}
	}
	return eligible
}

// EnrichTask fetches metadata for one task and caches it with the fetch
// timestamp. The caller decides pacing between tasks.
func (e *Enricher) EnrichTask(ctx context.Context, task *entities.Task) error {
	title, year := CleanTitle(task.Text)
	cache, err := e.provider.FetchMetadata(ctx, title, task.ContentKind, year)
	if err != nil {
		return err
	}
	if cache.FetchedAt.IsZero() {
		cache.FetchedAt = time.Now()
	}
	task.Enrichment = cache
	return nil
}

// EnrichAll enriches tasks sequentially with the configured pause between
// calls after the first. Per-task failures are logged and the loop moves on;
// only context cancellation stops the batch early.
func (e *Enricher) EnrichAll(ctx context.Context, tasks []*entities.Task, onProgress func(index int, title string)) error {
	for i, task := range tasks {
		if i > 0 && e.interval > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(e.interval):
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		title, _ := CleanTitle(task.Text)
		if onProgress != nil {
			onProgress(i, title)
		}

		if err := e.EnrichTask(ctx, task); err != nil {
			log.Printf("[ENRICH] %q: %v", title, err)
			continue
		}
	}
	return nil
}

package metadata

import (
	"strings"
	"time"

	"github.com/goalboard/goalboard/internal/classify"
	"github.com/goalboard/goalboard/internal/entities"
)

// Detection is the derived staleness signal for a tracked show.
type Detection struct {
	HasNewContent bool
	Status        entities.ShowStatus
	UpcomingTitle string
	UpcomingDate  string // ISO date
}

// DetectNewContent compares the checklist-derived season count against the
// enrichment metadata. When the metadata implies more installments than the
// user's checklists reflect, the task is flagged as having new content.
// Returns false, empty when the task has no cached enrichment.
func DetectNewContent(task *entities.Task) Detection {
	meta := task.Enrichment
	if meta == nil {
		return Detection{}
	}

	detection := Detection{
		Status: resolveStatus(meta),
	}

	tracked := classify.MaxTrackedSeason(task.Checklists)
	if meta.TotalSeasons > tracked {
		detection.HasNewContent = true
	}

	if meta.NextEpisodeDate != "" {
		detection.UpcomingTitle = meta.NextEpisodeTitle
		if detection.UpcomingTitle == "" {
			detection.UpcomingTitle = meta.Title
		}
		detection.UpcomingDate = meta.NextEpisodeDate
	}

	return detection
}

// resolveStatus maps the provider's status string onto the internal
// ongoing/ended/upcoming set. Statuses that merely suggest an upcoming show
// are only trusted when the next release date actually lies in the future.
func resolveStatus(meta *entities.EnrichmentCache) entities.ShowStatus {
	switch strings.ToLower(meta.Status) {
	case "running":
		return entities.ShowStatusOngoing
	case "ended":
		return entities.ShowStatusEnded
	}
	if nextReleaseInFuture(meta.NextEpisodeDate) {
		return entities.ShowStatusUpcoming
	}
	return entities.ShowStatusEnded
}

func nextReleaseInFuture(isoDate string) bool {
	if isoDate == "" {
		return false
	}
	date, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return false
	}
	return date.After(time.Now())
}

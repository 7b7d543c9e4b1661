// Package classify assigns a content kind to imported tasks and scans
// checklists for the user's tracking signals.
package classify

import (
	"regexp"
	"strings"

	"github.com/goalboard/goalboard/internal/entities"
)

// Result is a content-kind guess with a 0-100 confidence score.
type Result struct {
	Kind       entities.ContentKind
	Confidence int
}

var yearParenPattern = regexp.MustCompile(`\((19|20)\d{2}[^)]*\)\s*$`)

type signal struct {
	keyword string
	kind    entities.ContentKind
	score   int
}

var textSignals = []signal{
	{"anime", entities.ContentKindAnime, 40},
	{"manga", entities.ContentKindAnime, 20},
	{"season", entities.ContentKindTVSeries, 25},
	{"episode", entities.ContentKindTVSeries, 20},
	{"series", entities.ContentKindTVSeries, 20},
	{"miniseries", entities.ContentKindTVSeries, 25},
	{"movie", entities.ContentKindMovie, 35},
	{"film", entities.ContentKindMovie, 25},
	{"book", entities.ContentKindBook, 30},
	{"novel", entities.ContentKindBook, 30},
	{"author", entities.ContentKindBook, 15},
	{"game", entities.ContentKindGame, 30},
	{"dlc", entities.ContentKindGame, 20},
	{"playthrough", entities.ContentKindGame, 25},
	{"album", entities.ContentKindMusic, 30},
	{"soundtrack", entities.ContentKindMusic, 25},
}

var linkSignals = []signal{
	{"myanimelist.net", entities.ContentKindAnime, 40},
	{"crunchyroll.com", entities.ContentKindAnime, 40},
	{"anilist.co", entities.ContentKindAnime, 35},
	{"tvmaze.com", entities.ContentKindTVSeries, 35},
	{"thetvdb.com", entities.ContentKindTVSeries, 35},
	{"netflix.com", entities.ContentKindTVSeries, 15},
	{"imdb.com", entities.ContentKindTVSeries, 15},
	{"imdb.com", entities.ContentKindMovie, 15},
	{"letterboxd.com", entities.ContentKindMovie, 30},
	{"rottentomatoes.com", entities.ContentKindMovie, 30},
	{"goodreads.com", entities.ContentKindBook, 35},
	{"openlibrary.org", entities.ContentKindBook, 30},
	{"steampowered.com", entities.ContentKindGame, 35},
	{"steamcommunity.com", entities.ContentKindGame, 30},
	{"spotify.com", entities.ContentKindMusic, 35},
	{"bandcamp.com", entities.ContentKindMusic, 35},
	{"soundcloud.com", entities.ContentKindMusic, 30},
}

var checklistSignals = []signal{
	{"season", entities.ContentKindTVSeries, 30},
	{"episode", entities.ContentKindTVSeries, 20},
	{"chapter", entities.ContentKindBook, 20},
	{"volume", entities.ContentKindBook, 15},
}

// kindOrder breaks score ties deterministically.
var kindOrder = []entities.ContentKind{
	entities.ContentKindTVSeries,
	entities.ContentKindMovie,
	entities.ContentKindAnime,
	entities.ContentKindBook,
	entities.ContentKindGame,
	entities.ContentKindMusic,
}

var mediaCategories = map[string]bool{
	"to_watch": true,
	"watching": true,
	"watched":  true,
	"on_hold":  true,
	"dropped":  true,
}

// Content scores a single task's text signals and returns the best-scoring
// content kind. Tasks with no recognizable signals come back unknown with
// zero confidence.
func Content(task *entities.Task) Result {
	scores := make(map[entities.ContentKind]int)

	text := strings.ToLower(task.Text + " " + task.Description)
	for _, s := range textSignals {
		if strings.Contains(text, s.keyword) {
			scores[s.kind] += s.score
		}
	}
	if yearParenPattern.MatchString(task.Text) {
		scores[entities.ContentKindMovie] += 15
	}

	var urls strings.Builder
	for _, link := range task.Links {
		urls.WriteString(strings.ToLower(link.URL))
		urls.WriteString(" ")
	}
	urlText := urls.String()
	for _, s := range linkSignals {
		if strings.Contains(urlText, s.keyword) {
			scores[s.kind] += s.score
		}
	}

	var names strings.Builder
	for _, checklist := range task.Checklists {
		names.WriteString(strings.ToLower(checklist.Name))
		names.WriteString(" ")
	}
	nameText := names.String()
	for _, s := range checklistSignals {
		if strings.Contains(nameText, s.keyword) {
			scores[s.kind] += s.score
		}
	}

	if mediaCategories[task.Category] {
		scores[entities.ContentKindTVSeries] += 10
		scores[entities.ContentKindMovie] += 10
		scores[entities.ContentKindAnime] += 5
	}
	if strings.Contains(task.Category, "read") {
		scores[entities.ContentKindBook] += 20
	}
	if strings.Contains(task.Category, "play") {
		scores[entities.ContentKindGame] += 20
	}

	best := Result{Kind: entities.ContentKindUnknown}
	for _, kind := range kindOrder {
		if scores[kind] > best.Confidence {
			best = Result{Kind: kind, Confidence: scores[kind]}
		}
	}
	if best.Confidence > 100 {
		best.Confidence = 100
	}
	return best
}

package trello

import (
	"strings"

	"github.com/goalboard/goalboard/internal/entities"
)

var (
	animeKeywords = []string{"anime", "manga", "crunchyroll", "myanimelist"}
	movieKeywords = []string{"movie", "movies", "film", "films", "cinema"}
	tvKeywords    = []string{"show", "shows", "series", "season", "episode", "tv"}

	// mediaListKeywords match list names typical for watch boards even when
	// the board name itself gives nothing away.
	mediaListKeywords = []string{"to watch", "watching", "watched", "backlog"}

	goalKeywords = []struct {
		keyword  string
		goalType entities.GoalType
	}{
		{"travel", entities.GoalTypeTravel},
		{"trip", entities.GoalTypeTravel},
		{"learn", entities.GoalTypeLearning},
		{"course", entities.GoalTypeLearning},
		{"study", entities.GoalTypeLearning},
		{"fitness", entities.GoalTypeFitness},
		{"workout", entities.GoalTypeFitness},
		{"gym", entities.GoalTypeFitness},
		{"cook", entities.GoalTypeCooking},
		{"recipe", entities.GoalTypeCooking},
		{"work", entities.GoalTypeWork},
		{"project", entities.GoalTypeWork},
		{"read", entities.GoalTypeReading},
		{"book", entities.GoalTypeReading},
		{"game", entities.GoalTypeGaming},
		{"gaming", entities.GoalTypeGaming},
	}

	// mediaCategorySynonyms remaps list-derived categories of media boards so
	// downstream grouping is stable regardless of the source board's naming.
	mediaCategorySynonyms = map[string]string{
		"want_to_watch":       "to_watch",
		"plan_to_watch":       "to_watch",
		"wishlist":            "to_watch",
		"backlog":             "to_watch",
		"to_watch":            "to_watch",
		"watching":            "watching",
		"currently_watching":  "watching",
		"in_progress":         "watching",
		"watched":             "watched",
		"finished":            "watched",
		"done":                "watched",
		"completed":           "watched",
		"complete":            "watched",
		"paused":              "on_hold",
		"on_hold":             "on_hold",
		"dropped":             "dropped",
		"abandoned":           "dropped",
	}
)

// ClassifyBoard infers the goal and board type from the board name plus all
// card and list names. Media vocabulary wins first; otherwise the first
// single-keyword goal match applies; no match defaults to a generic media
// classification.
func ClassifyBoard(doc *Document) (entities.GoalType, entities.BoardType) {
	var builder strings.Builder
	builder.WriteString(strings.ToLower(doc.Export.Name))
	for _, card := range doc.Export.Cards {
		builder.WriteString(" ")
		builder.WriteString(strings.ToLower(card.Name))
	}
	var listText strings.Builder
	for _, list := range doc.Export.Lists {
		listText.WriteString(" ")
		listText.WriteString(strings.ToLower(list.Name))
	}
	text := builder.String() + listText.String()

	if containsAny(text, animeKeywords) {
		return entities.GoalTypeMedia, entities.BoardTypeAnime
	}
	mediaLists := containsAny(listText.String(), mediaListKeywords)
	if containsAny(text, tvKeywords) || strings.Contains(text, "watch") || mediaLists {
		if containsAny(text, movieKeywords) {
			return entities.GoalTypeMedia, entities.BoardTypeMovies
		}
		if containsAny(text, tvKeywords) {
			return entities.GoalTypeMedia, entities.BoardTypeTVShows
		}
		return entities.GoalTypeMedia, entities.BoardTypeMedia
	}
	if containsAny(text, movieKeywords) {
		return entities.GoalTypeMedia, entities.BoardTypeMovies
	}

	for _, entry := range goalKeywords {
		if strings.Contains(text, entry.keyword) {
			return entry.goalType, entities.BoardTypeStandard
		}
	}

	return entities.GoalTypeMedia, entities.BoardTypeMedia
}

// RemapMediaCategories rewrites task categories of media boards through the
// synonym table. Non-media boards and unrecognized categories are untouched.
func RemapMediaCategories(tasks []entities.Task, boardType entities.BoardType) {
	switch boardType {
	case entities.BoardTypeAnime, entities.BoardTypeMovies, entities.BoardTypeTVShows, entities.BoardTypeMedia:
	default:
		return
	}
	for i := range tasks {
		if mapped, ok := mediaCategorySynonyms[tasks[i].Category]; ok {
			tasks[i].Category = mapped
		}
	}
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

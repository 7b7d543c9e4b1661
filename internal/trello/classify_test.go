package trello

import (
	"testing"

	"github.com/goalboard/goalboard/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classify(t *testing.T, export *Export) (entities.GoalType, entities.BoardType) {
	t.Helper()
	doc, err := NewDocument(export)
	require.NoError(t, err)
	return ClassifyBoard(doc)
}

func TestClassifyBoard_WatchlistIsMedia(t *testing.T) {
	export := &Export{
		Name: "My Watchlist",
		Lists: []List{
			{ID: "l1", Name: "Want to Watch"},
			{ID: "l2", Name: "Watching"},
			{ID: "l3", Name: "Finished"},
		},
		Cards: []Card{},
	}

	goalType, boardType := classify(t, export)

	assert.Equal(t, entities.GoalTypeMedia, goalType)
	assert.Contains(t, []entities.BoardType{
		entities.BoardTypeMedia, entities.BoardTypeTVShows,
	}, boardType)
}

func TestClassifyBoard_AnimeWinsOverGenericTV(t *testing.T) {
	export := &Export{
		Name:  "Anime backlog",
		Lists: []List{{ID: "l1", Name: "Watching"}},
		Cards: []Card{{ID: "c1", Name: "Fullmetal Alchemist", IDList: "l1"}},
	}

	goalType, boardType := classify(t, export)

	assert.Equal(t, entities.GoalTypeMedia, goalType)
	assert.Equal(t, entities.BoardTypeAnime, boardType)
}

func TestClassifyBoard_TVShowVocabulary(t *testing.T) {
	export := &Export{
		Name:  "Series tracker",
		Lists: []List{{ID: "l1", Name: "Backlog"}},
		Cards: []Card{{ID: "c1", Name: "Severance season 2", IDList: "l1"}},
	}

	_, boardType := classify(t, export)
	assert.Equal(t, entities.BoardTypeTVShows, boardType)
}

func TestClassifyBoard_SingleKeywordGoalTypes(t *testing.T) {
	cases := []struct {
		name     string
		expected entities.GoalType
	}{
		{"Travel plans 2026", entities.GoalTypeTravel},
		{"Fitness goals", entities.GoalTypeFitness},
		{"Recipe ideas", entities.GoalTypeCooking},
	}

	for _, tc := range cases {
		export := &Export{Name: tc.name, Lists: []List{}, Cards: []Card{}}
		goalType, boardType := classify(t, export)
		assert.Equal(t, tc.expected, goalType, tc.name)
		assert.Equal(t, entities.BoardTypeStandard, boardType, tc.name)
	}
}

func TestClassifyBoard_NoMatchDefaultsToGenericMedia(t *testing.T) {
	export := &Export{Name: "Stuff", Lists: []List{}, Cards: []Card{}}

	goalType, boardType := classify(t, export)

	assert.Equal(t, entities.GoalTypeMedia, goalType)
	assert.Equal(t, entities.BoardTypeMedia, boardType)
}

func TestRemapMediaCategories(t *testing.T) {
	tasks := []entities.Task{
		{Category: "want_to_watch"},
		{Category: "watching"},
		{Category: "finished"},
		{Category: "done"},
		{Category: "paused"},
		{Category: "weird_custom_list"},
	}

	RemapMediaCategories(tasks, entities.BoardTypeTVShows)

	assert.Equal(t, "to_watch", tasks[0].Category)
	assert.Equal(t, "watching", tasks[1].Category)
	assert.Equal(t, "watched", tasks[2].Category)
	assert.Equal(t, "watched", tasks[3].Category)
	assert.Equal(t, "on_hold", tasks[4].Category)
	assert.Equal(t, "weird_custom_list", tasks[5].Category)
}

func TestRemapMediaCategories_NonMediaBoardUntouched(t *testing.T) {
	tasks := []entities.Task{{Category: "done"}}
	RemapMediaCategories(tasks, entities.BoardTypeStandard)
	assert.Equal(t, "done", tasks[0].Category)
}

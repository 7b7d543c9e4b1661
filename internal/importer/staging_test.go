package importer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalboard/goalboard/internal/entities"
)

type recordingStore struct {
	appended []*entities.Goal
	err      error
}

func (s *recordingStore) AppendGoal(goal *entities.Goal) error {
	if s.err != nil {
		return s.err
	}
	s.appended = append(s.appended, goal)
	return nil
}

func stagedResult(title string) *StagedImportResult {
	return &StagedImportResult{
		GoalTitle: title,
		GoalType:  entities.GoalTypeMedia,
		BoardType: entities.BoardTypeTVShows,
		Tasks:     []entities.Task{{Text: "Dark"}},
	}
}

func TestStagedRegistry_PutAndGet(t *testing.T) {
	registry := NewStagedRegistry()

	id := registry.Put(stagedResult("Watchlist"))
	require.NotEmpty(t, id)

	got, ok := registry.Get(id)
	require.True(t, ok)
	assert.Equal(t, "Watchlist", got.GoalTitle)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, 1, registry.Pending())

	_, ok = registry.Get("missing")
	assert.False(t, ok)
}

func TestStagedRegistry_CommitWritesOnce(t *testing.T) {
	registry := NewStagedRegistry()
	store := &recordingStore{}

	id := registry.Put(stagedResult("Watchlist"))

	goal, err := registry.Commit(id, store)
	require.NoError(t, err)
	assert.Equal(t, "Watchlist", goal.Title)
	assert.Len(t, goal.Tasks, 1)
	assert.Equal(t, 0, registry.Pending())

	// Idempotent: the second commit returns the same goal without writing.
	again, err := registry.Commit(id, store)
	require.NoError(t, err)
	assert.Same(t, goal, again)
	assert.Len(t, store.appended, 1)
}

func TestStagedRegistry_CommitUnknownID(t *testing.T) {
	registry := NewStagedRegistry()

	_, err := registry.Commit("nope", &recordingStore{})
	assert.ErrorIs(t, err, ErrNotStaged)
}

func TestStagedRegistry_CommitKeepsStagedOnStoreError(t *testing.T) {
	registry := NewStagedRegistry()
	store := &recordingStore{err: fmt.Errorf("disk full")}

	id := registry.Put(stagedResult("Watchlist"))
	_, err := registry.Commit(id, store)
	require.Error(t, err)

	// Still pending, so the caller can retry the commit.
	_, ok := registry.Get(id)
	assert.True(t, ok)
}

func TestStagedRegistry_DiscardIsIdempotent(t *testing.T) {
	registry := NewStagedRegistry()
	store := &recordingStore{}

	id := registry.Put(stagedResult("Watchlist"))
	require.NoError(t, registry.Discard(id))
	require.NoError(t, registry.Discard(id))
	require.NoError(t, registry.Discard("never-staged"))

	assert.Equal(t, 0, registry.Pending())
	assert.Empty(t, store.appended)

	_, err := registry.Commit(id, store)
	assert.ErrorIs(t, err, ErrNotStaged)
}

func TestStagedRegistry_CommittedCannotBeDiscarded(t *testing.T) {
	registry := NewStagedRegistry()
	store := &recordingStore{}

	id := registry.Put(stagedResult("Watchlist"))
	_, err := registry.Commit(id, store)
	require.NoError(t, err)

	assert.Error(t, registry.Discard(id))
}

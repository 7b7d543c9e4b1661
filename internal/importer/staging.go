package importer

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"

	"github.com/goalboard/goalboard/internal/entities"
	"github.com/goalboard/goalboard/internal/services"
)

// ErrNotStaged is returned when a commit or lookup references an id that was
// never staged or was already discarded.
var ErrNotStaged = errors.New("no staged import with this id")

// StagedRegistry holds assembled imports awaiting an explicit commit or
// discard. Commit and Discard are idempotent: repeating either for an id that
// already went through it is a no-op.
type StagedRegistry struct {
	mu        sync.Mutex
	staged    map[string]*StagedImportResult
	committed map[string]*entities.Goal
	discarded map[string]bool
}

func NewStagedRegistry() *StagedRegistry {
	return &StagedRegistry{
		staged:    make(map[string]*StagedImportResult),
		committed: make(map[string]*entities.Goal),
		discarded: make(map[string]bool),
	}
}

// Put registers a staged result under a fresh id and returns it.
func (r *StagedRegistry) Put(result *StagedImportResult) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := newStagingID()
	result.ID = id
	r.staged[id] = result
	return id
}

// Get returns the staged result for an id, if still pending.
func (r *StagedRegistry) Get(id string) (*StagedImportResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result, ok := r.staged[id]
	return result, ok
}

// Commit persists the staged import through the store and drops it from the
// registry. Committing an already committed id returns the original goal
// without writing again.
func (r *StagedRegistry) Commit(id string, store services.GoalAppender) (*entities.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if goal, ok := r.committed[id]; ok {
		return goal, nil
	}
	result, ok := r.staged[id]
	if !ok {
		return nil, ErrNotStaged
	}

	goal := result.Goal()
	if err := store.AppendGoal(goal); err != nil {
		return nil, err
	}

	delete(r.staged, id)
	r.committed[id] = goal
	return goal, nil
}

// Discard drops a staged import without persisting anything. Unknown and
// already discarded ids succeed silently; a committed id cannot be discarded.
func (r *StagedRegistry) Discard(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.committed[id]; ok {
		return errors.New("import already committed")
	}
	delete(r.staged, id)
	r.discarded[id] = true
	return nil
}

// Pending returns the number of staged imports awaiting a decision.
func (r *StagedRegistry) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.staged)
}

func newStagingID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}

package http

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/goalboard/goalboard/internal/entities"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memoryGoalStore is an in-memory GoalStore for controller tests.
type memoryGoalStore struct {
	goals  map[uint]*entities.Goal
	nextID uint
	err    error
}

func newMemoryGoalStore() *memoryGoalStore {
	return &memoryGoalStore{goals: make(map[uint]*entities.Goal), nextID: 1}
}

func (s *memoryGoalStore) AppendGoal(goal *entities.Goal) error {
	if s.err != nil {
		return s.err
	}
	goal.ID = s.nextID
	s.nextID++
	s.goals[goal.ID] = goal
	return nil
}

func (s *memoryGoalStore) GetAllGoals() ([]entities.Goal, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]entities.Goal, 0, len(s.goals))
	for _, goal := range s.goals {
		out = append(out, *goal)
	}
	return out, nil
}

func (s *memoryGoalStore) GetGoalByID(id uint) (*entities.Goal, error) {
	goal, ok := s.goals[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return goal, nil
}

func (s *memoryGoalStore) DeleteGoal(id uint) error {
	if _, ok := s.goals[id]; !ok {
		return errors.New("goal not found")
	}
	delete(s.goals, id)
	return nil
}

func (s *memoryGoalStore) GetStats() (int64, int64, error) {
	var tasks int64
	for _, goal := range s.goals {
		tasks += int64(len(goal.Tasks))
	}
	return int64(len(s.goals)), tasks, nil
}

// memoryEventStore is an in-memory EventStore for controller tests.
type memoryEventStore struct {
	events []entities.CalendarEvent
	err    error
}

func (s *memoryEventStore) AppendEvents(events []entities.CalendarEvent) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	inserted := 0
	for _, event := range events {
		if event.ExternalID != "" && s.hasUID(event.ExternalID) {
			continue
		}
		s.events = append(s.events, event)
		inserted++
	}
	return inserted, nil
}

func (s *memoryEventStore) hasUID(uid string) bool {
	for _, event := range s.events {
		if event.ExternalID == uid {
			return true
		}
	}
	return false
}

func (s *memoryEventStore) GetAllEvents() ([]entities.CalendarEvent, error) {
	return s.events, s.err
}

func (s *memoryEventStore) GetEventsBetween(from, to time.Time) ([]entities.CalendarEvent, error) {
	var out []entities.CalendarEvent
	for _, event := range s.events {
		if !event.StartsAt.Before(from) && event.StartsAt.Before(to) {
			out = append(out, event)
		}
	}
	return out, s.err
}

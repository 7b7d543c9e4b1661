package services

import "github.com/goalboard/goalboard/internal/entities"

// GoalAppender persists a confirmed board import. The import pipeline itself
// never writes; the caller commits through this interface.
type GoalAppender interface {
	AppendGoal(goal *entities.Goal) error
}

// GoalReader provides read-only access to committed goals.
type GoalReader interface {
	GetAllGoals() ([]entities.Goal, error)
	GetGoalByID(id uint) (*entities.Goal, error)
}

// GoalStore combines read and append access for callers that need both.
type GoalStore interface {
	GoalAppender
	GoalReader
}

// EventAppender persists confirmed calendar imports.
type EventAppender interface {
	AppendEvents(events []entities.CalendarEvent) (int, error)
}

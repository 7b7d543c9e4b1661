package http

import (
	"time"

	"github.com/goalboard/goalboard/internal/entities"
)

// GoalStore covers the goal operations the HTTP layer needs.
type GoalStore interface {
	AppendGoal(goal *entities.Goal) error
	GetAllGoals() ([]entities.Goal, error)
	GetGoalByID(id uint) (*entities.Goal, error)
	DeleteGoal(id uint) error
	GetStats() (totalGoals int64, totalTasks int64, err error)
}

// EventStore covers the calendar event operations the HTTP layer needs.
type EventStore interface {
	AppendEvents(events []entities.CalendarEvent) (int, error)
	GetAllEvents() ([]entities.CalendarEvent, error)
	GetEventsBetween(from, to time.Time) ([]entities.CalendarEvent, error)
}

package entities

import "time"

type EventSource string

const (
	EventSourceImported EventSource = "imported"
	EventSourceManual   EventSource = "manual"
)

// CalendarEvent is a normalized event parsed from an interchange calendar
// file or entered by hand. An event is only materialized when both a title
// and a start instant were resolved.
type CalendarEvent struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	ExternalID  string      `gorm:"index;size:256" json:"external_id,omitempty"` // source UID
	Title       string      `gorm:"size:512" json:"title"`
	Description string      `gorm:"type:text" json:"description,omitempty"`
	Location    string      `gorm:"size:512" json:"location,omitempty"`
	StartsAt    time.Time   `gorm:"index" json:"starts_at"`
	EndsAt      *time.Time  `json:"ends_at,omitempty"`
	AllDay      bool        `gorm:"default:false" json:"all_day"`
	Source      EventSource `gorm:"size:20;default:'manual'" json:"source"`
	SourceFile  string      `gorm:"size:512" json:"source_file,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

func (CalendarEvent) TableName() string {
	return "calendar_events"
}

// Package events provides database operations for calendar events.
//
//	var _ services.EventAppender = (*Repository)(nil)
package events

import (
	"time"

	"gorm.io/gorm"

	"github.com/goalboard/goalboard/internal/entities"
)

// Repository handles calendar event database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new events repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AppendEvents inserts imported events, skipping ones whose source UID is
// already present. Events without a UID are always inserted. Returns the
// number of events actually written.
func (r *Repository) AppendEvents(events []entities.CalendarEvent) (int, error) {
	inserted := 0
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for i := range events {
			event := events[i]
			if event.ExternalID != "" {
				var count int64
				if err := tx.Model(&entities.CalendarEvent{}).
					Where("external_id = ?", event.ExternalID).
					Count(&count).Error; err != nil {
					return err
				}
				if count > 0 {
					continue
				}
			}
			if err := tx.Create(&event).Error; err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// GetAllEvents retrieves all events ordered by start.
func (r *Repository) GetAllEvents() ([]entities.CalendarEvent, error) {
	var events []entities.CalendarEvent
	err := r.db.Order("starts_at ASC").Find(&events).Error
	return events, err
}

// GetEventsBetween retrieves events starting within [from, to).
func (r *Repository) GetEventsBetween(from, to time.Time) ([]entities.CalendarEvent, error) {
	var events []entities.CalendarEvent
	err := r.db.Where("starts_at >= ? AND starts_at < ?", from, to).
		Order("starts_at ASC").Find(&events).Error
	return events, err
}

// DeleteEventsFromFile removes all events imported from one source file.
// Re-importing a corrected file starts from a clean slate.
func (r *Repository) DeleteEventsFromFile(sourceFile string) (int64, error) {
	result := r.db.Where("source_file = ? AND source = ?", sourceFile, entities.EventSourceImported).
		Delete(&entities.CalendarEvent{})
	return result.RowsAffected, result.Error
}

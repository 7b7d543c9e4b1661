package events

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/goalboard/goalboard/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_events_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.CalendarEvent{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_AppendEvents_SkipsDuplicateUIDs(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	start := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	batch := []entities.CalendarEvent{
		{ExternalID: "uid-1", Title: "Dentist", StartsAt: start, Source: entities.EventSourceImported},
		{ExternalID: "uid-2", Title: "Standup", StartsAt: start.Add(time.Hour), Source: entities.EventSourceImported},
	}

	inserted, err := repo.AppendEvents(batch)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	// Re-importing the same file adds nothing.
	inserted, err = repo.AppendEvents(batch)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)

	all, err := repo.GetAllEvents()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRepository_AppendEvents_NoUIDAlwaysInserts(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	event := entities.CalendarEvent{Title: "Untitled source", StartsAt: time.Now()}

	inserted, err := repo.AppendEvents([]entities.CalendarEvent{event})
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	inserted, err = repo.AppendEvents([]entities.CalendarEvent{event})
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
}

func TestRepository_GetEventsBetween(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := repo.AppendEvents([]entities.CalendarEvent{
		{ExternalID: "a", Title: "Before", StartsAt: base.AddDate(0, 0, -1)},
		{ExternalID: "b", Title: "Inside", StartsAt: base.AddDate(0, 0, 5)},
		{ExternalID: "c", Title: "Boundary", StartsAt: base.AddDate(0, 0, 31)},
	})
	require.NoError(t, err)

	window, err := repo.GetEventsBetween(base, base.AddDate(0, 0, 31))
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, "Inside", window[0].Title)
}

func TestRepository_DeleteEventsFromFile(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.AppendEvents([]entities.CalendarEvent{
		{ExternalID: "a", Title: "Keep", StartsAt: time.Now(), Source: entities.EventSourceImported, SourceFile: "other.ics"},
		{ExternalID: "b", Title: "Drop", StartsAt: time.Now(), Source: entities.EventSourceImported, SourceFile: "bad.ics"},
		{Title: "Manual", StartsAt: time.Now(), Source: entities.EventSourceManual, SourceFile: "bad.ics"},
	})
	require.NoError(t, err)

	removed, err := repo.DeleteEventsFromFile("bad.ics")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	all, err := repo.GetAllEvents()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalboard/goalboard/internal/entities"
)

func parseICS(t *testing.T, data string) ([]entities.CalendarEvent, ParseResult) {
	t.Helper()
	events, result, err := NewICSParser().Parse(strings.NewReader(data), "test.ics")
	require.NoError(t, err)
	return events, result
}

func TestParse_TimedEvent(t *testing.T) {
	events, result := parseICS(t, strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"BEGIN:VEVENT",
		"UID:abc-123@example.com",
		"SUMMARY:Dentist",
		"DESCRIPTION:Bring the referral",
		"LOCATION:12 Main St",
		"DTSTART:20240315T143000",
		"DTEND:20240315T153000",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n"))

	require.Equal(t, 1, result.EventsParsed)
	event := events[0]
	assert.Equal(t, "abc-123@example.com", event.ExternalID)
	assert.Equal(t, "Dentist", event.Title)
	assert.Equal(t, "Bring the referral", event.Description)
	assert.Equal(t, "12 Main St", event.Location)
	assert.Equal(t, entities.EventSourceImported, event.Source)
	assert.Equal(t, "test.ics", event.SourceFile)
	assert.False(t, event.AllDay)

	want := time.Date(2024, 3, 15, 14, 30, 0, 0, time.Local)
	assert.True(t, event.StartsAt.Equal(want))
	require.NotNil(t, event.EndsAt)
	assert.True(t, event.EndsAt.Equal(want.Add(time.Hour)))
}

func TestParse_AllDayEventWithoutEnd(t *testing.T) {
	events, _ := parseICS(t, strings.Join([]string{
		"BEGIN:VEVENT",
		"SUMMARY:New Year",
		"DTSTART;VALUE=DATE:20240101",
		"END:VEVENT",
	}, "\n"))

	require.Len(t, events, 1)
	event := events[0]
	assert.True(t, event.AllDay)
	assert.Nil(t, event.EndsAt)
	assert.True(t, event.StartsAt.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)))
}

func TestParse_BareDateValueImpliesAllDay(t *testing.T) {
	events, _ := parseICS(t, strings.Join([]string{
		"BEGIN:VEVENT",
		"SUMMARY:Holiday",
		"DTSTART:20240704",
		"END:VEVENT",
	}, "\n"))

	require.Len(t, events, 1)
	assert.True(t, events[0].AllDay)
	assert.True(t, events[0].StartsAt.Equal(time.Date(2024, 7, 4, 0, 0, 0, 0, time.Local)))
}

func TestParse_UTCTimestampConvertedToLocal(t *testing.T) {
	events, _ := parseICS(t, strings.Join([]string{
		"BEGIN:VEVENT",
		"SUMMARY:Standup",
		"DTSTART:20240315T090000Z",
		"END:VEVENT",
	}, "\n"))

	require.Len(t, events, 1)
	want := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	assert.True(t, events[0].StartsAt.Equal(want))
	assert.Equal(t, time.Local.String(), events[0].StartsAt.Location().String())
}

func TestParse_FoldedSummaryLine(t *testing.T) {
	events, _ := parseICS(t, strings.Join([]string{
		"BEGIN:VEVENT",
		"SUMMARY:A very long meeting title that the",
		"  exporter folded across lines",
		"DTSTART:20240315T100000",
		"END:VEVENT",
	}, "\r\n"))

	require.Len(t, events, 1)
	assert.Equal(t, "A very long meeting title that the exporter folded across lines", events[0].Title)
}

func TestParse_EscapedText(t *testing.T) {
	events, _ := parseICS(t, strings.Join([]string{
		"BEGIN:VEVENT",
		`SUMMARY:Dinner\, then a movie`,
		`DESCRIPTION:Line one\nLine two\; done`,
		"DTSTART:20240315T190000",
		"END:VEVENT",
	}, "\n"))

	require.Len(t, events, 1)
	assert.Equal(t, "Dinner, then a movie", events[0].Title)
	assert.Equal(t, "Line one\nLine two; done", events[0].Description)
}

func TestParse_MalformedBlocksAreSkipped(t *testing.T) {
	events, result := parseICS(t, strings.Join([]string{
		"BEGIN:VEVENT",
		"DTSTART:20240315T100000",
		"END:VEVENT", // no summary
		"BEGIN:VEVENT",
		"SUMMARY:No start",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"SUMMARY:Bad start",
		"DTSTART:not-a-date-at-all",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"SUMMARY:Good",
		"DTSTART:20240315T100000",
		"END:VEVENT",
	}, "\n"))

	assert.Equal(t, 1, result.EventsParsed)
	assert.Equal(t, 3, result.EventsSkipped)
	require.Len(t, events, 1)
	assert.Equal(t, "Good", events[0].Title)
}

func TestParse_BadEndDateDegradesToOpenEnded(t *testing.T) {
	events, _ := parseICS(t, strings.Join([]string{
		"BEGIN:VEVENT",
		"SUMMARY:Party",
		"DTSTART:20240315T200000",
		"DTEND:garbage-value",
		"END:VEVENT",
	}, "\n"))

	require.Len(t, events, 1)
	assert.Nil(t, events[0].EndsAt)
}

func TestParse_UnterminatedBlockCountsAsSkipped(t *testing.T) {
	events, result := parseICS(t, strings.Join([]string{
		"BEGIN:VEVENT",
		"SUMMARY:Cut off",
		"DTSTART:20240315T100000",
	}, "\n"))

	assert.Empty(t, events)
	assert.Equal(t, 1, result.EventsSkipped)
}

func TestParse_LinesOutsideEventsIgnored(t *testing.T) {
	events, result := parseICS(t, strings.Join([]string{
		"BEGIN:VCALENDAR",
		"PRODID:-//Example//EN",
		"not a property line at all",
		"END:VCALENDAR",
	}, "\n"))

	assert.Empty(t, events)
	assert.Equal(t, ParseResult{}, result)
}

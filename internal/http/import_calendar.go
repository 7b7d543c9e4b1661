package http

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/goalboard/goalboard/internal/calendar"
)

// CalendarImportResponse is the response for a calendar import.
type CalendarImportResponse struct {
	EventsParsed  int `json:"events_parsed"`
	EventsSkipped int `json:"events_skipped"`
	EventsStored  int `json:"events_stored"`
}

// CalendarImportController handles .ics calendar imports.
type CalendarImportController struct {
	parser *calendar.ICSParser
	store  EventStore
}

// NewCalendarImportController creates a new CalendarImportController.
func NewCalendarImportController(store EventStore) *CalendarImportController {
	return &CalendarImportController{
		parser: calendar.NewICSParser(),
		store:  store,
	}
}

// Import handles POST /api/import/calendar. Unlike board imports there is no
// staging step; parsed events are written directly, deduplicated by UID.
func (controller *CalendarImportController) Import(c *gin.Context) {
	sourceFile := "upload.ics"
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if file, err := c.FormFile("file"); err == nil {
			sourceFile = file.Filename
		}
	}

	data, err := readImportPayload(c)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(data) == 0 {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "no calendar data provided"})
		return
	}

	events, result, err := controller.parser.Parse(bytes.NewReader(data), sourceFile)
	if err != nil {
		c.IndentedJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	stored := 0
	if len(events) > 0 {
		stored, err = controller.store.AppendEvents(events)
		if err != nil {
			c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.IndentedJSON(http.StatusOK, CalendarImportResponse{
		EventsParsed:  result.EventsParsed,
		EventsSkipped: result.EventsSkipped,
		EventsStored:  stored,
	})
}

// ListEvents handles GET /api/events with an optional from/to window.
func (controller *CalendarImportController) ListEvents(c *gin.Context) {
	from, fromOK := parseTimeQuery(c, "from")
	to, toOK := parseTimeQuery(c, "to")

	if fromOK && toOK {
		events, err := controller.store.GetEventsBetween(from, to)
		if err != nil {
			c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.IndentedJSON(http.StatusOK, events)
		return
	}

	events, err := controller.store.GetAllEvents()
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, events)
}

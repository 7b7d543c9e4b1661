// Package calendar parses iCalendar (.ics) exports into calendar events.
package calendar

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/goalboard/goalboard/internal/entities"
)

type ICSParser struct{}

func NewICSParser() *ICSParser {
	return &ICSParser{}
}

// ParseResult contains the results of parsing a calendar file
type ParseResult struct {
	EventsParsed  int `json:"events_parsed"`
	EventsSkipped int `json:"events_skipped"`
}

// property is one content line after unfolding, split into name, parameters
// and value.
type property struct {
	name   string
	params map[string]string
	value  string
}

// ParseFile reads a single .ics file and converts it to calendar events.
func (parser *ICSParser) ParseFile(filePath string) ([]entities.CalendarEvent, ParseResult, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, ParseResult{}, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	return parser.Parse(file, filePath)
}

// Parse reads iCalendar data and returns the events it could make sense of.
// Parsing is lenient: blocks missing a title or start, and values that fail
// to parse, are skipped rather than failing the whole file.
func (parser *ICSParser) Parse(r io.Reader, sourceFile string) ([]entities.CalendarEvent, ParseResult, error) {
	lines, err := unfoldLines(r)
	if err != nil {
		return nil, ParseResult{}, fmt.Errorf("failed to read calendar data: %w", err)
	}

	var events []entities.CalendarEvent
	result := ParseResult{}

	var block []property
	inEvent := false
	for _, line := range lines {
		prop, ok := parseProperty(line)
		if !ok {
			continue
		}

		switch {
		case prop.name == "BEGIN" && strings.EqualFold(prop.value, "VEVENT"):
			inEvent = true
			block = block[:0]
		case prop.name == "END" && strings.EqualFold(prop.value, "VEVENT"):
			if !inEvent {
				continue
			}
			inEvent = false
			event, ok := buildEvent(block, sourceFile)
			if !ok {
				result.EventsSkipped++
				continue
			}
			events = append(events, event)
			result.EventsParsed++
		case inEvent:
			block = append(block, prop)
		}
	}

	if inEvent {
		// Truncated file: the open block never saw its END line.
		result.EventsSkipped++
		log.Printf("Skipping unterminated event block in %s", sourceFile)
	}

	return events, result, nil
}

// unfoldLines reads content lines, joining folded continuations. A line
// starting with a space or tab continues the previous line with the leading
// character removed.
func unfoldLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if len(line) > 0 && (line[0] == ' ' || line[0] == '\t') && len(lines) > 0 {
			lines[len(lines)-1] += line[1:]
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

// parseProperty splits "NAME;PARAM=VALUE;...:value" into its parts. Property
// names and parameter keys are case-insensitive and normalized to upper case.
func parseProperty(line string) (property, bool) {
	colon := strings.Index(line, ":")
	if colon < 0 {
		return property{}, false
	}

	nameAndParams := strings.Split(line[:colon], ";")
	prop := property{
		name:   strings.ToUpper(strings.TrimSpace(nameAndParams[0])),
		params: make(map[string]string),
		value:  line[colon+1:],
	}
	if prop.name == "" {
		return property{}, false
	}

	for _, param := range nameAndParams[1:] {
		kv := strings.SplitN(param, "=", 2)
		if len(kv) != 2 {
			continue
		}
		prop.params[strings.ToUpper(strings.TrimSpace(kv[0]))] = strings.TrimSpace(kv[1])
	}
	return prop, true
}

func buildEvent(block []property, sourceFile string) (entities.CalendarEvent, bool) {
	var event entities.CalendarEvent
	event.Source = entities.EventSourceImported
	event.SourceFile = sourceFile

	for _, prop := range block {
		switch prop.name {
		case "UID":
			event.ExternalID = prop.value
		case "SUMMARY":
			event.Title = unescapeText(prop.value)
		case "DESCRIPTION":
			event.Description = unescapeText(prop.value)
		case "LOCATION":
			event.Location = unescapeText(prop.value)
		case "DTSTART":
			start, allDay, err := parseDateTime(prop)
			if err != nil {
				log.Printf("Skipping event with bad DTSTART %q: %v", prop.value, err)
				return entities.CalendarEvent{}, false
			}
			event.StartsAt = start
			event.AllDay = allDay
		case "DTEND":
			end, _, err := parseDateTime(prop)
			if err != nil {
				// A bad end date degrades to an open-ended event.
				continue
			}
			event.EndsAt = &end
		}
	}

	if event.Title == "" || event.StartsAt.IsZero() {
		return entities.CalendarEvent{}, false
	}
	return event, true
}

// parseDateTime handles the two shapes a DTSTART/DTEND value takes: a bare
// date (all-day, local midnight) and a timestamp with an optional trailing Z
// for UTC. UTC instants are converted to local time.
func parseDateTime(prop property) (time.Time, bool, error) {
	value := strings.TrimSpace(prop.value)

	if prop.params["VALUE"] == "DATE" || len(value) == 8 {
		date, err := time.ParseInLocation("20060102", value, time.Local)
		if err != nil {
			return time.Time{}, false, err
		}
		return date, true, nil
	}

	if strings.HasSuffix(value, "Z") {
		instant, err := time.Parse("20060102T150405Z", value)
		if err != nil {
			return time.Time{}, false, err
		}
		return instant.Local(), false, nil
	}

	instant, err := time.ParseInLocation("20060102T150405", value, time.Local)
	if err != nil {
		return time.Time{}, false, err
	}
	return instant, false, nil
}

// unescapeText reverses iCalendar text escaping.
func unescapeText(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		if value[i] != '\\' || i+1 == len(value) {
			b.WriteByte(value[i])
			continue
		}
		i++
		switch value[i] {
		case 'n', 'N':
			b.WriteByte('\n')
		case ',', ';', '\\':
			b.WriteByte(value[i])
		default:
			b.WriteByte('\\')
			b.WriteByte(value[i])
		}
	}
	return b.String()
}

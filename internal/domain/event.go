package domain

import (
	"strings"
	"time"
)

// TimestampLayout is the text format of the logs.timestamp column.
const TimestampLayout = "2006-01-02 15:04:05"

// State is the on/off state reported for a tool.
type State string

const (
	StateOn  State = "ON"
	StateOff State = "OFF"
)

// Valid reports whether s is ON or OFF.
func (s State) Valid() bool {
	return s == StateOn || s == StateOff
}

// Level maps the state onto a 0/1 axis.
func (s State) Level() float64 {
	if s == StateOn {
		return 1
	}
	return 0
}

// ParseState normalizes raw state text. Surrounding whitespace is ignored,
// case is not: "off" and "PAUSED" are both noise.
func ParseState(text string) (State, bool) {
	s := State(strings.TrimSpace(text))
	if !s.Valid() {
		return "", false
	}
	return s, true
}

// Event is a single timestamped state observation.
type Event struct {
	Time  time.Time
	State State
}

// LogRow is a row of the logs table as written by the sensor logger.
type LogRow struct {
	ID        int64  `json:"id"`
	Timestamp string `json:"timestamp"`
	Topic     string `json:"topic,omitempty"`
	Tool      string `json:"tool"`
	State     string `json:"state"`
}

// ParseTimestamp parses a logs.timestamp value in the local time zone.
func ParseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, strings.TrimSpace(s), time.Local)
}

// EventsFromRows converts stored rows into events, preserving order.
// A malformed timestamp fails the whole conversion with a *ParseError, even
// on a noise row. Rows carrying a state other than ON or OFF are then dropped.
func EventsFromRows(rows []LogRow) ([]Event, error) {
	events := make([]Event, 0, len(rows))
	for _, row := range rows {
		t, err := ParseTimestamp(row.Timestamp)
		if err != nil {
			return nil, &ParseError{RowID: row.ID, Value: row.Timestamp, Err: err}
		}
		state, ok := ParseState(row.State)
		if !ok {
			continue
		}
		events = append(events, Event{Time: t, State: state})
	}
	return events, nil
}

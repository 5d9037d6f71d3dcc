// Package eventlog records conversion log events, in memory for a single
// run or as a JSON-lines file across runs.
package eventlog

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Level is the severity of an event.
type Level string

const (
	LevelDebug    Level = "debug"
	LevelInfo     Level = "info"
	LevelWarning  Level = "warning"
	LevelError    Level = "error"
	LevelCritical Level = "critical"
)

var levelRank = map[Level]int{
	LevelDebug:    0,
	LevelInfo:     1,
	LevelWarning:  2,
	LevelError:    3,
	LevelCritical: 4,
}

// AtLeast reports whether l is as severe as min.
func (l Level) AtLeast(min Level) bool {
	return levelRank[l] >= levelRank[min]
}

// LevelFromLogrus maps a logrus level. Fatal and panic are "critical";
// trace folds into debug.
func LevelFromLogrus(l logrus.Level) Level {
	switch l {
	case logrus.PanicLevel, logrus.FatalLevel:
		return LevelCritical
	case logrus.ErrorLevel:
		return LevelError
	case logrus.WarnLevel:
		return LevelWarning
	case logrus.InfoLevel:
		return LevelInfo
	}
	return LevelDebug
}

// Event is one log message emitted during a conversion.
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Level     Level     `json:"level"`
	File      string    `json:"file,omitempty"`
	Message   string    `json:"message"`
	RunID     string    `json:"run_id,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// NewEvent creates an event stamped with the current time.
func NewEvent(level Level, file, message string) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Level:     level,
		File:      file,
		Message:   message,
	}
}

// WithRun sets the conversion run the event belongs to.
func (e *Event) WithRun(runID string) *Event {
	e.RunID = runID
	return e
}

// WithError attaches an error description.
func (e *Event) WithError(err error) *Event {
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// Filter defines criteria for querying events
type Filter struct {
	Level     Level // minimum level
	File      string
	RunID     string
	StartTime time.Time
	EndTime   time.Time
	Limit     int
	Offset    int
}

// Matches reports whether e satisfies the filter, ignoring Limit and Offset.
func (f Filter) Matches(e *Event) bool {
	if f.Level != "" && !e.Level.AtLeast(f.Level) {
		return false
	}
	if f.File != "" && e.File != f.File {
		return false
	}
	if f.RunID != "" && e.RunID != f.RunID {
		return false
	}
	if !f.StartTime.IsZero() && e.Timestamp.Before(f.StartTime) {
		return false
	}
	if !f.EndTime.IsZero() && e.Timestamp.After(f.EndTime) {
		return false
	}
	return true
}

// page applies Offset and Limit.
func (f Filter) page(events []*Event) []*Event {
	if f.Offset > 0 {
		if f.Offset >= len(events) {
			return []*Event{}
		}
		events = events[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(events) {
		events = events[:f.Limit]
	}
	return events
}

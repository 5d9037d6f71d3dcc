package eventlog

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/newtron-network/mistconv/pkg/util"
)

// Hook is a logrus hook forwarding entries to one or more Loggers. The
// "file" field of an entry becomes the event file.
type Hook struct {
	runID   string
	min     Level
	loggers []Logger
}

// NewHook returns a hook recording entries of level min and above.
func NewHook(runID string, min Level, loggers ...Logger) *Hook {
	return &Hook{runID: runID, min: min, loggers: loggers}
}

// Levels implements logrus.Hook.
func (h *Hook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook.
func (h *Hook) Fire(entry *logrus.Entry) error {
	level := LevelFromLogrus(entry.Level)
	if h.min != "" && !level.AtLeast(h.min) {
		return nil
	}

	file, _ := entry.Data[util.FileField].(string)
	e := NewEvent(level, file, entry.Message).WithRun(h.runID)
	e.Timestamp = entry.Time
	if err, ok := entry.Data[logrus.ErrorKey].(error); ok {
		e.WithError(err)
	}

	var errs []error
	for _, l := range h.loggers {
		if err := l.Log(e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

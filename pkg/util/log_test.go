package util

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

// saveLoggerState saves the current logger state for restoration
func saveLoggerState() (io.Writer, logrus.Level, logrus.Formatter) {
	return Logger.Out, Logger.Level, Logger.Formatter
}

// restoreLoggerState restores the logger to its previous state
func restoreLoggerState(out io.Writer, level logrus.Level, formatter logrus.Formatter) {
	Logger.SetOutput(out)
	Logger.SetLevel(level)
	Logger.SetFormatter(formatter)
}

func TestSetLogLevel(t *testing.T) {
	out, level, formatter := saveLoggerState()
	defer restoreLoggerState(out, level, formatter)

	tests := []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"info", false},
		{"warning", false},
		{"error", false},
		{"invalid", true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			err := SetLogLevel(tt.level)
			if (err != nil) != tt.wantErr {
				t.Errorf("SetLogLevel(%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
			}
		})
	}
}

func TestWithFile(t *testing.T) {
	out, level, formatter := saveLoggerState()
	defer restoreLoggerState(out, level, formatter)

	var buf bytes.Buffer
	SetLogOutput(&buf)
	SetJSONFormat()

	WithFile("access1.txt").Info("parsed")

	if !strings.Contains(buf.String(), `"file":"access1.txt"`) {
		t.Errorf("expected file field in output: %s", buf.String())
	}
}

func TestWithHost(t *testing.T) {
	out, level, formatter := saveLoggerState()
	defer restoreLoggerState(out, level, formatter)

	var buf bytes.Buffer
	SetLogOutput(&buf)
	SetJSONFormat()

	WithHost("10.0.0.1").Warn("unreachable")

	if !strings.Contains(buf.String(), `"host":"10.0.0.1"`) {
		t.Errorf("expected host field in output: %s", buf.String())
	}
}

func TestFileEntryEmptyFile(t *testing.T) {
	entry := FileEntry(nil, "")
	if _, ok := entry.Data[FileField]; ok {
		t.Error("empty file name should not set the file field")
	}
}

func TestNewLoggerIsolatedHooks(t *testing.T) {
	l := NewLogger()
	l.AddHook(&countingHook{})
	if len(Logger.Hooks) != 0 {
		t.Error("hooks on a derived logger must not reach the global logger")
	}
}

type countingHook struct{ n int }

func (h *countingHook) Levels() []logrus.Level { return logrus.AllLevels }
func (h *countingHook) Fire(*logrus.Entry) error {
	h.n++
	return nil
}

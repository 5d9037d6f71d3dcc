package util

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the global logger instance
var Logger = logrus.New()

func init() {
	Logger.SetOutput(os.Stderr)
	Logger.SetLevel(logrus.InfoLevel)
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}

// FileField is the log field carrying the name of the configuration file an
// event relates to.
const FileField = "file"

// SetLogLevel sets the logging level
func SetLogLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	Logger.SetLevel(lvl)
	return nil
}

// SetLogOutput sets the log output destination
func SetLogOutput(w io.Writer) {
	Logger.SetOutput(w)
}

// SetJSONFormat enables JSON log format
func SetJSONFormat() {
	Logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
	})
}

// NewLogger returns a logger sharing the global logger's output, level and
// formatter. Hooks added to it do not leak into the global logger.
func NewLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(Logger.Out)
	l.SetLevel(Logger.GetLevel())
	l.SetFormatter(Logger.Formatter)
	return l
}

// WithFile returns a logger with configuration file context
func WithFile(file string) *logrus.Entry {
	return FileEntry(Logger, file)
}

// WithHost returns a logger with switch host context
func WithHost(host string) *logrus.Entry {
	return Logger.WithField("host", host)
}

// FileEntry attaches file context to l. An empty file name yields an entry
// without the field.
func FileEntry(l *logrus.Logger, file string) *logrus.Entry {
	if l == nil {
		l = Logger
	}
	if file == "" {
		return logrus.NewEntry(l)
	}
	return l.WithField(FileField, file)
}

// Debugf logs a formatted debug message
func Debugf(format string, args ...interface{}) {
	Logger.Debugf(format, args...)
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	Logger.Warnf(format, args...)
}

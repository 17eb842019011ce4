package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// TimeFormat is the timestamp layout on every line.
const TimeFormat = "2006-01-02 15:04:05.000"

// New returns a leveled text logger writing to w.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      TimeFormat,
		Level:           level,
	})
}

// ParseLevel maps a flag value ("debug", "info", "warn", "error") to a level.
func ParseLevel(s string) (log.Level, error) {
	lvl, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// Since formats an elapsed duration the way request timings are logged.
func Since(start time.Time) string {
	return fmt.Sprintf("%.2fs", time.Since(start).Seconds())
}

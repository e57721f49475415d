package freelook3d

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger creates a timestamped logger writing to w at the given level.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "freelook3d",
	})
}

// discardLogger is used when callers pass a nil logger.
func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

func orDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return discardLogger()
	}
	return l
}

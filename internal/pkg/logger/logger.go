package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"collab-match/internal/config"
)

// New returns the process logger configured from cfg.
func New(cfg config.LogConfig) *log.Logger {
	return NewWithWriter(os.Stderr, cfg)
}

func NewWithWriter(w io.Writer, cfg config.LogConfig) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})

	if lvl, err := log.ParseLevel(strings.TrimSpace(cfg.Level)); err == nil {
		l.SetLevel(lvl)
	}

	switch strings.ToLower(cfg.Format) {
	case "json":
		l.SetFormatter(log.JSONFormatter)
	case "logfmt":
		l.SetFormatter(log.LogfmtFormatter)
	default:
		l.SetFormatter(log.TextFormatter)
	}

	return l
}

// Discard is used by tests and by components constructed without a logger.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

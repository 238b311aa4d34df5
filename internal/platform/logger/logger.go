package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	dErrors "govledger/pkg/domain-errors"
)

// New returns a structured logger writing to stderr. format is "text" or
// "json"; level is one of debug, info, warn, error.
func New(level, format string) (*slog.Logger, error) {
	return NewWithWriter(os.Stderr, level, format)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl := slog.LevelInfo
	if l := strings.TrimSpace(level); l != "" {
		if err := lvl.UnmarshalText([]byte(l)); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInvalidConfig, "log level")
		}
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, dErrors.Newf(dErrors.CodeInvalidConfig, "unknown log format %q", format)
	}
}

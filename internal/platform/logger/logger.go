package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	dErrors "github.com/williandearaujo/Gestao-OL-360-sub001/pkg/domain-errors"
)

// New returns a structured logger writing to w at level ("debug", "info",
// "warn" or "error") in format ("json" or "text"). A nil w means stderr.
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid log level: "+level)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid log format: "+format)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

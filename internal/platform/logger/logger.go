package logger

import (
	"log/slog"
	"os"
)

// New returns the root structured logger. Services receive it via
// constructor options so tests can pass a silent logger instead.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

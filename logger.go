package reqbuild

import (
	"io"
	"log/slog"
)

// newLogger returns a text logger writing to w. Debug records are emitted
// only when debug is set.
func newLogger(debug bool, w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

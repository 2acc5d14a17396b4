package respbuild

import (
	"io"
	"log/slog"
	"os"
)

func NewLogger(o Option) *slog.Logger {
	return newLogger(o, os.Stderr)
}

func newLogger(o Option, w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.Debug {
		level = slog.LevelDebug
	}
	if o.Verbose {
		level = slog.LevelInfo
	}
	if o.Silent {
		level = slog.LevelError
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	})
	return slog.New(handler)
}

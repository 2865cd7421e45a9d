// Package logger wraps a log/slog.Logger that discards everything until
// Init is called, so importers never need a nil check before logging.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// L is the package logger. It discards all output until Init runs.
var L = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures Init.
type Options struct {
	Enabled bool
	LogDir  string
	Level   slog.Level
}

// Init opens a dated log file under opts.LogDir and points L at it. If
// opts.Enabled is false, Init leaves L discarding output.
func Init(opts Options) error {
	if !opts.Enabled {
		return nil
	}
	if err := os.MkdirAll(opts.LogDir, 0o755); err != nil {
		return fmt.Errorf("logger: create log dir: %w", err)
	}

	name := fmt.Sprintf("heapview-%s.log", time.Now().Format("2006-01-02"))
	f, err := os.OpenFile(filepath.Join(opts.LogDir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("logger: open log file: %w", err)
	}

	L = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: opts.Level}))
	return nil
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }

// Package logger wires the process-wide slog handler. Output is JSON,
// optionally duplicated to a size-rotated file.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/lumberjack.v2"
)

// Options configures Init. The zero value logs at info level to stdout.
type Options struct {
	Level      string
	File       string
	Console    bool
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

func Init(opts Options) {
	h := slog.NewJSONHandler(sink(opts), &slog.HandlerOptions{Level: parseLevel(opts.Level)})
	slog.SetDefault(slog.New(h))
	Info("logger initialized", "level", opts.Level, "file", opts.File)
}

// sink builds the combined writer. With neither console nor file
// configured it falls back to stdout so logs never vanish.
func sink(opts Options) io.Writer {
	var writers []io.Writer
	if opts.Console {
		writers = append(writers, os.Stdout)
	}
	if opts.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			LocalTime:  true,
		})
	}
	switch len(writers) {
	case 0:
		return os.Stdout
	case 1:
		return writers[0]
	default:
		return io.MultiWriter(writers...)
	}
}

func Info(msg string, args ...any)  { slog.Info(msg, args...) }
func Warn(msg string, args ...any)  { slog.Warn(msg, args...) }
func Error(msg string, args ...any) { slog.Error(msg, args...) }
func Debug(msg string, args ...any) { slog.Debug(msg, args...) }

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

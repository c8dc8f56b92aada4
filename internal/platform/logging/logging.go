package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/fatih/color"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	MaxSizeMB  = 100
	MaxBackups = 3
	MaxAgeDays = 28
)

// Handler writes JSON records to a file sink and a coloured line to the console.
type Handler struct {
	json    slog.Handler
	console io.Writer
	attrs   []slog.Attr
}

func NewHandler(console, file io.Writer, level slog.Level) *Handler {
	jsonHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String("timestamp", a.Value.Time().UTC().Format(time.RFC3339))
			}
			return a
		},
	})
	return &Handler{json: jsonHandler, console: console}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.json.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.json.Handle(ctx, r); err != nil {
		return err
	}
	if h.console == nil {
		return nil
	}

	levelColor := color.New(color.FgWhite)
	switch {
	case r.Level >= slog.LevelError:
		levelColor = color.New(color.FgRed)
	case r.Level >= slog.LevelWarn:
		levelColor = color.New(color.FgYellow)
	case r.Level >= slog.LevelInfo:
		levelColor = color.New(color.FgGreen)
	default:
		levelColor = color.New(color.FgCyan)
	}

	parts := make([]string, 0, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		parts = append(parts, fmt.Sprintf("%s=%v", a.Key, a.Value))
	}
	r.Attrs(func(a slog.Attr) bool {
		parts = append(parts, fmt.Sprintf("%s=%v", a.Key, a.Value))
		return true
	})
	message := r.Message
	if len(parts) > 0 {
		message += " " + strings.Join(parts, " ")
	}

	_, err := fmt.Fprintf(h.console, "%s %s %s\n",
		color.New(color.FgBlue).Sprint(r.Time.Format("2006-01-02 15:04:05.000")),
		levelColor.Sprintf("%-5s", r.Level.String()),
		message,
	)
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &Handler{json: h.json.WithAttrs(attrs), console: h.console, attrs: merged}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{json: h.json.WithGroup(name), console: h.console, attrs: h.attrs}
}

// Setup builds the process logger. The file is rotated by lumberjack.
func Setup(console io.Writer, logFile string, level slog.Level) *slog.Logger {
	var file io.Writer = io.Discard
	if logFile != "" {
		file = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    MaxSizeMB,
			MaxBackups: MaxBackups,
			MaxAge:     MaxAgeDays,
			Compress:   true,
		}
	}
	return slog.New(NewHandler(console, file, level)).With("service", "timeclock")
}

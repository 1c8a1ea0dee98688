package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config controls handler construction. Zero value produces a text handler
// at info level writing to stderr.
type Config struct {
	// Format selects the handler: "json" or "text".
	Format string `env:"LOG_FORMAT" envDefault:"text"`
	// Level is one of "debug", "info", "warn", "error".
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// Option is a functional option for configuring the logger.
type Option func(*options)

type options struct {
	output io.Writer
	attrs  []slog.Attr
}

// WithOutput redirects log output, primarily useful in tests.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithAttrs attaches attributes to every record produced by the logger.
func WithAttrs(attrs ...slog.Attr) Option {
	return func(o *options) {
		o.attrs = append(o.attrs, attrs...)
	}
}

// New builds a *slog.Logger from the config. Unknown levels and formats fall
// back to info/text rather than failing, so a misconfigured environment still
// produces logs.
func New(cfg Config, opts ...Option) *slog.Logger {
	o := &options{output: os.Stderr}
	for _, opt := range opts {
		opt(o)
	}

	handlerOpts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(o.output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(o.output, handlerOpts)
	}

	if len(o.attrs) > 0 {
		handler = handler.WithAttrs(o.attrs)
	}

	return slog.New(handler)
}

// NewDiscard returns a logger that drops all records. Used as the default in
// components that accept an optional logger.
func NewDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

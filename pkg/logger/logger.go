// Package logger builds slog loggers with a consistent setup across the
// service: JSON output for production log aggregation, text output for
// local development.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Format represents logger output format.
type Format string

const (
	// FormatJSON outputs structured logs for production log aggregation systems.
	FormatJSON Format = "json"
	// FormatText outputs human-readable logs for development debugging.
	FormatText Format = "text"
)

// Config holds logger settings loaded from the environment.
type Config struct {
	Level  slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	Format Format     `env:"LOG_FORMAT" envDefault:"json"`
}

// Option configures logger creation.
type Option func(*settings)

type settings struct {
	level  slog.Level
	format Format
	output io.Writer
	attrs  []slog.Attr
}

// WithLevel sets the minimum level emitted by the logger.
func WithLevel(l slog.Level) Option {
	return func(s *settings) { s.level = l }
}

// WithFormat sets output format. Unknown formats fall back to JSON.
func WithFormat(f Format) Option {
	return func(s *settings) { s.format = f }
}

// WithOutput sets a custom output destination, ignoring nil writers.
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		if w != nil {
			s.output = w
		}
	}
}

// WithAttr adds static attributes to every log record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(s *settings) {
		s.attrs = append(s.attrs, attrs...)
	}
}

// New creates a slog.Logger with the given options. Defaults: JSON format,
// info level, stdout.
func New(opts ...Option) *slog.Logger {
	s := settings{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(&s)
	}

	ho := &slog.HandlerOptions{Level: s.level}

	var h slog.Handler
	switch s.format {
	case FormatText:
		h = slog.NewTextHandler(s.output, ho)
	default:
		h = slog.NewJSONHandler(s.output, ho)
	}

	if len(s.attrs) > 0 {
		h = h.WithAttrs(s.attrs)
	}

	return slog.New(h)
}

// NewFromConfig creates a logger from environment-driven configuration.
func NewFromConfig(cfg Config, opts ...Option) *slog.Logger {
	return New(append([]Option{
		WithLevel(cfg.Level),
		WithFormat(cfg.Format),
	}, opts...)...)
}

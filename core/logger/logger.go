package logger

import (
	"io"
	"log/slog"
	"os"
)

type config struct {
	out     io.Writer
	level   slog.Level
	json    bool
	service string
}

// Option configures New.
type Option func(*config)

// WithOutput sets the destination writer (default: os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.out = w
		}
	}
}

// WithLevel sets the minimum level (default: info).
func WithLevel(level slog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithJSONFormatter switches output to JSON.
func WithJSONFormatter() Option {
	return func(c *config) {
		c.json = true
	}
}

// WithDevelopment configures text output at debug level.
func WithDevelopment(service string) Option {
	return func(c *config) {
		c.service = service
		c.level = slog.LevelDebug
		c.json = false
	}
}

// WithProduction configures JSON output at info level.
func WithProduction(service string) Option {
	return func(c *config) {
		c.service = service
		c.level = slog.LevelInfo
		c.json = true
	}
}

// New creates a logger from options.
func New(opts ...Option) *slog.Logger {
	c := &config{
		out:   os.Stdout,
		level: slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(c)
	}

	handlerOpts := &slog.HandlerOptions{Level: c.level}
	var h slog.Handler
	if c.json {
		h = slog.NewJSONHandler(c.out, handlerOpts)
	} else {
		h = slog.NewTextHandler(c.out, handlerOpts)
	}

	l := slog.New(h)
	if c.service != "" {
		l = l.With(slog.String("service", c.service))
	}
	return l
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

type config struct {
	level      slog.Level
	format     Format
	out        io.Writer
	extractors []ContextExtractor
	attrs      []slog.Attr
	sentry     *SentryConfig
}

// Option configures New.
type Option func(*config)

// WithLevel sets the minimum level. Default: info.
func WithLevel(l slog.Level) Option {
	return func(c *config) { c.level = l }
}

// WithFormat sets the output format. Default: json.
func WithFormat(f Format) Option {
	return func(c *config) { c.format = f }
}

// WithOutput sets the destination. Default: os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.out = w
		}
	}
}

// WithExtractors adds context extractors.
func WithExtractors(ex ...ContextExtractor) Option {
	return func(c *config) { c.extractors = append(c.extractors, ex...) }
}

// WithAttrs adds attributes to every record, e.g. the service name.
func WithAttrs(attrs ...slog.Attr) Option {
	return func(c *config) { c.attrs = append(c.attrs, attrs...) }
}

// WithSentry forwards warnings and errors to Sentry. An empty DSN disables it.
func WithSentry(cfg SentryConfig) Option {
	return func(c *config) {
		if cfg.DSN != "" {
			c.sentry = &cfg
		}
	}
}

// New creates a logger. The returned logger is always usable; a non-nil
// error only reports that Sentry could not be started.
func New(opts ...Option) (*slog.Logger, error) {
	cfg := config{level: slog.LevelInfo, format: FormatJSON, out: os.Stdout}
	for _, opt := range opts {
		opt(&cfg)
	}

	hopts := &slog.HandlerOptions{Level: cfg.level}
	var h slog.Handler
	if cfg.format == FormatText {
		h = slog.NewTextHandler(cfg.out, hopts)
	} else {
		h = slog.NewJSONHandler(cfg.out, hopts)
	}

	var err error
	if cfg.sentry != nil {
		sh, serr := newSentryHandler(*cfg.sentry)
		if serr != nil {
			err = errors.Join(ErrSentryInit, serr)
		} else {
			h = fanout{h, sh}
		}
	}

	h = Decorate(h, cfg.extractors...)
	if len(cfg.attrs) > 0 {
		h = h.WithAttrs(cfg.attrs)
	}
	return slog.New(h), err
}

// NewNope creates a logger that discards all output.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel maps debug, info, warn and error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// ParseFormat maps "json" and "text" to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatText:
		return f, nil
	}
	return FormatJSON, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

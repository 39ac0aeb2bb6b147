// Package log provides zerolog-backed context logging for the module.
package log

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// AttrOption adds an attribute to a context logger.
type AttrOption func(l zerolog.Context) zerolog.Context

// Scope tags log entries with a subsystem name.
func Scope(s string) AttrOption {
	return func(l zerolog.Context) zerolog.Context {
		return l.Str("s", s)
	}
}

// Operation tags log entries with the list operation being performed.
func Operation(op string) AttrOption {
	return func(l zerolog.Context) zerolog.Context {
		return l.Str("op", op)
	}
}

// Count tags log entries with an element count.
func Count(n int) AttrOption {
	return func(l zerolog.Context) zerolog.Context {
		return l.Int("count", n)
	}
}

// Worker tags log entries with a bench worker id.
func Worker(id int) AttrOption {
	return func(l zerolog.Context) zerolog.Context {
		return l.Int("worker", id)
	}
}

// WithAttrs returns a context whose logger carries the given attributes.
func WithAttrs(ctx context.Context, opts ...AttrOption) context.Context {
	l := zerolog.Ctx(ctx).With()
	for _, opt := range opts {
		l = opt(l)
	}
	return l.Logger().WithContext(ctx)
}

func Debug(ctx context.Context, msg string) {
	zerolog.Ctx(ctx).Debug().Timestamp().Msg(msg)
}

func Debugf(ctx context.Context, msg string, args ...any) {
	zerolog.Ctx(ctx).Debug().Timestamp().Msgf(msg, args...)
}

func Info(ctx context.Context, msg string) {
	zerolog.Ctx(ctx).Info().Timestamp().Msg(msg)
}

func Infof(ctx context.Context, msg string, args ...any) {
	zerolog.Ctx(ctx).Info().Timestamp().Msgf(msg, args...)
}

func Warn(ctx context.Context, msg string) {
	zerolog.Ctx(ctx).Warn().Timestamp().Msg(msg)
}

func Warnf(ctx context.Context, msg string, args ...any) {
	zerolog.Ctx(ctx).Warn().Timestamp().Msgf(msg, args...)
}

func Error(ctx context.Context, err error, msg string) {
	zerolog.Ctx(ctx).Error().Err(err).Timestamp().Msg(msg)
}

func Errorf(ctx context.Context, err error, msg string, args ...any) {
	zerolog.Ctx(ctx).Error().Err(err).Timestamp().Msgf(msg, args...)
}

// InitGlobals builds the process logger and installs it as the fallback
// context logger. JSON output goes to stderr unformatted; otherwise a
// console writer is used.
func InitGlobals(level zerolog.Level, json, noColor bool) *zerolog.Logger {
	var l zerolog.Logger
	if json {
		l = zerolog.New(os.Stderr).Level(level)
	} else {
		w := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.NoColor = noColor
			w.TimeFormat = time.DateTime
		})
		l = zerolog.New(w).Level(level)
	}

	zerolog.DefaultContextLogger = &l

	return &l
}

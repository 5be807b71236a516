// Package logging implements entity.Logger with zerolog.
package logging

import (
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum level written: debug, info, warn or error.
	Level string `yaml:"level"`
	// Pretty selects console output instead of json lines.
	Pretty bool `yaml:"pretty"`
}

// Logger writes structured lines, picking up fields stored in ctx.
type Logger struct {
	zl zerolog.Logger
}

type ctxKey struct{}

// New creates a Logger writing to w.
func New(w io.Writer, cfg Config) *Logger {

	if cfg.Pretty {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}

	zl := zerolog.New(w).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()

	return &Logger{zl: zl}
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// WithFields returns a ctx whose log lines carry kv.
func (lgr *Logger) WithFields(ctx context.Context, kv ...any) context.Context {

	existing, _ := ctx.Value(ctxKey{}).([]any)

	fields := make([]any, 0, len(existing)+len(kv))
	fields = append(fields, existing...)
	fields = append(fields, kv...)

	return context.WithValue(ctx, ctxKey{}, fields)
}

// Info logs at info level.
func (lgr *Logger) Info(ctx context.Context, msg string, kv ...any) {

	lgr.zl.Info().
		Fields(fromCtx(ctx)).
		Fields(kv).
		Msg(msg)
}

// Error logs at error level.
func (lgr *Logger) Error(ctx context.Context, msg string, err error, kv ...any) {

	lgr.zl.Error().
		Fields(fromCtx(ctx)).
		Fields(kv).
		Err(err).
		Msg(msg)
}

// unexported

func fromCtx(ctx context.Context) []any {

	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(ctxKey{}).([]any)
	return fields
}

func parseLevel(level string) zerolog.Level {

	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Field is a structured logging key/value pair.
type Field struct {
	Key   string
	Value any
}

// String creates a Field holding a string value.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates a Field holding an int value.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Uint64 creates a Field holding a uint64 value.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Float64 creates a Field holding a float64 value.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Err creates a Field holding an error under the conventional "error" key.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// Logger is the logging interface used by the CLI and HTTP surfaces. It
// decouples callers from the backend so tests and embedders can substitute
// their own sink.
type Logger interface {
	// Debug logs a message at debug level with optional structured fields.
	Debug(msg string, fields ...Field)
	// Info logs a message at info level with optional structured fields.
	Info(msg string, fields ...Field)
	// Error logs a message at error level with the given error and fields.
	Error(msg string, err error, fields ...Field)
	// Printf logs a formatted message at info level.
	Printf(format string, args ...any)
	// Println logs its arguments at info level, space-separated.
	Println(args ...any)
}

// ─────────────────────────────────────────────────────────────────────────────
// Zerolog adapter
// ─────────────────────────────────────────────────────────────────────────────

// ZerologAdapter implements Logger on top of a zerolog.Logger.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// Interface compliance check.
var _ Logger = (*ZerologAdapter)(nil)

// NewZerologAdapter wraps an existing zerolog.Logger.
func NewZerologAdapter(zl zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: zl}
}

// NewDefaultLogger creates a ZerologAdapter writing timestamped events to
// stderr.
func NewDefaultLogger() *ZerologAdapter {
	zl := zerolog.New(os.Stderr).With().Timestamp().Logger()
	return &ZerologAdapter{logger: zl}
}

// NewLogger creates a ZerologAdapter writing to w with a component field
// attached to every event.
//
// Parameters:
//   - w: The destination for log output.
//   - component: Component name added as a "component" field.
//
// Returns:
//   - *ZerologAdapter: The configured adapter.
func NewLogger(w io.Writer, component string) *ZerologAdapter {
	zl := zerolog.New(w).With().Timestamp().Str("component", component).Logger()
	return &ZerologAdapter{logger: zl}
}

// Debug logs a message at debug level.
func (l *ZerologAdapter) Debug(msg string, fields ...Field) {
	applyFields(l.logger.Debug(), fields).Msg(msg)
}

// Info logs a message at info level.
func (l *ZerologAdapter) Info(msg string, fields ...Field) {
	applyFields(l.logger.Info(), fields).Msg(msg)
}

// Error logs a message at error level with the given error attached.
func (l *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	applyFields(l.logger.Error().Err(err), fields).Msg(msg)
}

// Printf logs a formatted message at info level.
func (l *ZerologAdapter) Printf(format string, args ...any) {
	l.logger.Info().Msgf(format, args...)
}

// Println logs its arguments at info level.
func (l *ZerologAdapter) Println(args ...any) {
	l.logger.Info().Msg(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

// applyFields attaches typed fields to a zerolog event. Unknown types fall
// back to zerolog's generic interface encoding.
func applyFields(event *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			event = event.Str(f.Key, v)
		case int:
			event = event.Int(f.Key, v)
		case int64:
			event = event.Int64(f.Key, v)
		case uint64:
			event = event.Uint64(f.Key, v)
		case float64:
			event = event.Float64(f.Key, v)
		case bool:
			event = event.Bool(f.Key, v)
		case error:
			event = event.AnErr(f.Key, v)
		default:
			event = event.Interface(f.Key, v)
		}
	}
	return event
}

// ─────────────────────────────────────────────────────────────────────────────
// Standard library adapter
// ─────────────────────────────────────────────────────────────────────────────

// StdLoggerAdapter implements Logger on top of the standard library log
// package, for embedders that do not use zerolog.
type StdLoggerAdapter struct {
	logger *log.Logger
}

// Interface compliance check.
var _ Logger = (*StdLoggerAdapter)(nil)

// NewStdLoggerAdapter wraps a *log.Logger.
func NewStdLoggerAdapter(l *log.Logger) *StdLoggerAdapter {
	return &StdLoggerAdapter{logger: l}
}

// Debug logs a message with a [DEBUG] prefix.
func (l *StdLoggerAdapter) Debug(msg string, fields ...Field) {
	l.logger.Printf("[DEBUG] %s%s", msg, formatFields(fields))
}

// Info logs a message with an [INFO] prefix.
func (l *StdLoggerAdapter) Info(msg string, fields ...Field) {
	l.logger.Printf("[INFO] %s%s", msg, formatFields(fields))
}

// Error logs a message with an [ERROR] prefix and the error appended.
func (l *StdLoggerAdapter) Error(msg string, err error, fields ...Field) {
	if err != nil {
		l.logger.Printf("[ERROR] %s: %v%s", msg, err, formatFields(fields))
		return
	}
	l.logger.Printf("[ERROR] %s%s", msg, formatFields(fields))
}

// Printf logs a formatted message.
func (l *StdLoggerAdapter) Printf(format string, args ...any) {
	l.logger.Printf(format, args...)
}

// Println logs its arguments.
func (l *StdLoggerAdapter) Println(args ...any) {
	l.logger.Println(args...)
}

// formatFields renders fields as " key=value" suffix text.
func formatFields(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	return b.String()
}

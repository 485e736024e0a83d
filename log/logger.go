// Package log provides structured logging with session context.
//
// Every line carries session_id and testing. Call-site fields are emitted
// as top-level keys in sorted order, so lines are stable and easy to grep.
package log

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Context identifies the session a logger belongs to.
type Context struct {
	SessionID string
	Testing   bool
}

// Log line encodings.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Options configures a logger.
type Options struct {
	Level zapcore.Level
	// Format is FormatJSON (default) or FormatConsole.
	Format string
}

// Logger provides structured logging with session context.
type Logger struct {
	zap *zap.Logger
}

// ParseLevel parses debug, info, warn or error. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %q (must be debug, info, warn, or error)", s)
	}
}

// New creates a logger writing to os.Stderr.
func New(ctx Context, opts Options) (*Logger, error) {
	return NewWithWriter(ctx, opts, os.Stderr)
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(ctx Context, opts Options, w io.Writer) (*Logger, error) {
	var enc zapcore.Encoder
	switch opts.Format {
	case "", FormatJSON:
		enc = zapcore.NewJSONEncoder(encoderConfig(zapcore.LowercaseLevelEncoder))
	case FormatConsole:
		enc = zapcore.NewConsoleEncoder(encoderConfig(zapcore.CapitalLevelEncoder))
	default:
		return nil, fmt.Errorf("invalid log format: %q (must be json or console)", opts.Format)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), opts.Level)
	return &Logger{zap: zap.New(core).With(
		zap.String("session_id", ctx.SessionID),
		zap.Bool("testing", ctx.Testing),
	)}, nil
}

// NewLoggerWithWriter creates a JSON logger writing to w.
func NewLoggerWithWriter(ctx Context, level zapcore.Level, w io.Writer) *Logger {
	l, _ := NewWithWriter(ctx, Options{Level: level}, w)
	return l
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zap: zap.NewNop()}
}

func encoderConfig(level zapcore.LevelEncoder) zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:     "timestamp",
		LevelKey:    "level",
		MessageKey:  "message",
		EncodeTime:  zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: level,
	}
}

// With returns a logger that adds fields to every line.
func (l *Logger) With(fields map[string]any) *Logger {
	return &Logger{zap: l.zap.With(zapFields(fields)...)}
}

func (l *Logger) Debug(message string, fields map[string]any) {
	l.zap.Debug(message, zapFields(fields)...)
}

func (l *Logger) Info(message string, fields map[string]any) {
	l.zap.Info(message, zapFields(fields)...)
}

func (l *Logger) Warn(message string, fields map[string]any) {
	l.zap.Warn(message, zapFields(fields)...)
}

func (l *Logger) Error(message string, fields map[string]any) {
	l.zap.Error(message, zapFields(fields)...)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() {
	_ = l.zap.Sync()
}

func zapFields(fields map[string]any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}

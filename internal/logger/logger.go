// Package logger provides the zap-backed structured logging facade shared by
// the upload pipeline, form controller, and CLI.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the minimal logging surface the rest of the module depends on.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	With(fields ...zap.Field) Logger
}

type zapWrapper struct {
	l *zap.Logger
}

// New builds a Logger at the given level. Format "json" selects production
// encoding, anything else the development console encoder.
func New(levelStr, format string) Logger {
	level := zapcore.InfoLevel
	switch levelStr {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	l, _ := cfg.Build()
	return &zapWrapper{l: l}
}

// NewNop returns a Logger that discards everything. Used in tests and as the
// default when callers pass nil.
func NewNop() Logger {
	return &zapWrapper{l: zap.NewNop()}
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return NewNop()
	}
	return l
}

func (z *zapWrapper) Debug(msg string, fields ...zap.Field) { z.l.Debug(msg, fields...) }
func (z *zapWrapper) Info(msg string, fields ...zap.Field)  { z.l.Info(msg, fields...) }
func (z *zapWrapper) Warn(msg string, fields ...zap.Field)  { z.l.Warn(msg, fields...) }
func (z *zapWrapper) Error(msg string, fields ...zap.Field) { z.l.Error(msg, fields...) }

func (z *zapWrapper) With(fields ...zap.Field) Logger {
	return &zapWrapper{l: z.l.With(fields...)}
}

package logger

import (
	"testing"

	"go.uber.org/zap"
)

func TestNewNopIsSafe(t *testing.T) {
	log := NewNop()
	log.Debug("debug", zap.String("k", "v"))
	log.Info("info")
	log.Warn("warn")
	log.Error("error")
	log.With(zap.Int("n", 1)).Info("with fields")
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) must return a usable logger")
	}
	base := NewNop()
	if OrNop(base) != base {
		t.Fatal("OrNop must pass through non-nil loggers")
	}
}

func TestNewLevelsAndFormats(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus"} {
		for _, format := range []string{"json", "console"} {
			if log := New(level, format); log == nil {
				t.Fatalf("New(%q, %q) returned nil", level, format)
			}
		}
	}
}

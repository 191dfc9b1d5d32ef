package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestNewLogger_KnownEnvironments(t *testing.T) {
	for _, env := range []string{"local", "dev", "prod"} {
		if _, err := NewLogger(env); err != nil {
			t.Errorf("NewLogger(%q): %v", env, err)
		}
	}
}

func TestNewLogger_UnknownEnvironment(t *testing.T) {
	if _, err := NewLogger("staging"); err == nil {
		t.Error("expected error for environment without a preset")
	}
}

func TestNewLogger_LevelOverride(t *testing.T) {
	l, err := NewLogger("prod", "debug")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if !l.Core().Enabled(zap.DebugLevel) {
		t.Error("debug override not applied")
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	if _, err := NewLogger("prod", "loud"); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestFromContext_RoundTrip(t *testing.T) {
	l := zap.NewNop()
	ctx := ContextWithLogger(context.Background(), l)

	if FromContext(ctx) != l {
		t.Error("installed logger not returned")
	}
	if FromContext(context.Background()) == nil {
		t.Error("missing logger must fall back to a no-op, not nil")
	}
}

package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitializeConsole(t *testing.T) {
	if err := Initialize(false, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if zap.L().Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be disabled without verbose")
	}
	if !zap.L().Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be enabled")
	}
}

func TestInitializeVerbose(t *testing.T) {
	if err := Initialize(true, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !zap.L().Core().Enabled(zapcore.DebugLevel) {
		t.Error("verbose should enable debug")
	}
}

func TestInitializeJSON(t *testing.T) {
	if err := Initialize(false, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	zap.L().Info("structured entry")
	Sync()
}

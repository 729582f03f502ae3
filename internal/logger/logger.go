// Package logger configures the process-global zap logger.
//
// Commands log through zap.L() and zap.S(). Both encoders write to
// stderr: stdout is reserved for generated output.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Initialize builds the global logger and installs it with
// zap.ReplaceGlobals. jsonOutput switches from the console encoder to
// the production JSON encoder; verbose lowers the level to debug.
func Initialize(verbose, jsonOutput bool) error {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}

	var l *zap.Logger
	if jsonOutput {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
		built, err := cfg.Build()
		if err != nil {
			return err
		}
		l = built
	} else {
		enc := zap.NewDevelopmentEncoderConfig()
		enc.EncodeLevel = zapcore.CapitalLevelEncoder
		l = zap.New(zapcore.NewCore(
			zapcore.NewConsoleEncoder(enc),
			zapcore.AddSync(os.Stderr),
			level,
		))
	}

	zap.ReplaceGlobals(l)
	return nil
}

// Sync flushes buffered entries. Called on command exit; the error is
// ignored because stderr may already be closed.
func Sync() {
	_ = zap.L().Sync()
}

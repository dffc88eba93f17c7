package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap.Logger so components can take one concrete type and
// still derive named children.
type Logger struct {
	*zap.Logger
}

// New builds a logger from cfg. A broken output file falls back to stdout
// rather than failing startup.
func New(cfg Config) *Logger {
	zapConfig := zap.NewProductionConfig()
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.Level = zap.NewAtomicLevelAt(cfg.zapLevel())

	if cfg.console() {
		zapConfig.Encoding = "console"
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapConfig.Encoding = "json"
	}

	zapConfig.OutputPaths = []string{"stdout"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}
	if out := cfg.OutputFile; out != "" && out != "stdout" && out != "stderr" {
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "logger: cannot create log dir for %q, using stdout: %v\n", out, err)
		} else {
			zapConfig.OutputPaths = []string{out, "stdout"}
			zapConfig.ErrorOutputPaths = []string{out, "stderr"}
		}
	} else if out == "stderr" {
		zapConfig.OutputPaths = []string{"stderr"}
	}

	zl, err := zapConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: falling back to default production logger: %v\n", err)
		zl, _ = zap.NewProduction()
	}
	return &Logger{Logger: zl}
}

// NewNop returns a logger that discards everything. Used in tests.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Named adds a path segment to the logger's name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{Logger: l.Logger.Named(name)}
}

// With adds structured context to the logger.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...)}
}

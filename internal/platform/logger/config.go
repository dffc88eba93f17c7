package logger

import (
	"strings"

	"go.uber.org/zap/zapcore"
)

// Config describes where and how the service writes its logs.
type Config struct {
	Level      string
	Format     string
	OutputFile string
}

func (c Config) zapLevel() zapcore.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func (c Config) console() bool {
	f := strings.ToLower(c.Format)
	return f == "console" || f == "text"
}

// Package log builds the zap loggers used as diagnostic sinks across grimoire.
package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel defines the severity level for log messages.
type LogLevel string

const (
	// LogInfo is used for general informational messages.
	LogInfo LogLevel = "info"

	// LogWarn is used for potentially harmful situations.
	LogWarn LogLevel = "warn"

	// LogError is used for error events that might still allow the application to continue running.
	LogError LogLevel = "error"

	// LogDebug is used for debugging messages with detailed internal information.
	LogDebug LogLevel = "debug"
)

// ParseLevel maps a textual level onto a LogLevel. Unknown levels fall back to LogInfo.
func ParseLevel(s string) LogLevel {
	switch l := LogLevel(s); l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return l
	default:
		return LogInfo
	}
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case LogDebug:
		return zap.DebugLevel
	case LogWarn:
		return zap.WarnLevel
	case LogError:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// Emit writes msg to logger at the given level; unknown levels log at info.
// A nil logger drops the message.
func Emit(logger *zap.Logger, level LogLevel, msg string, fields ...zap.Field) {
	if logger == nil {
		return
	}
	logger.Log(level.zapLevel(), msg, fields...)
}

// OrNop returns logger, or a no-op logger when it is nil.
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// New builds a production logger at level with the given encoding ("json" or "console").
func New(level LogLevel, encoding string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level.zapLevel())
	switch encoding {
	case "", "json":
		cfg.Encoding = "json"
	case "console":
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	default:
		return nil, fmt.Errorf("unsupported log encoding: %q", encoding)
	}
	return cfg.Build()
}

// NewTest builds a debug-level console logger writing to stdout.
func NewTest() *zap.Logger {
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stdout),
		zap.DebugLevel,
	)
	return zap.New(consoleCore)
}

package logging

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// log is read by the signal handler while the CLI initialises it.
var log atomic.Pointer[zap.Logger]

func init() {
	log.Store(zap.NewNop())
}

// LogLevel represents the logging level
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// Output encodings accepted by New.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// ParseLevel maps a level name onto its zap level.
func ParseLevel(level LogLevel) (zapcore.Level, error) {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel, nil
	case InfoLevel, "":
		return zapcore.InfoLevel, nil
	case WarnLevel:
		return zapcore.WarnLevel, nil
	case ErrorLevel:
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s", level)
	}
}

// Config returns the zap configuration for the given level and format.
// Console output uses the development encoder, json the production one.
// Both write to stderr so reports on stdout stay clean.
func Config(level LogLevel, format string) (zap.Config, error) {
	var config zap.Config
	switch format {
	case FormatConsole, "":
		config = zap.NewDevelopmentConfig()
		config.DisableStacktrace = true
	case FormatJSON:
		config = zap.NewProductionConfig()
	default:
		return zap.Config{}, fmt.Errorf("invalid log format: %s", format)
	}

	lvl, err := ParseLevel(level)
	if err != nil {
		return zap.Config{}, err
	}
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	return config, nil
}

// New builds a logger without touching the package-level instance.
func New(level LogLevel, format string) (*zap.Logger, error) {
	config, err := Config(level, format)
	if err != nil {
		return nil, err
	}
	return config.Build()
}

// Init initializes the package logger with the specified configuration
func Init(level LogLevel, format string) error {
	l, err := New(level, format)
	if err != nil {
		return err
	}
	log.Store(l)
	return nil
}

// Set replaces the package logger; nil restores the no-op logger.
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	log.Store(l)
}

// Get returns the logger instance
func Get() *zap.Logger {
	return log.Load()
}

// Sugar returns the printf-style logger handed to the calculation engine.
func Sugar() *zap.SugaredLogger {
	return Get().Sugar()
}

// Sync flushes any buffered log entries
func Sync() error {
	return Get().Sync()
}

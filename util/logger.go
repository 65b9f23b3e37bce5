package util

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the singleton logger. It writes to stderr by default, or to a
// file if configured. Stdout is never used: it carries frames.
type Logger struct {
	mu               sync.Mutex
	level            zap.AtomicLevel
	base             *zap.Logger
	file             *os.File
	levelInitialized bool // Track if we've initialized from env var
}

var defaultLogger = newLogger(os.Stderr)

func newLogger(w io.Writer) *Logger {
	l := &Logger{level: zap.NewAtomicLevelAt(zapcore.WarnLevel)}
	l.base = l.build(zapcore.AddSync(w))
	return l
}

func (l *Logger) build(ws zapcore.WriteSyncer) *zap.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	enc.EncodeName = func(name string, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString("[" + name + "]")
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(ws), l.level)
	return zap.New(core)
}

// ParseLogLevel parses a level name. Unknown names fall back to WARN so
// chains stay quiet.
func ParseLogLevel(levelStr string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "INFO":
		return zapcore.InfoLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// initLogLevel initializes the log level from environment variable.
// Must be called with defaultLogger.mu locked.
func initLogLevel() {
	if !defaultLogger.levelInitialized {
		if levelStr := os.Getenv("TYPEDPIPE_LOG_LEVEL"); levelStr != "" {
			defaultLogger.level.SetLevel(ParseLogLevel(levelStr))
		}
		defaultLogger.levelInitialized = true
	}
}

// InitLogger configures the singleton logger. If logFile is empty, logs go
// to stderr; otherwise they are appended to logFile.
// TYPEDPIPE_LOG_LEVEL overrides level.
func InitLogger(level, logFile string) error {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()

	defaultLogger.closeFile()

	if level != "" {
		defaultLogger.level.SetLevel(ParseLogLevel(level))
	}
	// Env overrides config
	defaultLogger.levelInitialized = false
	initLogLevel()

	if logFile == "" {
		defaultLogger.base = defaultLogger.build(zapcore.AddSync(os.Stderr))
		return nil
	}

	f, err := os.OpenFile(ExpandTilde(logFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		defaultLogger.base = defaultLogger.build(zapcore.AddSync(os.Stderr))
		return fmt.Errorf("open log file: %w", err)
	}
	defaultLogger.file = f
	defaultLogger.base = defaultLogger.build(f)
	return nil
}

// SetLogOutput redirects the singleton logger to w.
func SetLogOutput(w io.Writer) {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()

	defaultLogger.closeFile()
	defaultLogger.base = defaultLogger.build(zapcore.AddSync(w))
}

// CloseLogger flushes and closes the log file, if any.
func CloseLogger() {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()

	_ = defaultLogger.base.Sync()
	defaultLogger.closeFile()
}

// closeFile must be called with l.mu locked.
func (l *Logger) closeFile() {
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
}

// Log returns a module-scoped handle for the singleton logger
func Log(module string) *ModuleLogger {
	return &ModuleLogger{module: module, logger: defaultLogger}
}

// ModuleLogger provides logging scoped to a module name
type ModuleLogger struct {
	module string
	logger *Logger
}

func (m *ModuleLogger) log(level zapcore.Level, format string, args ...interface{}) {
	m.logger.mu.Lock()
	defer m.logger.mu.Unlock()

	initLogLevel()

	if !m.logger.level.Enabled(level) {
		return
	}
	if ce := m.logger.base.Named(m.module).Check(level, fmt.Sprintf(format, args...)); ce != nil {
		ce.Write()
	}
}

// Debug logs a debug message (only if log level is DEBUG)
func (m *ModuleLogger) Debug(format string, args ...interface{}) {
	m.log(zapcore.DebugLevel, format, args...)
}

// Info logs an informational message
func (m *ModuleLogger) Info(format string, args ...interface{}) {
	m.log(zapcore.InfoLevel, format, args...)
}

// Warning logs a warning message
func (m *ModuleLogger) Warning(format string, args ...interface{}) {
	m.log(zapcore.WarnLevel, format, args...)
}

// Error logs an error message
func (m *ModuleLogger) Error(format string, args ...interface{}) {
	m.log(zapcore.ErrorLevel, format, args...)
}

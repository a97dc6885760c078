package utils

import (
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger provides leveled logging throughout the application.
// Messages use printf-style formatting; every line carries the run id.
type Logger struct {
	sugar *zap.SugaredLogger
	runID string
}

// NewLogger creates a Logger at the given level ("debug", "info", "warn",
// "error") writing INFO and below to stdout and WARN and above to stderr.
func NewLogger(level string) *Logger {
	return newLogger(parseLevel(level), zapcore.Lock(os.Stdout), zapcore.Lock(os.Stderr))
}

// NewLoggerTo creates a Logger writing every level to w.
func NewLoggerTo(w io.Writer, level string) *Logger {
	sink := zapcore.AddSync(w)
	return newLogger(parseLevel(level), sink, sink)
}

// NewNopLogger discards everything. Used in tests.
func NewNopLogger() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

func newLogger(level zapcore.Level, out, errOut zapcore.WriteSyncer) *Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	enc := zapcore.NewConsoleEncoder(encCfg)

	low := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= level && l < zapcore.WarnLevel
	})
	high := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= level && l >= zapcore.WarnLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(enc, out, low),
		zapcore.NewCore(enc, errOut, high),
	)

	runID := uuid.NewString()
	return &Logger{
		sugar: zap.New(core).Sugar().With("run_id", runID),
		runID: runID,
	}
}

func parseLevel(level string) zapcore.Level {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return zapcore.InfoLevel
	}
	return l
}

// RunID identifies the current pipeline run.
func (l *Logger) RunID() string { return l.runID }

func (l *Logger) Info(format string, args ...any) {
	l.sugar.Infof(format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.sugar.Warnf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.sugar.Errorf(format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.sugar.Debugf(format, args...)
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() {
	_ = l.sugar.Sync()
}

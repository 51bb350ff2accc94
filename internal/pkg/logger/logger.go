package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Level = zapcore.Level

const (
	DEBUG = zapcore.DebugLevel
	INFO  = zapcore.InfoLevel
	WARN  = zapcore.WarnLevel
	ERROR = zapcore.ErrorLevel
	FATAL = zapcore.FatalLevel
)

// Options controls where and how much the logger writes
type Options struct {
	Level Level
	// File enables a rotating JSON log file next to the console output
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type Logger struct {
	level *zap.AtomicLevel
	sugar *zap.SugaredLogger
}

func New(opts Options) *Logger {
	atom := zap.NewAtomicLevelAt(opts.Level)

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(os.Stdout), atom),
	}

	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 100),
			MaxBackups: orDefault(opts.MaxBackups, 30),
			MaxAge:     orDefault(opts.MaxAgeDays, 90),
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(rotator), atom))
	}

	base := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zap.ErrorLevel))
	return &Logger{level: &atom, sugar: base.Sugar()}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func (l *Logger) Debug(format string, v ...interface{}) { l.sugar.Debugf(format, v...) }
func (l *Logger) Info(format string, v ...interface{})  { l.sugar.Infof(format, v...) }
func (l *Logger) Warn(format string, v ...interface{})  { l.sugar.Warnf(format, v...) }
func (l *Logger) Error(format string, v ...interface{}) { l.sugar.Errorf(format, v...) }
func (l *Logger) Fatal(format string, v ...interface{}) { l.sugar.Fatalf(format, v...) }

// Infow logs a message with structured key/value pairs
func (l *Logger) Infow(msg string, keysAndValues ...interface{}) { l.sugar.Infow(msg, keysAndValues...) }
func (l *Logger) Warnw(msg string, keysAndValues ...interface{}) { l.sugar.Warnw(msg, keysAndValues...) }
func (l *Logger) Errorw(msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, keysAndValues...)
}

// SetLevel changes the logging level
func (l *Logger) SetLevel(level Level) {
	l.level.SetLevel(level)
}

// GetLevel returns current logging level
func (l *Logger) GetLevel() Level {
	return l.level.Level()
}

func (l *Logger) Sync() error {
	return l.sugar.Sync()
}

// ParseLevel maps "debug", "info", "warn", "error" to a Level, falling back to INFO
func ParseLevel(s string) Level {
	level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return INFO
	}
	return level
}

// Global logger instance
var defaultLogger = New(Options{Level: INFO})

// Init replaces the global logger
func Init(opts Options) {
	defaultLogger = New(opts)
}

// Default returns the global logger
func Default() *Logger { return defaultLogger }

// Package-level functions for easy access
func Debug(format string, v ...interface{}) { defaultLogger.Debug(format, v...) }
func Info(format string, v ...interface{})  { defaultLogger.Info(format, v...) }
func Warn(format string, v ...interface{})  { defaultLogger.Warn(format, v...) }
func Error(format string, v ...interface{}) { defaultLogger.Error(format, v...) }
func Fatal(format string, v ...interface{}) { defaultLogger.Fatal(format, v...) }

func Infow(msg string, keysAndValues ...interface{})  { defaultLogger.Infow(msg, keysAndValues...) }
func Warnw(msg string, keysAndValues ...interface{})  { defaultLogger.Warnw(msg, keysAndValues...) }
func Errorw(msg string, keysAndValues ...interface{}) { defaultLogger.Errorw(msg, keysAndValues...) }

// SetGlobalLevel sets the level for the global logger
func SetGlobalLevel(level Level) {
	defaultLogger.SetLevel(level)
}

func Sync() error { return defaultLogger.Sync() }

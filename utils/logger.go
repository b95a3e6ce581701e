package utils

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger provides leveled, printf-style logging on top of a zap logger.
type Logger struct {
	z *zap.SugaredLogger
}

// LogOptions selects the level and encoding of a Logger.
type LogOptions struct {
	Level  string // debug, info, warn, error
	Format string // console or json
}

// NewLogger creates a console Logger at info level.
func NewLogger() *Logger {
	l, err := NewLoggerWithOptions(LogOptions{Level: "info", Format: "console"})
	if err != nil {
		return &Logger{z: zap.NewNop().Sugar()}
	}
	return l
}

// NewLoggerWithOptions builds a Logger from the given options.
func NewLoggerWithOptions(opts LogOptions) (*Logger, error) {
	var zapCfg zap.Config
	if opts.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
		zapCfg.DisableStacktrace = true
	}
	zapCfg.DisableCaller = true

	level := opts.Level
	if level == "" {
		level = "info"
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logger: parse level %q: %w", level, err)
	}
	zapCfg.Level.SetLevel(lvl)

	z, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logger: build: %w", err)
	}
	return &Logger{z: z.Sugar()}, nil
}

// NewNopLogger returns a Logger that discards everything. Used in tests.
func NewNopLogger() *Logger {
	return &Logger{z: zap.NewNop().Sugar()}
}

// With returns a child Logger carrying the given key/value pairs on every entry.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{z: l.z.With(args...)}
}

func (l *Logger) Info(format string, args ...any) {
	l.z.Infof(format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.z.Warnf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.z.Errorf(format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.z.Debugf(format, args...)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() {
	_ = l.z.Sync()
}

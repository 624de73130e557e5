// Package logger builds the zap logger shared by the service.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	Log   *zap.Logger
	level zap.AtomicLevel
}

// New returns a logger that discards everything until Init is called.
func New() *Logger {
	return &Logger{
		Log:   zap.NewNop(),
		level: zap.NewAtomicLevel(),
	}
}

// Init replaces the no-op logger with a production JSON logger at level.
// fields are attached to every entry.
func (l *Logger) Init(level string, fields ...zap.Field) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zl, err := cfg.Build(zap.Fields(fields...))
	if err != nil {
		return err
	}

	l.Log = zl
	l.level = lvl
	return nil
}

// SetLevel changes the level of an initialized logger.
func (l *Logger) SetLevel(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}
	l.level.SetLevel(lvl.Level())
	return nil
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.Log.Sync()
}

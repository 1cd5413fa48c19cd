// Package logger holds the process-wide zap logger.
package logger

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	global   = zap.NewNop()
	globalMu sync.RWMutex
)

// New builds a console logger, or a JSON logger when format is "json". With
// verbose set the level is debug, otherwise info.
func New(verbose bool, format string) (*zap.Logger, error) {
	var config zap.Config
	switch strings.ToLower(format) {
	case "json":
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	case "", "console":
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
		config.DisableStacktrace = true
	default:
		return nil, errors.Errorf("unknown log format %q (want console or json)", format)
	}
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	l, err := config.Build()
	if err != nil {
		return nil, errors.Wrap(err, "could not build logger")
	}
	return l, nil
}

// Init replaces the global logger with one built by New.
func Init(verbose bool, format string) error {
	l, err := New(verbose, format)
	if err != nil {
		return err
	}
	SetLogger(l)
	return nil
}

func SetLogger(l *zap.Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = l
}

// L returns the global logger. It is a no-op logger until Init is called.
func L() *zap.Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}

// Sync flushes the global logger.
func Sync() {
	_ = L().Sync()
}

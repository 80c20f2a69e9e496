// Package logging builds the application's file-only zap logger. The
// terminal belongs to the TUI, so nothing is ever written to stdout.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a logger writing JSON lines to a rotating file at path,
// and a func that flushes the logger and closes the file.
// level is a zap level name such as "debug" or "info".
func New(path, level string) (*zap.Logger, func() error, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", level, err)
	}

	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,   // Megabytes
		MaxBackups: 5,    // Files
		MaxAge:     30,   // Days
		Compress:   true, // gzip
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.MessageKey = "message"
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(rotator),
		lvl,
	)
	logger := zap.New(core, zap.AddCaller())
	closeFn := func() error {
		_ = logger.Sync()
		return rotator.Close()
	}
	return logger, closeFn, nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}

package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide sugared logger. It defaults to a no-op logger so
// packages can log before Init runs (and in tests).
var Log = zap.NewNop().Sugar()

// Init configures the logger for the given environment. Production gets JSON
// at Info level; anything else gets a development console logger at Debug.
func Init(env string) {
	var l *zap.Logger
	var err error
	if env == "production" {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		l, err = cfg.Build()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("logger init: " + err.Error())
	}
	Log = l.Sugar()
}

// Sync flushes buffered log entries. Safe to call at shutdown.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}

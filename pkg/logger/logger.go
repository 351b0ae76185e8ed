// Package logger builds the *zap.SugaredLogger instances threaded through
// the engine, the index, the server and the worker pool. A single factory
// keeps the encoder, level and field conventions consistent across the
// code that embeds the store (cmd/ignite-server and any host application
// importing pkg/ignite directly).
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a SugaredLogger tagged with a "service" field, using a JSON
// encoder in production and a human-readable console encoder when
// IGNITE_ENV=development.
func New(service string) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if os.Getenv("IGNITE_ENV") == "development" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	base, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// A logger that fails to build is a programming error, not a
		// runtime condition callers should have to handle - fall back to
		// a no-op logger rather than propagating an error from New.
		base = zap.NewNop()
	}

	return base.Sugar().With("service", service)
}

// Nop returns a logger that discards everything, for use in tests that
// don't care about log output.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

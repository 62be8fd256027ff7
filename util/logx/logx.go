// Package logx builds the process logger: a *slog.Logger backed by zap.
package logx

import (
	"fmt"
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

func New(env, level string) (*slog.Logger, func(), error) {
	zc := zap.NewDevelopmentConfig()
	if env == "prod" {
		zc = zap.NewProductionConfig()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", level, err)
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)

	zl, err := zc.Build()
	if err != nil {
		return nil, nil, err
	}
	return slog.New(zapslog.NewHandler(zl.Core())), func() { _ = zl.Sync() }, nil
}

// Nop discards everything. Handy in tests.
func Nop() *slog.Logger {
	return slog.New(zapslog.NewHandler(zapcore.NewNopCore()))
}

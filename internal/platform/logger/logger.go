// Package logger builds the application logger on top of zap.
package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a sugared zap logger at the given level.
// Development mode uses the human-readable console encoder.
func New(level string, development bool) (*zap.SugaredLogger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = lvl

	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return zl.Sugar(), nil
}

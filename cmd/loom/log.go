// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/loomui/loom/internal/config"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.LogDev {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}
	zc.Level = level
	l, err := zc.Build()
	if err != nil {
		return nil, errors.Wrap(err, "building logger")
	}
	return l, nil
}

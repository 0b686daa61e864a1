// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while a loop is running.
var loggerPtr atomic.Pointer[zap.Logger]

func init() {
	loggerPtr.Store(zap.NewNop())
}

// SetLogger configures the logger used by every Loop.
// By default nothing is logged. Pass nil to restore the default.
//
// Levels used:
//   - Debug: ignored native events, untranslated drags
//   - Info: lifecycle transitions
//   - Warn: paint failures, errors releasing native resources
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *zap.Logger {
	return loggerPtr.Load()
}

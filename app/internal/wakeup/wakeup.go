// SPDX-License-Identifier: Unlicense OR MIT

// Package wakeup implements a notifier for waking a goroutine
// blocked waiting for native events.
package wakeup

import (
	"github.com/pkg/errors"
)

// ErrClosed is returned by Wait after Close.
var ErrClosed = errors.New("wakeup: notifier closed")

// SPDX-License-Identifier: Unlicense OR MIT

//go:build !unix

package wakeup

import (
	"sync"

	"github.com/pkg/errors"
)

// Notifier wakes a waiting goroutine through a channel.
type Notifier struct {
	c    chan struct{}
	done chan struct{}
	once sync.Once
}

// New returns a Notifier.
func New() (*Notifier, error) {
	return &Notifier{c: make(chan struct{}, 1), done: make(chan struct{})}, nil
}

// Wake wakes up a Wait in progress, or makes the next Wait return
// immediately. It is safe to call from any goroutine.
func (n *Notifier) Wake() {
	select {
	case n.c <- struct{}{}:
	default:
	}
}

// Wait blocks until Wake is called. File descriptors are not
// supported and fd must be negative.
func (n *Notifier) Wait(fd int) (bool, error) {
	if fd >= 0 {
		return false, errors.Errorf("wakeup: waiting on fd %d is not supported", fd)
	}
	select {
	case <-n.c:
		return false, nil
	case <-n.done:
		return false, ErrClosed
	}
}

// Close wakes any Wait in progress.
func (n *Notifier) Close() error {
	n.once.Do(func() { close(n.done) })
	return nil
}

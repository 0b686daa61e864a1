// SPDX-License-Identifier: Unlicense OR MIT

//go:build unix

package wakeup

import (
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Notifier is a self-pipe. Wake writes a byte to the pipe, and
// Wait polls the read end together with an optional other file
// descriptor.
type Notifier struct {
	read, write int

	mu     sync.Mutex
	closed bool
}

// New returns a Notifier backed by a non-blocking pipe.
func New() (*Notifier, error) {
	p := make([]int, 2)
	if err := unix.Pipe(p); err != nil {
		return nil, errors.Wrap(err, "wakeup: pipe")
	}
	for _, fd := range p {
		unix.CloseOnExec(fd)
		if err := unix.SetNonblock(fd, true); err != nil {
			unix.Close(p[0])
			unix.Close(p[1])
			return nil, errors.Wrap(err, "wakeup: set non-blocking")
		}
	}
	return &Notifier{read: p[0], write: p[1]}, nil
}

var oneByte = []byte{0}

// Wake wakes up a Wait in progress, or makes the next Wait return
// immediately. It is safe to call from any goroutine.
func (n *Notifier) Wake() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	// A full pipe already guarantees a wakeup.
	if _, err := unix.Write(n.write, oneByte); err != nil && err != unix.EAGAIN {
		panic(errors.Wrap(err, "wakeup: write to notify pipe"))
	}
}

// Wait blocks until Wake is called or, if fd is not negative, fd
// becomes readable. It reports whether fd is readable. Pending
// wakeups are consumed.
func (n *Notifier) Wait(fd int) (bool, error) {
	n.mu.Lock()
	closed := n.closed
	n.mu.Unlock()
	if closed {
		return false, ErrClosed
	}
	pollfds := []unix.PollFd{
		{Fd: int32(n.read), Events: unix.POLLIN},
	}
	if fd >= 0 {
		pollfds = append(pollfds, unix.PollFd{Fd: int32(fd), Events: unix.POLLIN})
	}
	for {
		_, err := unix.Poll(pollfds, -1)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return false, errors.Wrap(err, "wakeup: poll")
		}
		break
	}
	if pollfds[0].Revents&unix.POLLNVAL != 0 {
		return false, ErrClosed
	}
	if err := n.drain(); err != nil {
		return false, err
	}
	if fd < 0 {
		return false, nil
	}
	ev := pollfds[1].Revents
	if ev&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0 {
		return false, errors.Errorf("wakeup: poll error on fd %d (revents %#x)", fd, ev)
	}
	return ev&unix.POLLIN != 0, nil
}

func (n *Notifier) drain() error {
	// Plenty of room for a backlog of notifications.
	buf := make([]byte, 100)
	for {
		_, err := unix.Read(n.read, buf)
		if err == unix.EAGAIN {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "wakeup: read from notify pipe")
		}
	}
}

// Close wakes any Wait in progress and releases the pipe.
func (n *Notifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return nil
	}
	n.closed = true
	unix.Write(n.write, oneByte)
	err1 := unix.Close(n.write)
	err2 := unix.Close(n.read)
	if err1 != nil {
		return errors.Wrap(err1, "wakeup: close")
	}
	return errors.Wrap(err2, "wakeup: close")
}

// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"time"

	"github.com/loomui/loom/f32"
	"github.com/loomui/loom/io/pointer"
)

const (
	// DefaultDoubleClickTime is the default maximum time between two
	// presses of a multi-click.
	DefaultDoubleClickTime = 250 * time.Millisecond
	// DefaultDoubleClickDistance is the default maximum distance, in
	// pixels along each axis, between two presses of a multi-click.
	DefaultDoubleClickDistance = 5
)

// clickCounter counts consecutive presses of the same button that
// are close in time and space.
type clickCounter struct {
	maxTime time.Duration
	maxDist float32

	count  int
	valid  bool
	window Handle
	button pointer.Button
	when   time.Duration
	where  f32.Point
}

// press records a press and returns its click count.
func (c *clickCounter) press(w Handle, b pointer.Button, when time.Duration, where f32.Point) int {
	if c.valid && c.window == w && c.button == b &&
		when >= c.when && when-c.when <= c.maxTime &&
		abs(where.X-c.where.X) <= c.maxDist && abs(where.Y-c.where.Y) <= c.maxDist {
		c.count++
	} else {
		c.count = 1
	}
	c.valid = true
	c.window = w
	c.button = b
	c.when = when
	c.where = where
	return c.count
}

// current returns the click count of the last press.
func (c *clickCounter) current() int {
	return c.count
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

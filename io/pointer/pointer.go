// SPDX-License-Identifier: Unlicense OR MIT

package pointer

import (
	"time"

	"github.com/loomui/loom/f32"
	"github.com/loomui/loom/io/event"
	"github.com/loomui/loom/io/key"
)

// Event is a mouse event.
type Event struct {
	// Kind is one of the mouse kinds of package event.
	Kind event.Kind
	// Time is when the event was received. The
	// timestamp is relative to an undefined base.
	Time time.Duration
	// Button that was pressed or released, or the button
	// held down during a drag. Zero for other kinds.
	Button Button
	// Clicks is the number of consecutive presses of Button
	// for MouseDown and MouseUp events.
	Clicks int
	// Position is the coordinates of the event in the coordinate
	// space of the receiving window.
	Position f32.Point
	// Scroll is the wheel delta of a MouseWheel event.
	Scroll f32.Point
	// Modifiers is the set of active modifiers when
	// the event occurred.
	Modifiers key.Modifiers
}

// Button is the index of a mouse button. Scroll wheels never
// surface as buttons.
type Button uint8

const (
	// ButtonPrimary is the primary button, usually the left button for a
	// right-handed user.
	ButtonPrimary Button = iota
	// ButtonSecondary is the secondary button, usually the right button for a
	// right-handed user.
	ButtonSecondary
	// ButtonTertiary is the tertiary button, usually the middle button.
	ButtonTertiary
)

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "ButtonPrimary"
	case ButtonSecondary:
		return "ButtonSecondary"
	case ButtonTertiary:
		return "ButtonTertiary"
	default:
		panic("unknown Button")
	}
}

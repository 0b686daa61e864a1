// SPDX-License-Identifier: Unlicense OR MIT

package native

import (
	"github.com/loomui/loom/f32"
	"github.com/loomui/loom/io/key"
	"github.com/loomui/loom/io/pointer"
)

// Native modifier bits, following the X11 core protocol.
const (
	ShiftMask   uint32 = 1 << 0
	LockMask    uint32 = 1 << 1
	ControlMask uint32 = 1 << 2
	Mod1Mask    uint32 = 1 << 3
	Mod2Mask    uint32 = 1 << 4
	Mod3Mask    uint32 = 1 << 5
	Mod4Mask    uint32 = 1 << 6
	Mod5Mask    uint32 = 1 << 7
)

// Native button numbers. Buttons 4 to 7 are not buttons but
// scroll wheel directions.
const (
	Button1 uint32 = 1 + iota // left
	Button2                   // middle
	Button3                   // right
	Button4                   // wheel up
	Button5                   // wheel down
	Button6                   // wheel left
	Button7                   // wheel right
)

// Modifiers converts a native modifier bitfield. Each native bit
// maps to at most one modifier; unknown bits are ignored.
func Modifiers(state uint32) key.Modifiers {
	var m key.Modifiers
	if state&LockMask != 0 {
		m |= key.ModCapsLock
	}
	if state&ShiftMask != 0 {
		m |= key.ModShift
	}
	if state&ControlMask != 0 {
		m |= key.ModCtrl
	}
	if state&Mod1Mask != 0 {
		m |= key.ModAlt
	}
	if state&Mod4Mask != 0 {
		m |= key.ModSuper
	}
	return m
}

// IsScrollWheelButton reports whether button is one of the wheel
// pseudo-buttons.
func IsScrollWheelButton(button uint32) bool {
	return button >= Button4 && button <= Button7
}

// Button converts a native button number. Unknown numbers map to
// the primary button.
func Button(button uint32) pointer.Button {
	switch button {
	case Button2:
		return pointer.ButtonTertiary
	case Button3:
		return pointer.ButtonSecondary
	default:
		return pointer.ButtonPrimary
	}
}

// WheelDelta returns the scroll direction of a wheel pseudo-button
// as a unit vector along one axis.
func WheelDelta(button uint32) f32.Point {
	switch button {
	case Button4:
		return f32.Pt(0, -1)
	case Button5:
		return f32.Pt(0, 1)
	case Button6:
		return f32.Pt(-1, 0)
	case Button7:
		return f32.Pt(1, 0)
	}
	return f32.Point{}
}

// SPDX-License-Identifier: Unlicense OR MIT

// Package key implements key events and modifier masks.
package key

import (
	"strings"
	"time"

	"github.com/loomui/loom/io/event"
)

// Modifiers is the set of modifier keys held down when an event
// occurred. It is derived fresh from every native event.
type Modifiers uint8

const (
	// ModCapsLock is set while caps lock is engaged.
	ModCapsLock Modifiers = 1 << iota
	// ModShift is the shift key.
	ModShift
	// ModCtrl is the control key.
	ModCtrl
	// ModAlt is the option or alt key.
	ModAlt
	// ModSuper is the command, super or "windows" key.
	ModSuper
)

// ModNonSticky is every modifier except caps lock.
const ModNonSticky = ModShift | ModCtrl | ModAlt | ModSuper

// An Event is generated when a key is pressed or released.
type Event struct {
	// Kind is event.KeyDown or event.KeyUp.
	Kind event.Kind
	// Code is the native key code. Its meaning is defined by
	// the windowing system that produced the event.
	Code uint32
	// Modifiers is the set of active modifiers when the key was pressed.
	Modifiers Modifiers
	// Time is when the event was received. The
	// timestamp is relative to an undefined base.
	Time time.Duration
}

// Contain reports whether m contains all modifiers
// in m2.
func (m Modifiers) Contain(m2 Modifiers) bool {
	return m&m2 == m2
}

func (m Modifiers) String() string {
	var strs []string
	if m.Contain(ModCapsLock) {
		strs = append(strs, "ModCapsLock")
	}
	if m.Contain(ModShift) {
		strs = append(strs, "ModShift")
	}
	if m.Contain(ModCtrl) {
		strs = append(strs, "ModCtrl")
	}
	if m.Contain(ModAlt) {
		strs = append(strs, "ModAlt")
	}
	if m.Contain(ModSuper) {
		strs = append(strs, "ModSuper")
	}
	return strings.Join(strs, "|")
}

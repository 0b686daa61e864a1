// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"golang.org/x/exp/slices"

	"github.com/loomui/loom/f32"
	"github.com/loomui/loom/io/pointer"
)

// Registry tracks the open windows of a Loop and the window and
// button of the press currently in progress.
type Registry struct {
	windows map[Handle]*windowState

	pressed struct {
		active bool
		window Handle
		button pointer.Button
	}

	key struct {
		set    bool
		window Handle
	}
}

type windowState struct {
	// bounds is the last known window frame in root coordinates.
	bounds f32.Rectangle
	known  bool
}

// Opened records a successfully created window.
func (r *Registry) Opened(w Handle) {
	if r.windows == nil {
		r.windows = make(map[Handle]*windowState)
	}
	if _, exists := r.windows[w]; exists {
		return
	}
	r.windows[w] = new(windowState)
}

// Closed forgets w and reports whether it was open. A press in
// progress on w is ended and w stops being the key window.
func (r *Registry) Closed(w Handle) bool {
	if _, exists := r.windows[w]; !exists {
		return false
	}
	delete(r.windows, w)
	if r.pressed.active && r.pressed.window == w {
		r.EndPress()
	}
	r.ClearKey(w)
	return true
}

// Count returns the number of open windows.
func (r *Registry) Count() int {
	return len(r.windows)
}

// Contains reports whether w is open.
func (r *Registry) Contains(w Handle) bool {
	_, exists := r.windows[w]
	return exists
}

// Windows returns the open windows in handle order.
func (r *Registry) Windows() []Handle {
	ws := make([]Handle, 0, len(r.windows))
	for w := range r.windows {
		ws = append(ws, w)
	}
	slices.Sort(ws)
	return ws
}

// BeginPress records a button press on w. Subsequent motion is a
// drag addressed to w until EndPress.
func (r *Registry) BeginPress(w Handle, b pointer.Button) {
	r.pressed.active = true
	r.pressed.window = w
	r.pressed.button = b
}

// EndPress ends the press in progress, if any.
func (r *Registry) EndPress() {
	r.pressed.active = false
	r.pressed.window = 0
	r.pressed.button = 0
}

// CurrentDrag returns the window and button of the press in
// progress.
func (r *Registry) CurrentDrag() (Handle, pointer.Button, bool) {
	return r.pressed.window, r.pressed.button, r.pressed.active
}

// SetBounds records the frame of w in root coordinates.
func (r *Registry) SetBounds(w Handle, b f32.Rectangle) {
	if s, ok := r.windows[w]; ok {
		s.bounds = b
		s.known = true
	}
}

// Bounds returns the last frame recorded for w.
func (r *Registry) Bounds(w Handle) (f32.Rectangle, bool) {
	s, ok := r.windows[w]
	if !ok || !s.known {
		return f32.Rectangle{}, false
	}
	return s.bounds, true
}

// SetKey records w as the window holding the keyboard focus.
func (r *Registry) SetKey(w Handle) {
	if !r.Contains(w) {
		return
	}
	r.key.set = true
	r.key.window = w
}

// ClearKey forgets the key window if it is w.
func (r *Registry) ClearKey(w Handle) {
	if r.key.set && r.key.window == w {
		r.key.set = false
		r.key.window = 0
	}
}

// Key returns the window holding the keyboard focus.
func (r *Registry) Key() (Handle, bool) {
	return r.key.window, r.key.set
}

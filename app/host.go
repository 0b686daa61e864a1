// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"github.com/loomui/loom/f32"
	"github.com/loomui/loom/io/key"
	"github.com/loomui/loom/io/pointer"
	"github.com/loomui/loom/io/system"
)

// Host is the application side of a Loop. Its methods are called
// from the loop goroutine and must not block on the loop.
type Host interface {
	// WillFinishStartup and DidFinishStartup are called once, in
	// order, before the first event is read.
	WillFinishStartup()
	DidFinishStartup()

	WillBecomeActive()
	DidBecomeActive()
	WillResignActive()
	DidResignActive()

	// MouseEvent delivers every mouse event except wheel events.
	MouseEvent(w Handle, e pointer.Event)
	// MouseWheelEvent delivers wheel events.
	MouseWheelEvent(w Handle, e pointer.Event)
	KeyEvent(w Handle, e key.Event)

	// Paint draws the dirty rectangle of w into c. The canvas is only
	// valid until Paint returns.
	Paint(w Handle, c Canvas, dirty f32.Rectangle) error

	// WindowFocus reports that w became or stopped being the key
	// window. It follows WillBecomeActive/DidBecomeActive when focus
	// is gained and precedes WillResignActive/DidResignActive when
	// focus is lost.
	WindowFocus(w Handle, focused bool)
	WindowClosed(w Handle)
	WindowResized(w Handle)
	// WindowShouldClose reports whether a user request to close w
	// is honored.
	WindowShouldClose(w Handle) bool

	// ShouldTerminateAfterLastWindowClosed is the policy consulted
	// when no window remains open.
	ShouldTerminateAfterLastWindowClosed() bool
	ShouldTerminate() system.TerminateResponse
	WillTerminate()
}

// BaseHost implements Host with no-op callbacks. Embed it to
// implement only the methods of interest.
//
// Its policy is to close windows on request, and to terminate
// immediately once the last window is closed.
type BaseHost struct{}

var _ Host = BaseHost{}

func (BaseHost) WillFinishStartup()                    {}
func (BaseHost) DidFinishStartup()                     {}
func (BaseHost) WillBecomeActive()                     {}
func (BaseHost) DidBecomeActive()                      {}
func (BaseHost) WillResignActive()                     {}
func (BaseHost) DidResignActive()                      {}
func (BaseHost) MouseEvent(Handle, pointer.Event)      {}
func (BaseHost) MouseWheelEvent(Handle, pointer.Event) {}
func (BaseHost) KeyEvent(Handle, key.Event)            {}
func (BaseHost) WindowFocus(Handle, bool)              {}
func (BaseHost) WindowClosed(Handle)                   {}
func (BaseHost) WindowResized(Handle)                  {}
func (BaseHost) WillTerminate()                        {}

func (BaseHost) Paint(Handle, Canvas, f32.Rectangle) error {
	return nil
}

func (BaseHost) WindowShouldClose(Handle) bool {
	return true
}

func (BaseHost) ShouldTerminateAfterLastWindowClosed() bool {
	return true
}

func (BaseHost) ShouldTerminate() system.TerminateResponse {
	return system.TerminateNow
}

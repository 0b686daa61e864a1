// SPDX-License-Identifier: Unlicense OR MIT

// Package native defines the contract between the event loop and a
// platform window system: the native event variants, the event
// source, and the conversion of native modifier and button codes.
package native

import (
	"time"

	"github.com/pkg/errors"

	"github.com/loomui/loom/f32"
)

// ErrClosed is returned by Source.Next after the source is closed.
var ErrClosed = errors.New("native: source closed")

// Handle identifies a native window. Handles are only ever
// compared; their value has no meaning outside the source.
type Handle uintptr

// Atom is an identifier interned by the window system.
type Atom uint64

// Event is a native event. The concrete types below form a closed
// set; the event loop switches over them exhaustively.
type Event interface {
	// Window the event is addressed to.
	Window() Handle
	isNativeEvent()
}

// Header carries the fields shared by every native event.
type Header struct {
	Win Handle
	// Time is the server timestamp, if the window system
	// provides one.
	Time time.Duration
}

// KeyEvent is a key press or release.
type KeyEvent struct {
	Header
	Press bool
	// Code is the native key code.
	Code uint32
	// State is the native modifier bitfield.
	State uint32
}

// ButtonEvent is a mouse button press or release. Wheel motion is
// reported as presses of the wheel pseudo-buttons.
type ButtonEvent struct {
	Header
	Press  bool
	Button uint32
	State  uint32
	X, Y   float32
}

// MotionEvent is pointer motion.
type MotionEvent struct {
	Header
	State uint32
	X, Y  float32
}

// CrossingEvent is the pointer entering or leaving a window.
type CrossingEvent struct {
	Header
	Enter bool
	State uint32
	X, Y  float32
}

// FocusEvent reports a change of input focus.
type FocusEvent struct {
	Header
	In bool
}

// ExposeEvent asks for a region of a window to be repainted.
type ExposeEvent struct {
	Header
	Rect f32.Rectangle
}

// DestroyEvent reports a window destroyed at the native layer.
type DestroyEvent struct {
	Header
}

// ConfigureEvent reports a change of window position or size.
// Bounds are in root window coordinates.
type ConfigureEvent struct {
	Header
	Bounds f32.Rectangle
}

// ClientMessageEvent is a protocol message sent to a window.
type ClientMessageEvent struct {
	Header
	MessageType Atom
	// Format is the data item size in bits: 8, 16 or 32.
	Format int
	Data   [5]uint64
}

// TaskEvent asks the loop to run a previously recorded task.
type TaskEvent struct {
	Header
	ID uint64
}

// UnknownEvent is a native event of a type the source does not
// translate.
type UnknownEvent struct {
	Header
	Type int
}

// WindowOptions describe a window to create.
type WindowOptions struct {
	Title  string
	Bounds f32.Rectangle
}

// Canvas is a drawing context acquired for one repaint. Release
// must be called exactly once when painting is done.
type Canvas interface {
	Release()
}

// Source is a blocking source of native events for a single
// window system connection. All methods except PostTask are called
// from the event loop goroutine.
type Source interface {
	// Next blocks until an event is available. It never times out.
	Next() (Event, error)
	// CloseToken returns the atom identifying window close requests
	// in client messages.
	CloseToken() Atom
	// NewWindow creates and maps a window.
	NewWindow(opts WindowOptions) (Handle, error)
	// CloseWindow destroys a window. The source later delivers a
	// DestroyEvent for it.
	CloseWindow(h Handle) error
	// BeginPaint acquires a drawing context clipped to r.
	BeginPaint(h Handle, r f32.Rectangle) (Canvas, error)
	// PostTask queues a TaskEvent with the given id. It may be called
	// from any goroutine.
	PostTask(id uint64) error
	// Close releases the connection.
	Close() error
}

// Translator is implemented by sources that can map a position
// between the coordinate spaces of two windows.
type Translator interface {
	Translate(from, to Handle, p f32.Point) (f32.Point, bool)
}

// Coalescer is implemented by sources that can remove already
// queued events of the same type for a window.
type Coalescer interface {
	// NextPending removes and returns the next queued event that
	// is addressed to h and has the same type as like.
	NextPending(h Handle, like Event) (Event, bool)
}

func (h Header) Window() Handle { return h.Win }

func (KeyEvent) isNativeEvent()           {}
func (ButtonEvent) isNativeEvent()        {}
func (MotionEvent) isNativeEvent()        {}
func (CrossingEvent) isNativeEvent()      {}
func (FocusEvent) isNativeEvent()         {}
func (ExposeEvent) isNativeEvent()        {}
func (DestroyEvent) isNativeEvent()       {}
func (ConfigureEvent) isNativeEvent()     {}
func (ClientMessageEvent) isNativeEvent() {}
func (TaskEvent) isNativeEvent()          {}
func (UnknownEvent) isNativeEvent()       {}

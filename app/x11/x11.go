// SPDX-License-Identifier: Unlicense OR MIT

//go:build (linux && !android && !nox11) || freebsd

package x11

/*
#cgo LDFLAGS: -lX11
#include <stdlib.h>
#include <X11/Xlib.h>
#include <X11/Xatom.h>
#include <X11/Xutil.h>
*/
import "C"

import (
	"image"
	"image/color"
	"sync"
	"time"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/loomui/loom/app/internal/native"
	"github.com/loomui/loom/app/internal/wakeup"
	"github.com/loomui/loom/f32"
)

// Default size of windows created with empty bounds.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Display is a connection to an X server. It implements the native
// event source of an app.Loop.
type Display struct {
	x     *C.Display
	xfd   int
	xev   *C.XEvent
	wake  *wakeup.Notifier
	class string

	evDelWindow C.Atom
	windows     map[C.Window]*xwindow

	mu     sync.Mutex
	tasks  []uint64
	closed bool
}

type xwindow struct {
	destroying bool
}

// Option configures a Display.
type Option func(d *Display)

// Class sets the class hint of every window. It identifies the
// application to the window manager.
func Class(name string) Option {
	return func(d *Display) {
		d.class = name
	}
}

// Open connects to the X server named by the DISPLAY environment
// variable.
func Open(opts ...Option) (*Display, error) {
	wake, err := wakeup.New()
	if err != nil {
		return nil, errors.Wrap(err, "x11: open")
	}
	dpy := C.XOpenDisplay(nil)
	if dpy == nil {
		wake.Close()
		return nil, errors.New("x11: cannot connect to the X server")
	}
	d := &Display{
		x:       dpy,
		xfd:     int(C.XConnectionNumber(dpy)),
		xev:     new(C.XEvent),
		wake:    wake,
		windows: make(map[C.Window]*xwindow),
	}
	for _, o := range opts {
		o(d)
	}
	d.evDelWindow = d.atom("WM_DELETE_WINDOW", false)
	return d, nil
}

// atom is a wrapper around XInternAtom. Callers should cache the result
// in order to limit round-trips to the X server.
func (d *Display) atom(name string, onlyIfExists bool) C.Atom {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	flag := C.Bool(C.False)
	if onlyIfExists {
		flag = C.True
	}
	return C.XInternAtom(d.x, cname, flag)
}

// CloseToken implements native.Source.
func (d *Display) CloseToken() native.Atom {
	return native.Atom(d.evDelWindow)
}

// Next implements native.Source.
func (d *Display) Next() (native.Event, error) {
	for {
		d.mu.Lock()
		if d.closed {
			d.mu.Unlock()
			return nil, native.ErrClosed
		}
		if len(d.tasks) > 0 {
			id := d.tasks[0]
			d.tasks = d.tasks[1:]
			d.mu.Unlock()
			return native.TaskEvent{ID: id}, nil
		}
		d.mu.Unlock()
		if C.XPending(d.x) != 0 {
			C.XNextEvent(d.x, d.xev)
			return d.convert(d.xev), nil
		}
		if _, err := d.wake.Wait(d.xfd); err != nil {
			return nil, errors.Wrap(err, "x11: wait for events")
		}
	}
}

func xtime(t C.Time) time.Duration {
	return time.Duration(t) * time.Millisecond
}

func (d *Display) convert(xev *C.XEvent) native.Event {
	switch typ := (*C.XAnyEvent)(unsafe.Pointer(xev))._type; typ {
	case C.KeyPress, C.KeyRelease:
		e := (*C.XKeyEvent)(unsafe.Pointer(xev))
		return native.KeyEvent{
			Header: native.Header{Win: native.Handle(e.window), Time: xtime(e.time)},
			Press:  typ == C.KeyPress,
			Code:   uint32(e.keycode),
			State:  uint32(e.state),
		}
	case C.ButtonPress, C.ButtonRelease:
		e := (*C.XButtonEvent)(unsafe.Pointer(xev))
		return native.ButtonEvent{
			Header: native.Header{Win: native.Handle(e.window), Time: xtime(e.time)},
			Press:  typ == C.ButtonPress,
			Button: uint32(e.button),
			State:  uint32(e.state),
			X:      float32(e.x),
			Y:      float32(e.y),
		}
	case C.MotionNotify:
		e := (*C.XMotionEvent)(unsafe.Pointer(xev))
		return native.MotionEvent{
			Header: native.Header{Win: native.Handle(e.window), Time: xtime(e.time)},
			State:  uint32(e.state),
			X:      float32(e.x),
			Y:      float32(e.y),
		}
	case C.EnterNotify, C.LeaveNotify:
		e := (*C.XCrossingEvent)(unsafe.Pointer(xev))
		return native.CrossingEvent{
			Header: native.Header{Win: native.Handle(e.window), Time: xtime(e.time)},
			Enter:  typ == C.EnterNotify,
			State:  uint32(e.state),
			X:      float32(e.x),
			Y:      float32(e.y),
		}
	case C.FocusIn, C.FocusOut:
		e := (*C.XFocusChangeEvent)(unsafe.Pointer(xev))
		return native.FocusEvent{
			Header: native.Header{Win: native.Handle(e.window)},
			In:     typ == C.FocusIn,
		}
	case C.Expose:
		e := (*C.XExposeEvent)(unsafe.Pointer(xev))
		return native.ExposeEvent{
			Header: native.Header{Win: native.Handle(e.window)},
			Rect:   f32.Rect(float32(e.x), float32(e.y), float32(e.x+e.width), float32(e.y+e.height)),
		}
	case C.DestroyNotify:
		e := (*C.XDestroyWindowEvent)(unsafe.Pointer(xev))
		delete(d.windows, e.window)
		return native.DestroyEvent{Header: native.Header{Win: native.Handle(e.window)}}
	case C.ConfigureNotify:
		e := (*C.XConfigureEvent)(unsafe.Pointer(xev))
		origin := d.rootOrigin(e.window, f32.Pt(float32(e.x), float32(e.y)))
		return native.ConfigureEvent{
			Header: native.Header{Win: native.Handle(e.window)},
			Bounds: f32.Rectangle{Min: origin, Max: origin.Add(f32.Pt(float32(e.width), float32(e.height)))},
		}
	case C.ClientMessage:
		e := (*C.XClientMessageEvent)(unsafe.Pointer(xev))
		data := (*[5]C.long)(unsafe.Pointer(&e.data))
		ev := native.ClientMessageEvent{
			Header:      native.Header{Win: native.Handle(e.window)},
			MessageType: native.Atom(e.message_type),
			Format:      int(e.format),
		}
		for i, v := range data {
			ev.Data[i] = uint64(v)
		}
		return ev
	default:
		return native.UnknownEvent{
			Header: native.Header{Win: native.Handle((*C.XAnyEvent)(unsafe.Pointer(xev)).window)},
			Type:   int(typ),
		}
	}
}

// rootOrigin returns the position of w's origin in root window
// coordinates, or fallback if the server cannot translate it.
func (d *Display) rootOrigin(w C.Window, fallback f32.Point) f32.Point {
	var x, y C.int
	var child C.Window
	if C.XTranslateCoordinates(d.x, w, C.XDefaultRootWindow(d.x), 0, 0, &x, &y, &child) == C.False {
		return fallback
	}
	return f32.Pt(float32(x), float32(y))
}

// NextPending implements native.Coalescer for expose and configure
// events.
func (d *Display) NextPending(h native.Handle, like native.Event) (native.Event, bool) {
	var typ C.int
	switch like.(type) {
	case native.ExposeEvent:
		typ = C.Expose
	case native.ConfigureEvent:
		typ = C.ConfigureNotify
	default:
		return nil, false
	}
	if C.XCheckTypedWindowEvent(d.x, C.Window(h), typ, d.xev) == C.False {
		return nil, false
	}
	return d.convert(d.xev), true
}

// Translate implements native.Translator.
func (d *Display) Translate(from, to native.Handle, p f32.Point) (f32.Point, bool) {
	var x, y C.int
	var child C.Window
	ok := C.XTranslateCoordinates(d.x, C.Window(from), C.Window(to), C.int(p.X), C.int(p.Y), &x, &y, &child)
	if ok == C.False {
		return p, false
	}
	return f32.Pt(float32(x), float32(y)), true
}

// NewWindow implements native.Source.
func (d *Display) NewWindow(opts native.WindowOptions) (native.Handle, error) {
	b := opts.Bounds.Canon()
	if b.Empty() {
		b = f32.Rectangle{Min: b.Min, Max: b.Min.Add(f32.Pt(DefaultWidth, DefaultHeight))}
	}
	swa := C.XSetWindowAttributes{
		event_mask: C.ExposureMask | C.FocusChangeMask | // update
			C.KeyPressMask | C.KeyReleaseMask | // keyboard
			C.ButtonPressMask | C.ButtonReleaseMask | // mouse clicks
			C.PointerMotionMask | C.EnterWindowMask | C.LeaveWindowMask | // mouse movement
			C.StructureNotifyMask, // resize and destroy
		background_pixmap: C.None,
		override_redirect: C.False,
	}
	win := C.XCreateWindow(d.x, C.XDefaultRootWindow(d.x),
		C.int(b.Min.X), C.int(b.Min.Y), C.uint(b.Dx()), C.uint(b.Dy()),
		0, C.CopyFromParent, C.InputOutput, nil,
		C.CWEventMask|C.CWBackPixmap|C.CWOverrideRedirect, &swa)
	if win == 0 {
		return 0, errors.New("x11: cannot create window")
	}

	var hints C.XWMHints
	hints.input = C.True
	hints.flags = C.InputHint
	C.XSetWMHints(d.x, win, &hints)

	if d.class != "" {
		cclass := C.CString(d.class)
		defer C.free(unsafe.Pointer(cclass))
		hint := C.XClassHint{res_name: cclass, res_class: cclass}
		C.XSetClassHint(d.x, win, &hint)
	}

	ctitle := C.CString(opts.Title)
	defer C.free(unsafe.Pointer(ctitle))
	C.XStoreName(d.x, win, ctitle)
	// set _NET_WM_NAME as well for UTF-8 support in window title.
	C.XSetTextProperty(d.x, win,
		&C.XTextProperty{
			value:    (*C.uchar)(unsafe.Pointer(ctitle)),
			encoding: d.atom("UTF8_STRING", false),
			format:   8,
			nitems:   C.ulong(len(opts.Title)),
		},
		d.atom("_NET_WM_NAME", false))

	C.XSetWMProtocols(d.x, win, &d.evDelWindow, 1)
	C.XMapWindow(d.x, win)
	C.XFlush(d.x)
	d.windows[win] = new(xwindow)
	return native.Handle(win), nil
}

// CloseWindow implements native.Source.
func (d *Display) CloseWindow(h native.Handle) error {
	w, ok := d.windows[C.Window(h)]
	if !ok || w.destroying {
		return errors.Errorf("x11: no window %#x", uintptr(h))
	}
	w.destroying = true
	C.XDestroyWindow(d.x, C.Window(h))
	C.XFlush(d.x)
	return nil
}

// BeginPaint implements native.Source. The returned Canvas is a
// *Canvas clipped to r.
func (d *Display) BeginPaint(h native.Handle, r f32.Rectangle) (native.Canvas, error) {
	win := C.Window(h)
	if _, ok := d.windows[win]; !ok {
		return nil, errors.Errorf("x11: no window %#x", uintptr(h))
	}
	gc := C.XCreateGC(d.x, C.Drawable(win), 0, nil)
	if gc == nil {
		return nil, errors.New("x11: cannot create graphics context")
	}
	r = r.Canon()
	clip := C.XRectangle{
		x:      C.short(r.Min.X),
		y:      C.short(r.Min.Y),
		width:  C.ushort(r.Dx()),
		height: C.ushort(r.Dy()),
	}
	C.XSetClipRectangles(d.x, gc, 0, 0, &clip, 1, C.Unsorted)
	return &Canvas{d: d, win: win, gc: gc}, nil
}

// PostTask implements native.Source. It is safe to call from any
// goroutine.
func (d *Display) PostTask(id uint64) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return native.ErrClosed
	}
	d.tasks = append(d.tasks, id)
	d.mu.Unlock()
	d.wake.Wake()
	return nil
}

// Close implements native.Source. Remaining windows are destroyed,
// except those already being destroyed by CloseWindow.
func (d *Display) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.tasks = nil
	d.mu.Unlock()
	for win, w := range d.windows {
		if !w.destroying {
			C.XDestroyWindow(d.x, win)
		}
		delete(d.windows, win)
	}
	C.XCloseDisplay(d.x)
	return d.wake.Close()
}

// Canvas draws into a window with an Xlib graphics context.
type Canvas struct {
	d   *Display
	win C.Window
	gc  C.GC
}

// FillRect fills r with a solid color. The window visual is
// assumed to be 24-bit TrueColor.
func (c *Canvas) FillRect(r image.Rectangle, col color.Color) error {
	cr, cg, cb, _ := col.RGBA()
	pixel := C.ulong(cr>>8)<<16 | C.ulong(cg>>8)<<8 | C.ulong(cb>>8)
	C.XSetForeground(c.d.x, c.gc, pixel)
	C.XFillRectangle(c.d.x, C.Drawable(c.win), c.gc,
		C.int(r.Min.X), C.int(r.Min.Y), C.uint(r.Dx()), C.uint(r.Dy()))
	return nil
}

// Release frees the graphics context and flushes drawing to the
// server.
func (c *Canvas) Release() {
	if c.gc == nil {
		return
	}
	C.XFreeGC(c.d.x, c.gc)
	C.XFlush(c.d.x)
	c.gc = nil
}

// SPDX-License-Identifier: Unlicense OR MIT

// Package headless implements a native event source without a
// window system. Windows are software surfaces, and input is
// injected from scripts or tests.
package headless

import (
	"image"
	"reflect"
	"sync"

	"github.com/gogpu/gg"
	"github.com/pkg/errors"

	"github.com/loomui/loom/app/internal/native"
	"github.com/loomui/loom/app/internal/wakeup"
	"github.com/loomui/loom/f32"
)

// CloseToken is the atom identifying close requests in client
// messages delivered by a Display.
const CloseToken native.Atom = 1

// Default size of windows created with empty bounds.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// Display is a headless native.Source. Windows are backed by
// gg drawing contexts.
type Display struct {
	wake *wakeup.Notifier
	size image.Point

	mu      sync.Mutex
	queue   []native.Event
	windows map[native.Handle]*window
	next    native.Handle
	closed  bool
}

type window struct {
	title  string
	bounds f32.Rectangle
	ctx    *gg.Context
}

// Option configures a Display.
type Option func(d *Display)

// Size sets the size of windows created with empty bounds.
func Size(width, height int) Option {
	return func(d *Display) {
		d.size = image.Pt(width, height)
	}
}

// Open returns a new Display.
func Open(opts ...Option) (*Display, error) {
	wake, err := wakeup.New()
	if err != nil {
		return nil, errors.Wrap(err, "headless: open")
	}
	d := &Display{
		wake:    wake,
		size:    image.Pt(DefaultWidth, DefaultHeight),
		windows: make(map[native.Handle]*window),
	}
	for _, o := range opts {
		o(d)
	}
	return d, nil
}

// post queues events and wakes up Next.
func (d *Display) post(evts ...native.Event) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return native.ErrClosed
	}
	d.queue = append(d.queue, evts...)
	d.mu.Unlock()
	d.wake.Wake()
	return nil
}

// Next implements native.Source.
func (d *Display) Next() (native.Event, error) {
	for {
		d.mu.Lock()
		if d.closed {
			d.mu.Unlock()
			return nil, native.ErrClosed
		}
		if len(d.queue) > 0 {
			e := d.queue[0]
			d.queue = d.queue[1:]
			d.mu.Unlock()
			return e, nil
		}
		d.mu.Unlock()
		if _, err := d.wake.Wait(-1); err != nil {
			d.mu.Lock()
			closed := d.closed
			d.mu.Unlock()
			if closed || errors.Is(err, wakeup.ErrClosed) {
				return nil, native.ErrClosed
			}
			return nil, errors.Wrap(err, "headless: wait for events")
		}
	}
}

// NextPending implements native.Coalescer.
func (d *Display) NextPending(h native.Handle, like native.Event) (native.Event, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t := reflect.TypeOf(like)
	for i, e := range d.queue {
		if e.Window() == h && reflect.TypeOf(e) == t {
			d.queue = append(d.queue[:i], d.queue[i+1:]...)
			return e, true
		}
	}
	return nil, false
}

// Pending returns the number of queued events.
func (d *Display) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

// CloseToken implements native.Source.
func (d *Display) CloseToken() native.Atom {
	return CloseToken
}

// NewWindow implements native.Source. A mapped window receives a
// configure and a full expose event.
func (d *Display) NewWindow(opts native.WindowOptions) (native.Handle, error) {
	b := opts.Bounds.Canon()
	if b.Empty() {
		b = f32.Rectangle{Min: b.Min, Max: b.Min.Add(f32.Pt(float32(d.size.X), float32(d.size.Y)))}
	}
	width, height := int(b.Dx()), int(b.Dy())
	if width <= 0 || height <= 0 {
		return 0, errors.Errorf("headless: invalid window size %dx%d", width, height)
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return 0, native.ErrClosed
	}
	d.next++
	h := d.next
	d.windows[h] = &window{
		title:  opts.Title,
		bounds: b,
		ctx:    gg.NewContext(width, height),
	}
	d.mu.Unlock()
	err := d.post(
		native.ConfigureEvent{Header: native.Header{Win: h}, Bounds: b},
		native.ExposeEvent{Header: native.Header{Win: h}, Rect: f32.Rect(0, 0, b.Dx(), b.Dy())},
	)
	return h, err
}

// CloseWindow implements native.Source.
func (d *Display) CloseWindow(h native.Handle) error {
	if err := d.destroy(h); err != nil {
		return err
	}
	return d.post(native.DestroyEvent{Header: native.Header{Win: h}})
}

func (d *Display) destroy(h native.Handle) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.windows[h]
	if !ok {
		return errors.Errorf("headless: no window %d", h)
	}
	delete(d.windows, h)
	return w.ctx.Close()
}

// Title returns the title of window h.
func (d *Display) Title(h native.Handle) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.windows[h]
	if !ok {
		return "", false
	}
	return w.title, true
}

// Bounds returns the frame of window h.
func (d *Display) Bounds(h native.Handle) (f32.Rectangle, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.windows[h]
	if !ok {
		return f32.Rectangle{}, false
	}
	return w.bounds, true
}

// Resize moves and resizes window h to b and delivers a configure
// event and a full expose event.
func (d *Display) Resize(h native.Handle, b f32.Rectangle) error {
	b = b.Canon()
	d.mu.Lock()
	w, ok := d.windows[h]
	if !ok {
		d.mu.Unlock()
		return errors.Errorf("headless: no window %d", h)
	}
	if err := w.ctx.Resize(int(b.Dx()), int(b.Dy())); err != nil {
		d.mu.Unlock()
		return errors.Wrapf(err, "headless: resize window %d", h)
	}
	w.bounds = b
	d.mu.Unlock()
	return d.post(
		native.ConfigureEvent{Header: native.Header{Win: h}, Bounds: b},
		native.ExposeEvent{Header: native.Header{Win: h}, Rect: f32.Rect(0, 0, b.Dx(), b.Dy())},
	)
}

// Translate implements native.Translator.
func (d *Display) Translate(from, to native.Handle, p f32.Point) (f32.Point, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fw, ok1 := d.windows[from]
	tw, ok2 := d.windows[to]
	if !ok1 || !ok2 {
		return p, false
	}
	return p.Add(fw.bounds.Min).Sub(tw.bounds.Min), true
}

// BeginPaint implements native.Source. The returned Canvas is a
// *Canvas.
func (d *Display) BeginPaint(h native.Handle, r f32.Rectangle) (native.Canvas, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.windows[h]
	if !ok {
		return nil, errors.Errorf("headless: no window %d", h)
	}
	r = r.Canon()
	w.ctx.Push()
	w.ctx.ClipRect(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	return &Canvas{ctx: w.ctx, dirty: r}, nil
}

// Snapshot returns the current contents of window h.
func (d *Display) Snapshot(h native.Handle) (image.Image, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.windows[h]
	if !ok {
		return nil, errors.Errorf("headless: no window %d", h)
	}
	return w.ctx.Image(), nil
}

// PostTask implements native.Source.
func (d *Display) PostTask(id uint64) error {
	return d.post(native.TaskEvent{ID: id})
}

// Close implements native.Source. Close releases every window
// surface and wakes up a blocked Next.
func (d *Display) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	var first error
	for h, w := range d.windows {
		if err := w.ctx.Close(); err != nil && first == nil {
			first = errors.Wrapf(err, "headless: close window %d", h)
		}
		delete(d.windows, h)
	}
	d.queue = nil
	d.mu.Unlock()
	if err := d.wake.Close(); err != nil && first == nil {
		first = err
	}
	return first
}

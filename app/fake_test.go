// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/loomui/loom/app/internal/native"
	"github.com/loomui/loom/f32"
	"github.com/loomui/loom/io/key"
	"github.com/loomui/loom/io/pointer"
	"github.com/loomui/loom/io/system"
)

const testCloseToken native.Atom = 0x1d

// fakeSource is a scripted native.Source. Next returns io.EOF once
// the queue is drained.
type fakeSource struct {
	mu       sync.Mutex
	queue    []native.Event
	next     native.Handle
	closed   int
	closes   []native.Handle
	canvases []*fakeCanvas
	paintErr error
}

type fakeCanvas struct {
	src      *fakeSource
	w        native.Handle
	rect     f32.Rectangle
	released int
	// sourceOpen records whether the source was still open at the
	// first Release.
	sourceOpen bool
}

func (c *fakeCanvas) Release() {
	if c.released == 0 {
		c.sourceOpen = c.src.closed == 0
	}
	c.released++
}

func (s *fakeSource) push(evts ...native.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, evts...)
}

func (s *fakeSource) Next() (native.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return nil, io.EOF
	}
	e := s.queue[0]
	s.queue = s.queue[1:]
	return e, nil
}

func (s *fakeSource) NextPending(h native.Handle, like native.Event) (native.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.queue {
		if e.Window() == h && fmt.Sprintf("%T", e) == fmt.Sprintf("%T", like) {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			return e, true
		}
	}
	return nil, false
}

func (s *fakeSource) CloseToken() native.Atom { return testCloseToken }

func (s *fakeSource) NewWindow(opts native.WindowOptions) (native.Handle, error) {
	s.next++
	return s.next, nil
}

func (s *fakeSource) CloseWindow(h native.Handle) error {
	s.closes = append(s.closes, h)
	s.push(native.DestroyEvent{Header: native.Header{Win: h}})
	return nil
}

func (s *fakeSource) BeginPaint(h native.Handle, r f32.Rectangle) (native.Canvas, error) {
	if s.paintErr != nil {
		return nil, s.paintErr
	}
	c := &fakeCanvas{src: s, w: h, rect: r}
	s.canvases = append(s.canvases, c)
	return c, nil
}

func (s *fakeSource) PostTask(id uint64) error {
	s.push(native.TaskEvent{ID: id})
	return nil
}

func (s *fakeSource) Close() error {
	s.closed++
	return nil
}

// translatingSource adds a fixed offset between any two windows.
type translatingSource struct {
	*fakeSource
	offset f32.Point
}

func (s translatingSource) Translate(from, to native.Handle, p f32.Point) (f32.Point, bool) {
	return p.Add(s.offset), true
}

type mouseCall struct {
	w native.Handle
	e pointer.Event
}

// recordingHost records the callbacks it receives.
type recordingHost struct {
	calls  []string
	mouse  []mouseCall
	wheel  []mouseCall
	keys   []key.Event
	dirty  []f32.Rectangle
	closed []native.Handle
	focus  []focusCall

	terminateAfterLast bool
	response           system.TerminateResponse
	refuseClose        bool
	paintErr           error
	paintPanic         bool

	onShouldTerminate func()
	onPaint           func()
}

type focusCall struct {
	w       native.Handle
	focused bool
}

func (h *recordingHost) record(c string) { h.calls = append(h.calls, c) }

func (h *recordingHost) WillFinishStartup() { h.record("WillFinishStartup") }
func (h *recordingHost) DidFinishStartup()  { h.record("DidFinishStartup") }
func (h *recordingHost) WillBecomeActive()  { h.record("WillBecomeActive") }
func (h *recordingHost) DidBecomeActive()   { h.record("DidBecomeActive") }
func (h *recordingHost) WillResignActive()  { h.record("WillResignActive") }
func (h *recordingHost) DidResignActive()   { h.record("DidResignActive") }
func (h *recordingHost) WillTerminate()     { h.record("WillTerminate") }

func (h *recordingHost) MouseEvent(w native.Handle, e pointer.Event) {
	h.mouse = append(h.mouse, mouseCall{w, e})
}

func (h *recordingHost) MouseWheelEvent(w native.Handle, e pointer.Event) {
	h.wheel = append(h.wheel, mouseCall{w, e})
}

func (h *recordingHost) KeyEvent(w native.Handle, e key.Event) {
	h.keys = append(h.keys, e)
}

func (h *recordingHost) Paint(w native.Handle, c native.Canvas, dirty f32.Rectangle) error {
	h.record("Paint")
	h.dirty = append(h.dirty, dirty)
	if h.onPaint != nil {
		h.onPaint()
	}
	if h.paintPanic {
		panic("paint")
	}
	return h.paintErr
}

func (h *recordingHost) WindowFocus(w native.Handle, focused bool) {
	h.record("WindowFocus")
	h.focus = append(h.focus, focusCall{w, focused})
}

func (h *recordingHost) WindowClosed(w native.Handle) {
	h.record("WindowClosed")
	h.closed = append(h.closed, w)
}

func (h *recordingHost) WindowResized(w native.Handle) { h.record("WindowResized") }

func (h *recordingHost) WindowShouldClose(w native.Handle) bool {
	h.record("WindowShouldClose")
	return !h.refuseClose
}

func (h *recordingHost) ShouldTerminateAfterLastWindowClosed() bool {
	return h.terminateAfterLast
}

func (h *recordingHost) ShouldTerminate() system.TerminateResponse {
	h.record("ShouldTerminate")
	if h.onShouldTerminate != nil {
		h.onShouldTerminate()
	}
	return h.response
}

func (h *recordingHost) count(call string) int {
	n := 0
	for _, c := range h.calls {
		if c == call {
			n++
		}
	}
	return n
}

// newTestLoop returns a started loop with a frozen clock.
func newTestLoop(t *testing.T, h Host, opts ...Option) (*Loop, *fakeSource) {
	t.Helper()
	src := new(fakeSource)
	l := newStartedLoop(src, h, opts...)
	return l, src
}

func newStartedLoop(src Source, h Host, opts ...Option) *Loop {
	clock := time.Unix(1000, 0)
	opts = append([]Option{WithClock(func() time.Time { return clock })}, opts...)
	l := NewLoop(src, h, opts...)
	l.epoch = clock
	l.life.start()
	return l
}

func openWindow(t *testing.T, l *Loop, bounds f32.Rectangle) native.Handle {
	t.Helper()
	w, err := l.OpenWindow(native.WindowOptions{Bounds: bounds})
	if err != nil {
		t.Fatal(err)
	}
	return w
}

// drain dispatches queued events until the source is empty or the
// loop stops.
func drain(l *Loop, src *fakeSource) {
	for l.life.running {
		e, err := src.Next()
		if errors.Is(err, io.EOF) {
			return
		}
		l.dispatch(e)
	}
}

func btn(w native.Handle, press bool, b uint32, x, y float32, state uint32) native.ButtonEvent {
	return native.ButtonEvent{Header: native.Header{Win: w}, Press: press, Button: b, X: x, Y: y, State: state}
}

func motion(w native.Handle, x, y float32) native.MotionEvent {
	return native.MotionEvent{Header: native.Header{Win: w}, X: x, Y: y}
}

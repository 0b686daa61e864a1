// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/loomui/loom/app/internal/native"
	"github.com/loomui/loom/f32"
	"github.com/loomui/loom/io/event"
	"github.com/loomui/loom/io/key"
	"github.com/loomui/loom/io/pointer"
	"github.com/loomui/loom/io/system"
)

// Loop reads native events from a Source and delivers them to a
// Host. A Loop is not safe for concurrent use; only Invoke may be
// called from other goroutines.
type Loop struct {
	src  native.Source
	host Host

	closeToken native.Atom

	reg    Registry
	life   lifecycle
	clicks clickCounter
	tasks  taskTable

	now   func() time.Time
	epoch time.Time
}

// Option configures a Loop.
type Option func(l *Loop)

// DoubleClick sets the maximum time and distance between presses
// counted as one multi-click. A zero maxTime disables click
// counting and every mouse event reports zero clicks.
func DoubleClick(maxTime time.Duration, maxDist float32) Option {
	return func(l *Loop) {
		l.clicks.maxTime = maxTime
		l.clicks.maxDist = maxDist
	}
}

// WithClock sets the clock used to time stamp native events that
// carry no time of their own.
func WithClock(now func() time.Time) Option {
	return func(l *Loop) {
		l.now = now
	}
}

// NewLoop returns a loop reading from src. The loop owns src and
// closes it when the application terminates.
func NewLoop(src Source, host Host, opts ...Option) *Loop {
	l := &Loop{
		src:        src,
		host:       host,
		closeToken: src.CloseToken(),
		now:        time.Now,
	}
	l.clicks.maxTime = DefaultDoubleClickTime
	l.clicks.maxDist = DefaultDoubleClickDistance
	for _, o := range opts {
		o(l)
	}
	return l
}

// Stage returns the lifecycle stage of the loop.
func (l *Loop) Stage() system.Stage {
	return l.life.stage()
}

// Running reports whether the loop is running, including while
// a termination is awaiting confirmation.
func (l *Loop) Running() bool {
	return l.life.running
}

// AwaitingTermination reports whether a deferred termination is
// waiting for MayTerminateNow.
func (l *Loop) AwaitingTermination() bool {
	return l.life.awaiting
}

// WindowCount returns the number of open windows.
func (l *Loop) WindowCount() int {
	return l.reg.Count()
}

// Windows returns the open windows.
func (l *Loop) Windows() []Handle {
	return l.reg.Windows()
}

// OpenWindow creates a native window.
func (l *Loop) OpenWindow(opts WindowOptions) (Handle, error) {
	if l.life.terminated {
		return 0, errors.New("app: loop terminated")
	}
	w, err := l.src.NewWindow(opts)
	if err != nil {
		return 0, errors.Wrap(err, "app: open window")
	}
	l.reg.Opened(w)
	if !opts.Bounds.Empty() {
		l.reg.SetBounds(w, opts.Bounds)
	}
	return w, nil
}

// CloseWindow asks the window system to destroy w. Host.WindowClosed
// is called once the window is gone.
func (l *Loop) CloseWindow(w Handle) error {
	if !l.reg.Contains(w) {
		return errors.Errorf("app: window %#x is not open", uintptr(w))
	}
	return errors.Wrap(l.src.CloseWindow(w), "app: close window")
}

// Invoke arranges for f to be called on the loop goroutine. It is
// safe to call from any goroutine.
func (l *Loop) Invoke(f func()) error {
	if f == nil {
		panic("app: nil task")
	}
	id := l.tasks.record(f)
	if err := l.src.PostTask(id); err != nil {
		l.tasks.take(id)
		return errors.Wrap(err, "app: post task")
	}
	return nil
}

// Run starts the application and processes events until it
// terminates. Run returns nil after the terminate sequence, or the
// error that made the native source fail.
func (l *Loop) Run() error {
	if l.life.running || l.life.terminated {
		return errors.New("app: loop already started")
	}
	l.epoch = l.now()
	l.life.start()
	l.host.WillFinishStartup()
	l.host.DidFinishStartup()
	if l.reg.Count() == 0 && l.host.ShouldTerminateAfterLastWindowClosed() {
		l.AttemptTerminate()
	}
	for l.life.running {
		e, err := l.src.Next()
		if err != nil {
			l.life.stop()
			if cerr := l.src.Close(); cerr != nil {
				Logger().Warn("closing native source", zap.Error(cerr))
			}
			return errors.Wrap(err, "app: read native event")
		}
		l.dispatch(e)
	}
	// Closed only after the terminating dispatch has returned; Paint
	// may have been holding a canvas.
	if err := l.src.Close(); err != nil {
		Logger().Warn("closing native source", zap.Error(err))
	}
	return nil
}

// AttemptTerminate asks the host whether the application should
// terminate and acts on the answer. It has no effect while a
// deferred termination is pending.
func (l *Loop) AttemptTerminate() {
	if !l.life.running || l.life.awaiting {
		return
	}
	switch r := l.host.ShouldTerminate(); r {
	case system.TerminateCancel:
		Logger().Info("termination canceled")
	case system.TerminateDefer:
		Logger().Info("termination deferred")
		l.life.deferTermination()
	default:
		l.terminate()
	}
}

// MayTerminateNow completes a termination deferred by the host.
// It has no effect unless a termination is pending.
func (l *Loop) MayTerminateNow(terminate bool) {
	if !l.life.resume() {
		return
	}
	if terminate {
		l.terminate()
	} else {
		Logger().Info("deferred termination canceled")
	}
}

func (l *Loop) terminate() {
	if !l.life.stop() {
		return
	}
	Logger().Info("terminating", zap.Int("windows", l.reg.Count()))
	l.host.WillTerminate()
	for _, w := range l.reg.Windows() {
		if err := l.src.CloseWindow(w); err != nil {
			Logger().Warn("closing window", zap.Uintptr("window", uintptr(w)), zap.Error(err))
		}
		l.reg.Closed(w)
		l.host.WindowClosed(w)
	}
}

func (l *Loop) dispatch(e native.Event) {
	switch e := e.(type) {
	case native.KeyEvent:
		l.key(e)
	case native.ButtonEvent:
		if e.Press {
			l.press(e)
		} else {
			l.release(e)
		}
	case native.MotionEvent:
		l.motion(e)
	case native.CrossingEvent:
		kind := event.MouseExited
		if e.Enter {
			kind = event.MouseEntered
		}
		if !l.known(e) {
			return
		}
		l.host.MouseEvent(e.Win, pointer.Event{
			Kind:      kind,
			Time:      l.timestamp(e.Time),
			Position:  f32.Pt(e.X, e.Y),
			Modifiers: native.Modifiers(e.State),
		})
	case native.FocusEvent:
		if e.In {
			l.focusIn(e.Win)
		} else {
			l.focusOut(e.Win)
		}
	case native.ExposeEvent:
		l.expose(e)
	case native.DestroyEvent:
		l.destroyed(e.Win)
	case native.ConfigureEvent:
		l.configure(e)
	case native.ClientMessageEvent:
		l.clientMessage(e)
	case native.TaskEvent:
		if f := l.tasks.take(e.ID); f != nil {
			f()
		}
	case native.UnknownEvent:
		Logger().Debug("ignoring native event", zap.Int("type", e.Type))
	default:
		Logger().Debug("ignoring native event", zap.String("type", fmt.Sprintf("%T", e)))
	}
}

// known reports whether the window of e is open, and logs events
// addressed to other windows.
func (l *Loop) known(e native.Event) bool {
	if l.reg.Contains(e.Window()) {
		return true
	}
	Logger().Debug("event for unknown window",
		zap.String("type", fmt.Sprintf("%T", e)), zap.Uintptr("window", uintptr(e.Window())))
	return false
}

func (l *Loop) focusIn(w Handle) {
	l.host.WillBecomeActive()
	l.host.DidBecomeActive()
	if l.reg.Contains(w) {
		l.host.WindowFocus(w, true)
		l.reg.SetKey(w)
	}
}

func (l *Loop) focusOut(w Handle) {
	if l.reg.Contains(w) {
		l.host.WindowFocus(w, false)
	}
	l.reg.ClearKey(w)
	l.host.WillResignActive()
	l.host.DidResignActive()
}

func (l *Loop) key(e native.KeyEvent) {
	if !l.known(e) {
		return
	}
	kind := event.KeyUp
	if e.Press {
		kind = event.KeyDown
	}
	l.host.KeyEvent(e.Win, key.Event{
		Kind:      kind,
		Code:      e.Code,
		Modifiers: native.Modifiers(e.State),
		Time:      l.timestamp(e.Time),
	})
}

func (l *Loop) press(e native.ButtonEvent) {
	if !l.known(e) {
		return
	}
	// A press in another window takes the focus before the window
	// manager reports it.
	if k, ok := l.reg.Key(); ok && k != e.Win {
		l.focusOut(k)
	}
	mods := native.Modifiers(e.State)
	pos := f32.Pt(e.X, e.Y)
	when := l.timestamp(e.Time)
	if native.IsScrollWheelButton(e.Button) {
		l.host.MouseWheelEvent(e.Win, pointer.Event{
			Kind:      event.MouseWheel,
			Time:      when,
			Position:  pos,
			Scroll:    native.WheelDelta(e.Button),
			Modifiers: mods,
		})
		return
	}
	btn := native.Button(e.Button)
	l.reg.BeginPress(e.Win, btn)
	l.host.MouseEvent(e.Win, pointer.Event{
		Kind:      event.MouseDown,
		Time:      when,
		Button:    btn,
		Clicks:    l.countClick(e.Win, btn, when, pos),
		Position:  pos,
		Modifiers: mods,
	})
}

func (l *Loop) release(e native.ButtonEvent) {
	if native.IsScrollWheelButton(e.Button) {
		return
	}
	l.reg.EndPress()
	if !l.known(e) {
		return
	}
	l.host.MouseEvent(e.Win, pointer.Event{
		Kind:      event.MouseUp,
		Time:      l.timestamp(e.Time),
		Button:    native.Button(e.Button),
		Clicks:    l.clickCount(),
		Position:  f32.Pt(e.X, e.Y),
		Modifiers: native.Modifiers(e.State),
	})
}

func (l *Loop) motion(e native.MotionEvent) {
	mods := native.Modifiers(e.State)
	pos := f32.Pt(e.X, e.Y)
	when := l.timestamp(e.Time)
	if w, btn, ok := l.reg.CurrentDrag(); ok {
		if e.Win != w {
			pos = l.translate(e.Win, w, pos)
		}
		l.host.MouseEvent(w, pointer.Event{
			Kind:      event.MouseDragged,
			Time:      when,
			Button:    btn,
			Position:  pos,
			Modifiers: mods,
		})
		return
	}
	if !l.known(e) {
		return
	}
	l.host.MouseEvent(e.Win, pointer.Event{
		Kind:      event.MouseMoved,
		Time:      when,
		Position:  pos,
		Modifiers: mods,
	})
}

// translate maps p from the coordinate space of window from to
// that of window to.
func (l *Loop) translate(from, to Handle, p f32.Point) f32.Point {
	if t, ok := l.src.(native.Translator); ok {
		if q, ok := t.Translate(from, to, p); ok {
			return q
		}
	}
	fb, ok1 := l.reg.Bounds(from)
	tb, ok2 := l.reg.Bounds(to)
	if ok1 && ok2 {
		return p.Add(fb.Min).Sub(tb.Min)
	}
	Logger().Debug("untranslated drag position",
		zap.Uintptr("from", uintptr(from)), zap.Uintptr("to", uintptr(to)))
	return p
}

func (l *Loop) expose(e native.ExposeEvent) {
	dirty := e.Rect
	if c, ok := l.src.(native.Coalescer); ok {
		for {
			next, ok := c.NextPending(e.Win, e)
			if !ok {
				break
			}
			if x, ok := next.(native.ExposeEvent); ok {
				dirty = dirty.Union(x.Rect)
			}
		}
	}
	if !l.known(e) {
		return
	}
	l.paint(e.Win, dirty)
}

func (l *Loop) paint(w Handle, dirty f32.Rectangle) {
	c, err := l.src.BeginPaint(w, dirty)
	if err != nil {
		Logger().Warn("acquiring drawing context", zap.Uintptr("window", uintptr(w)), zap.Error(err))
		return
	}
	defer c.Release()
	if err := l.host.Paint(w, c, dirty); err != nil {
		Logger().Warn("paint failed", zap.Uintptr("window", uintptr(w)), zap.Error(err))
	}
}

func (l *Loop) configure(e native.ConfigureEvent) {
	if c, ok := l.src.(native.Coalescer); ok {
		for {
			next, ok := c.NextPending(e.Win, e)
			if !ok {
				break
			}
			if x, ok := next.(native.ConfigureEvent); ok {
				e = x
			}
		}
	}
	if !l.known(e) {
		return
	}
	l.reg.SetBounds(e.Win, e.Bounds)
	l.host.WindowResized(e.Win)
}

func (l *Loop) destroyed(w Handle) {
	if !l.reg.Closed(w) {
		return
	}
	l.host.WindowClosed(w)
	if l.reg.Count() == 0 && l.host.ShouldTerminateAfterLastWindowClosed() {
		l.AttemptTerminate()
	}
}

func (l *Loop) clientMessage(e native.ClientMessageEvent) {
	if e.Format != 32 || native.Atom(e.Data[0]) != l.closeToken {
		Logger().Debug("ignoring client message", zap.Uint64("type", uint64(e.MessageType)))
		return
	}
	if !l.known(e) {
		return
	}
	if !l.host.WindowShouldClose(e.Win) {
		return
	}
	if err := l.src.CloseWindow(e.Win); err != nil {
		Logger().Warn("closing window", zap.Uintptr("window", uintptr(e.Win)), zap.Error(err))
	}
}

func (l *Loop) countClick(w Handle, b pointer.Button, when time.Duration, where f32.Point) int {
	if l.clicks.maxTime <= 0 {
		return 0
	}
	return l.clicks.press(w, b, when, where)
}

func (l *Loop) clickCount() int {
	if l.clicks.maxTime <= 0 {
		return 0
	}
	return l.clicks.current()
}

// timestamp returns the native time t, or the time since Run
// started if the source did not provide one.
func (l *Loop) timestamp(t time.Duration) time.Duration {
	if t != 0 {
		return t
	}
	return l.now().Sub(l.epoch)
}

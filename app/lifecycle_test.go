// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"reflect"
	"testing"

	"github.com/loomui/loom/app/internal/native"
	"github.com/loomui/loom/f32"
	"github.com/loomui/loom/io/event"
	"github.com/loomui/loom/io/system"
)

func TestTerminateCancel(t *testing.T) {
	h := &recordingHost{response: system.TerminateCancel}
	l, src := newTestLoop(t, h)
	l.AttemptTerminate()
	if got := l.Stage(); got != system.StageRunning {
		t.Errorf("got %v; want %v", got, system.StageRunning)
	}
	if h.count("WillTerminate") != 0 || src.closed != 0 {
		t.Error("canceled termination terminated")
	}
}

func TestTerminateDefer(t *testing.T) {
	h := &recordingHost{response: system.TerminateDefer}
	l, src := newTestLoop(t, h)
	a := openWindow(t, l, f32.Rectangle{})
	b := openWindow(t, l, f32.Rectangle{})

	l.AttemptTerminate()
	if got := l.Stage(); got != system.StageAwaitingTermination {
		t.Fatalf("got %v; want %v", got, system.StageAwaitingTermination)
	}
	// Attempts while awaiting do not ask again.
	l.AttemptTerminate()
	if n := h.count("ShouldTerminate"); n != 1 {
		t.Errorf("ShouldTerminate called %d times; want 1", n)
	}

	l.MayTerminateNow(false)
	if !l.Running() || l.AwaitingTermination() {
		t.Fatalf("stage %v after declined termination", l.Stage())
	}
	// Confirmations without a pending termination are ignored.
	l.MayTerminateNow(true)
	if !l.Running() {
		t.Fatal("unsolicited confirmation terminated the loop")
	}

	l.AttemptTerminate()
	l.MayTerminateNow(true)
	if got := l.Stage(); got != system.StageTerminated {
		t.Fatalf("got %v; want %v", got, system.StageTerminated)
	}
	if n := h.count("WillTerminate"); n != 1 {
		t.Errorf("WillTerminate called %d times; want 1", n)
	}
	if !reflect.DeepEqual(src.closes, []native.Handle{a, b}) {
		t.Errorf("closed windows: got %v; want [%v %v]", src.closes, a, b)
	}
	if !reflect.DeepEqual(h.closed, []native.Handle{a, b}) {
		t.Errorf("WindowClosed: got %v", h.closed)
	}
	// The source is closed by Run once the dispatch returns.
	if l.WindowCount() != 0 || src.closed != 0 {
		t.Errorf("after terminate: %d windows, source closed %d times", l.WindowCount(), src.closed)
	}

	l.MayTerminateNow(true)
	l.AttemptTerminate()
	if n := h.count("WillTerminate"); n != 1 {
		t.Errorf("WillTerminate called %d times after termination", n)
	}
	if _, err := l.OpenWindow(native.WindowOptions{}); err == nil {
		t.Error("OpenWindow succeeded after termination")
	}
}

func TestTerminateAtStartup(t *testing.T) {
	h := &recordingHost{terminateAfterLast: true, response: system.TerminateNow}
	l := NewLoop(new(fakeSource), h)
	if err := l.Run(); err != nil {
		t.Fatal(err)
	}
	want := []string{"WillFinishStartup", "DidFinishStartup", "ShouldTerminate", "WillTerminate"}
	if !reflect.DeepEqual(h.calls, want) {
		t.Errorf("got %v; want %v", h.calls, want)
	}
	if err := l.Run(); err == nil {
		t.Error("second Run succeeded")
	}
}

func TestTerminateAfterLastWindowDeferred(t *testing.T) {
	h := &recordingHost{terminateAfterLast: true, response: system.TerminateDefer}
	src := new(fakeSource)
	l := NewLoop(src, h)
	h.onShouldTerminate = func() {
		if err := l.Invoke(func() { l.MayTerminateNow(true) }); err != nil {
			t.Error(err)
		}
	}
	a := openWindow(t, l, f32.Rectangle{})
	src.push(native.ClientMessageEvent{
		Header: native.Header{Win: a},
		Format: 32,
		Data:   [5]uint64{uint64(testCloseToken)},
	})
	if err := l.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{
		"WillFinishStartup", "DidFinishStartup",
		"WindowShouldClose", "WindowClosed", "ShouldTerminate", "WillTerminate",
	}
	if !reflect.DeepEqual(h.calls, want) {
		t.Errorf("got %v; want %v", h.calls, want)
	}
	if l.Stage() != system.StageTerminated || src.closed != 1 {
		t.Errorf("stage %v, source closed %d times", l.Stage(), src.closed)
	}
}

func TestTerminateDuringPaint(t *testing.T) {
	h := &recordingHost{response: system.TerminateNow}
	src := new(fakeSource)
	l := NewLoop(src, h)
	h.onPaint = func() {
		l.AttemptTerminate()
		if src.closed != 0 {
			t.Error("source closed while the canvas is held")
		}
	}
	a := openWindow(t, l, f32.Rectangle{})
	src.push(native.ExposeEvent{Header: native.Header{Win: a}, Rect: f32.Rect(0, 0, 10, 10)})
	if err := l.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(src.canvases) != 1 {
		t.Fatalf("%d canvases acquired; want 1", len(src.canvases))
	}
	if c := src.canvases[0]; c.released != 1 || !c.sourceOpen {
		t.Errorf("canvas released %d times, source open at release: %v", c.released, c.sourceOpen)
	}
	if src.closed != 1 {
		t.Errorf("source closed %d times; want 1", src.closed)
	}
}

func TestDestroyPressedWindow(t *testing.T) {
	h := new(recordingHost)
	l, src := newTestLoop(t, h)
	a := openWindow(t, l, f32.Rectangle{})
	b := openWindow(t, l, f32.Rectangle{})
	src.push(
		btn(a, true, 1, 0, 0, 0),
		native.DestroyEvent{Header: native.Header{Win: a}},
		native.DestroyEvent{Header: native.Header{Win: a}},
		motion(b, 1, 1),
	)
	drain(l, src)
	if got := h.mouse[1]; got.w != b || got.e.Kind != event.MouseMoved {
		t.Errorf("got %+v; want MouseMoved in the remaining window", got)
	}
	if n := h.count("WindowClosed"); n != 1 {
		t.Errorf("WindowClosed called %d times; want 1", n)
	}
}

func TestLifecycleStages(t *testing.T) {
	var l lifecycle
	steps := []struct {
		op   func()
		want system.Stage
	}{
		{func() {}, system.StageStopped},
		{l.deferTermination, system.StageStopped},
		{l.start, system.StageRunning},
		{l.deferTermination, system.StageAwaitingTermination},
		{func() { l.resume() }, system.StageRunning},
		{func() { l.stop() }, system.StageTerminated},
		{l.deferTermination, system.StageTerminated},
	}
	for i, s := range steps {
		s.op()
		if got := l.stage(); got != s.want {
			t.Errorf("step %d: got %v; want %v", i, got, s.want)
		}
	}
	if l.stop() {
		t.Error("second stop reported a transition")
	}
}

// SPDX-License-Identifier: Unlicense OR MIT

package headless_test

import (
	"strings"
	"testing"

	"github.com/loomui/loom/app"
	"github.com/loomui/loom/app/headless"
	"github.com/loomui/loom/f32"
	"github.com/loomui/loom/io/event"
	"github.com/loomui/loom/io/key"
	"github.com/loomui/loom/io/pointer"
)

type drawHost struct {
	app.BaseHost
	mouse  []pointer.Event
	paints int
	closed []app.Handle
}

func (h *drawHost) MouseEvent(w app.Handle, e pointer.Event) {
	h.mouse = append(h.mouse, e)
}

func (h *drawHost) Paint(w app.Handle, c app.Canvas, dirty f32.Rectangle) error {
	h.paints++
	ctx := c.(*headless.Canvas).Context()
	ctx.SetRGB(0, 0, 1)
	ctx.DrawRectangle(float64(dirty.Min.X), float64(dirty.Min.Y), float64(dirty.Dx()), float64(dirty.Dy()))
	return ctx.Fill()
}

func (h *drawHost) WindowClosed(w app.Handle) {
	h.closed = append(h.closed, w)
}

func TestRunScript(t *testing.T) {
	d, err := headless.Open(headless.Size(64, 48))
	if err != nil {
		t.Fatal(err)
	}
	h := new(drawHost)
	l := app.NewLoop(d, h, app.DoubleClick(0, 0))
	w, err := l.OpenWindow(app.WindowOptions{Title: "test"})
	if err != nil {
		t.Fatal(err)
	}
	s, err := headless.LoadScript(strings.NewReader(`
events:
  - {type: press, window: 1, button: 3, x: 10, y: 20, mods: [shift]}
  - {type: release, window: 1, button: 3, x: 10, y: 20}
  - {type: close, window: 1}
`))
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Play(s); err != nil {
		t.Fatal(err)
	}
	if err := l.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if h.paints != 1 {
		t.Errorf("painted %d times; want 1", h.paints)
	}
	if len(h.mouse) != 2 {
		t.Fatalf("got %d mouse events; want 2", len(h.mouse))
	}
	down := h.mouse[0]
	if down.Kind != event.MouseDown || down.Button != pointer.ButtonSecondary ||
		down.Modifiers != key.ModShift || down.Position != f32.Pt(10, 20) || down.Clicks != 0 {
		t.Errorf("got %+v", down)
	}
	if len(h.closed) != 1 || h.closed[0] != w {
		t.Errorf("closed windows: got %v; want [%v]", h.closed, w)
	}
	if got := l.Stage().String(); got != "StageTerminated" {
		t.Errorf("stage: got %s", got)
	}
}

// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"

	"github.com/loomui/loom/app"
	"github.com/loomui/loom/f32"
	"github.com/loomui/loom/io/event"
	"github.com/loomui/loom/io/key"
	"github.com/loomui/loom/io/pointer"
)

// filler is implemented by the canvases of every backend.
type filler interface {
	FillRect(r image.Rectangle, c color.Color) error
}

var palette = []color.Color{
	colornames.Steelblue,
	colornames.Seagreen,
	colornames.Darkorange,
	colornames.Slateblue,
}

var buttonColors = map[pointer.Button]color.Color{
	pointer.ButtonPrimary:   colornames.Crimson,
	pointer.ButtonSecondary: colornames.Gold,
	pointer.ButtonTertiary:  colornames.Orchid,
}

// demoHost paints each window in a solid color and marks presses
// and drags with small squares.
type demoHost struct {
	app.BaseHost
	log *zap.Logger

	windows []app.Handle
	open    map[app.Handle]bool
	marks   map[app.Handle][]mark
	// onClose is called before a window is closed.
	onClose func(w app.Handle)
}

type mark struct {
	at  f32.Point
	col color.Color
}

func newDemoHost(log *zap.Logger) *demoHost {
	return &demoHost{
		log:   log,
		open:  make(map[app.Handle]bool),
		marks: make(map[app.Handle][]mark),
	}
}

func (h *demoHost) opened(w app.Handle) {
	h.windows = append(h.windows, w)
	h.open[w] = true
}

func (h *demoHost) background(w app.Handle) color.Color {
	for i, x := range h.windows {
		if x == w {
			return palette[i%len(palette)]
		}
	}
	return colornames.Gray
}

func (h *demoHost) DidFinishStartup() {
	h.log.Info("started")
}

func (h *demoHost) MouseEvent(w app.Handle, e pointer.Event) {
	h.log.Debug("mouse",
		zap.Uintptr("window", uintptr(w)),
		zap.Stringer("kind", e.Kind),
		zap.Stringer("button", e.Button),
		zap.Int("clicks", e.Clicks),
		zap.Float32("x", e.Position.X),
		zap.Float32("y", e.Position.Y),
		zap.Stringer("mods", e.Modifiers))
	if e.Kind == event.MouseDown || e.Kind == event.MouseDragged {
		h.marks[w] = append(h.marks[w], mark{at: e.Position, col: buttonColors[e.Button]})
	}
}

func (h *demoHost) MouseWheelEvent(w app.Handle, e pointer.Event) {
	h.log.Debug("wheel", zap.Uintptr("window", uintptr(w)),
		zap.Float32("dx", e.Scroll.X), zap.Float32("dy", e.Scroll.Y))
}

func (h *demoHost) KeyEvent(w app.Handle, e key.Event) {
	h.log.Debug("key", zap.Uintptr("window", uintptr(w)), zap.Stringer("kind", e.Kind),
		zap.Uint32("code", e.Code), zap.Stringer("mods", e.Modifiers))
}

func (h *demoHost) Paint(w app.Handle, c app.Canvas, dirty f32.Rectangle) error {
	f, ok := c.(filler)
	if !ok {
		return errors.Errorf("canvas %T cannot fill", c)
	}
	r := image.Rect(int(dirty.Min.X), int(dirty.Min.Y), int(dirty.Max.X+0.5), int(dirty.Max.Y+0.5))
	if err := f.FillRect(r, h.background(w)); err != nil {
		return err
	}
	for _, m := range h.marks[w] {
		p := image.Pt(int(m.at.X), int(m.at.Y))
		sq := image.Rectangle{Min: p.Sub(image.Pt(3, 3)), Max: p.Add(image.Pt(3, 3))}
		if !sq.Overlaps(r) {
			continue
		}
		if err := f.FillRect(sq, m.col); err != nil {
			return err
		}
	}
	return nil
}

func (h *demoHost) WindowShouldClose(w app.Handle) bool {
	if h.onClose != nil {
		h.onClose(w)
	}
	return true
}

func (h *demoHost) WindowClosed(w app.Handle) {
	h.log.Info("window closed", zap.Uintptr("window", uintptr(w)))
	delete(h.open, w)
	delete(h.marks, w)
}

func (h *demoHost) WillTerminate() {
	if h.onClose == nil {
		return
	}
	for _, w := range h.windows {
		if h.open[w] {
			h.onClose(w)
		}
	}
}

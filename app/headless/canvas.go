// SPDX-License-Identifier: Unlicense OR MIT

package headless

import (
	"image"
	"image/color"

	"github.com/gogpu/gg"

	"github.com/loomui/loom/f32"
)

// Canvas is the drawing context of one repaint of a headless
// window. Drawing is clipped to the dirty rectangle.
type Canvas struct {
	ctx      *gg.Context
	dirty    f32.Rectangle
	released bool
}

// Context returns the drawing context of the window surface.
func (c *Canvas) Context() *gg.Context {
	return c.ctx
}

// Dirty returns the rectangle being repainted.
func (c *Canvas) Dirty() f32.Rectangle {
	return c.dirty
}

// Release ends the repaint and restores the clip of the surface.
func (c *Canvas) Release() {
	if c.released {
		return
	}
	c.released = true
	c.ctx.Pop()
}

// FillRect fills r with a solid color.
func (c *Canvas) FillRect(r image.Rectangle, col color.Color) error {
	c.ctx.SetColor(col)
	c.ctx.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	return c.ctx.Fill()
}

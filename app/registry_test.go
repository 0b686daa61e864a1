// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"reflect"
	"testing"

	"github.com/loomui/loom/f32"
	"github.com/loomui/loom/io/pointer"
)

func TestRegistryCount(t *testing.T) {
	var r Registry
	ops := []struct {
		open  bool
		w     Handle
		count int
	}{
		{true, 3, 1},
		{true, 1, 2},
		{true, 3, 2},
		{false, 7, 2},
		{false, 3, 1},
		{false, 3, 1},
		{true, 2, 2},
		{false, 1, 1},
		{false, 2, 0},
	}
	for i, op := range ops {
		if op.open {
			r.Opened(op.w)
		} else {
			r.Closed(op.w)
		}
		if got := r.Count(); got != op.count {
			t.Errorf("op %d: got %d windows; want %d", i, got, op.count)
		}
	}
}

func TestRegistryWindows(t *testing.T) {
	var r Registry
	for _, w := range []Handle{9, 2, 5} {
		r.Opened(w)
	}
	if got, want := r.Windows(), []Handle{2, 5, 9}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v; want %v", got, want)
	}
}

func TestRegistryPress(t *testing.T) {
	var r Registry
	r.Opened(1)
	r.Opened(2)
	if _, _, ok := r.CurrentDrag(); ok {
		t.Fatal("drag before any press")
	}
	r.BeginPress(1, pointer.ButtonSecondary)
	if w, b, ok := r.CurrentDrag(); !ok || w != 1 || b != pointer.ButtonSecondary {
		t.Errorf("got (%v, %v, %v)", w, b, ok)
	}
	r.Closed(2)
	if _, _, ok := r.CurrentDrag(); !ok {
		t.Error("closing another window ended the press")
	}
	r.Closed(1)
	if _, _, ok := r.CurrentDrag(); ok {
		t.Error("closing the pressed window kept the press")
	}
}

func TestRegistryBounds(t *testing.T) {
	var r Registry
	r.SetBounds(1, f32.Rect(0, 0, 1, 1))
	if _, ok := r.Bounds(1); ok {
		t.Error("bounds recorded for a window that is not open")
	}
	r.Opened(1)
	if _, ok := r.Bounds(1); ok {
		t.Error("bounds known before SetBounds")
	}
	r.SetBounds(1, f32.Rect(1, 2, 3, 4))
	if b, ok := r.Bounds(1); !ok || b != f32.Rect(1, 2, 3, 4) {
		t.Errorf("got %v %v", b, ok)
	}
}

func TestRegistryKey(t *testing.T) {
	var r Registry
	r.SetKey(4)
	if _, ok := r.Key(); ok {
		t.Fatal("window that is not open became the key window")
	}
	r.Opened(1)
	r.Opened(2)
	r.SetKey(1)
	r.ClearKey(2)
	if w, ok := r.Key(); !ok || w != 1 {
		t.Errorf("got (%v, %v); want (1, true)", w, ok)
	}
	r.Closed(2)
	if _, ok := r.Key(); !ok {
		t.Error("closing another window cleared the key window")
	}
	r.Closed(1)
	if _, ok := r.Key(); ok {
		t.Error("closing the key window kept it")
	}
}

// SPDX-License-Identifier: Unlicense OR MIT

package event

import "testing"

func TestKindString(t *testing.T) {
	for _, tc := range []struct {
		kind Kind
		res  string
	}{
		{MouseDown, "MouseDown"},
		{MouseDragged, "MouseDragged"},
		{MouseUp, "MouseUp"},
		{MouseEntered, "MouseEntered"},
		{MouseMoved, "MouseMoved"},
		{MouseExited, "MouseExited"},
		{MouseWheel, "MouseWheel"},
		{KeyDown, "KeyDown"},
		{KeyTyped, "KeyTyped"},
		{KeyUp, "KeyUp"},
	} {
		t.Run(tc.res, func(t *testing.T) {
			if want, got := tc.res, tc.kind.String(); want != got {
				t.Errorf("got %q; want %q", got, want)
			}
		})
	}
}

func TestKindClass(t *testing.T) {
	for k := MouseDown; k <= KeyUp; k++ {
		if k.IsMouse() == k.IsKey() {
			t.Errorf("%v: IsMouse=%v IsKey=%v", k, k.IsMouse(), k.IsKey())
		}
	}
}

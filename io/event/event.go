// SPDX-License-Identifier: Unlicense OR MIT

// Package event contains types for event handling.
package event

// Kind of an abstract input event delivered to the application.
type Kind uint8

const (
	MouseDown Kind = iota
	MouseDragged
	MouseUp
	MouseEntered
	MouseMoved
	MouseExited
	MouseWheel
	KeyDown
	KeyTyped
	KeyUp
)

// IsMouse reports whether k is one of the pointer kinds.
func (k Kind) IsMouse() bool {
	return k <= MouseWheel
}

// IsKey reports whether k is one of the keyboard kinds.
func (k Kind) IsKey() bool {
	return k >= KeyDown && k <= KeyUp
}

func (k Kind) String() string {
	switch k {
	case MouseDown:
		return "MouseDown"
	case MouseDragged:
		return "MouseDragged"
	case MouseUp:
		return "MouseUp"
	case MouseEntered:
		return "MouseEntered"
	case MouseMoved:
		return "MouseMoved"
	case MouseExited:
		return "MouseExited"
	case MouseWheel:
		return "MouseWheel"
	case KeyDown:
		return "KeyDown"
	case KeyTyped:
		return "KeyTyped"
	case KeyUp:
		return "KeyUp"
	default:
		panic("unknown Kind")
	}
}

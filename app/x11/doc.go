// SPDX-License-Identifier: Unlicense OR MIT

// Package x11 implements a native event source for the X Window
// System. It requires cgo and Xlib.
package x11

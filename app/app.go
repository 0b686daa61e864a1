// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"os"
	"path/filepath"

	"github.com/loomui/loom/app/internal/native"
)

// ID is the app id exposed to the platform.
//
// On X11 it is the class of the XClassHint of every window.
//
// ID is set manually with the -X linker flag. For example,
//
//	go build -ldflags="-X 'github.com/loomui/loom/app.ID=org.example.Demo'" .
//
// Note that ID is treated as a constant, and that changing it at runtime
// is not supported. The default value of ID is filepath.Base(os.Args[0]).
var ID = ""

func init() {
	if ID == "" {
		ID = filepath.Base(os.Args[0])
	}
}

// Types of the native window system layer, re-exported for hosts
// and sources outside this module's app tree.
type (
	// Handle identifies a native window.
	Handle = native.Handle
	// WindowOptions describe a window to create.
	WindowOptions = native.WindowOptions
	// Canvas is the drawing context passed to Host.Paint.
	Canvas = native.Canvas
	// Source is a native event source.
	Source = native.Source
)

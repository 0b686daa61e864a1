// SPDX-License-Identifier: Unlicense OR MIT

//go:build ((linux && !android && !nox11) || freebsd) && cgo

package main

import (
	"github.com/loomui/loom/app"
	"github.com/loomui/loom/app/x11"
)

func init() {
	openX11 = func() (app.Source, error) {
		return x11.Open(x11.Class(app.ID))
	}
}

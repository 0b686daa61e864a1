// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"

	"github.com/loomui/loom/app"
)

// saveSnapshot writes the contents of window w to dir as a BMP
// image.
func saveSnapshot(s snapshotter, dir string, w app.Handle) (err error) {
	img, err := s.Snapshot(w)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "snapshot dir")
	}
	f, err := os.Create(filepath.Join(dir, fmt.Sprintf("window-%d.bmp", w)))
	if err != nil {
		return errors.Wrap(err, "snapshot")
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return errors.Wrap(bmp.Encode(f, img), "encoding snapshot")
}

// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"image"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/loomui/loom/app"
	"github.com/loomui/loom/app/headless"
	"github.com/loomui/loom/f32"
	"github.com/loomui/loom/internal/config"
)

// snapshotter is implemented by sources that can read back window
// contents.
type snapshotter interface {
	Snapshot(w app.Handle) (image.Image, error)
}

// player is implemented by sources that replay recorded input.
type player interface {
	Play(s *headless.Script) error
}

func run() error {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()
	app.SetLogger(logger.Named("app"))

	var script *headless.Script
	if cfg.Backend == "headless" {
		if script, err = headless.ReadScript(cfg.Script); err != nil {
			return err
		}
	}
	src, err := openSource(cfg)
	if err != nil {
		logger.Fatal("opening display", zap.String("backend", cfg.Backend), zap.Error(err))
	}
	return serve(cfg, logger, src, script)
}

// serve runs the demo on src until it terminates. script, if not
// nil, is replayed once the windows are open. src is closed on
// return.
func serve(cfg *config.Config, logger *zap.Logger, src app.Source, script *headless.Script) error {
	fail := func(err error) error {
		if cerr := src.Close(); cerr != nil {
			logger.Warn("closing display", zap.Error(cerr))
		}
		return err
	}
	h := newDemoHost(logger.Named("host"))
	if cfg.SnapshotDir != "" {
		s, ok := src.(snapshotter)
		if !ok {
			return fail(errors.Errorf("the %s backend does not support snapshots", cfg.Backend))
		}
		h.onClose = func(w app.Handle) {
			if err := saveSnapshot(s, cfg.SnapshotDir, w); err != nil {
				logger.Warn("saving snapshot", zap.Error(err))
			}
		}
	}
	var p player
	if script != nil {
		var ok bool
		if p, ok = src.(player); !ok {
			return fail(errors.Errorf("the %s backend cannot replay scripts", cfg.Backend))
		}
	}
	l := app.NewLoop(src, h, app.DoubleClick(cfg.DoubleClickTime, cfg.DoubleClickDistance))
	for i := 0; i < cfg.Windows; i++ {
		w, err := l.OpenWindow(app.WindowOptions{
			Title:  fmt.Sprintf("%s %d", app.ID, i+1),
			Bounds: f32.Rect(float32(i*340), 0, float32(i*340+320), 240),
		})
		if err != nil {
			return fail(err)
		}
		h.opened(w)
	}
	if p != nil {
		if err := p.Play(script); err != nil {
			return fail(err)
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		signal.Stop(sig)
		close(sig)
	}()
	go func() {
		for range sig {
			if err := l.Invoke(l.AttemptTerminate); err != nil {
				return
			}
		}
	}()

	logger.Info("running", zap.String("backend", cfg.Backend), zap.Int("windows", l.WindowCount()))
	if err := l.Run(); err != nil {
		return err
	}
	logger.Info("terminated")
	return nil
}

// openSource opens the display of the configured backend.
func openSource(cfg *config.Config) (app.Source, error) {
	switch cfg.Backend {
	case "headless":
		d, err := headless.Open(headless.Size(320, 240))
		if err != nil {
			return nil, err
		}
		return d, nil
	case "x11":
		if openX11 == nil {
			return nil, errors.New("x11 support is not built in")
		}
		return openX11()
	default:
		return nil, errors.Errorf("unknown backend %q", cfg.Backend)
	}
}

// openX11 is set on platforms with X11 support.
var openX11 func() (app.Source, error)

// SPDX-License-Identifier: Unlicense OR MIT

package headless

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/loomui/loom/app/internal/native"
	"github.com/loomui/loom/f32"
)

// Script is a recorded sequence of native input. A script is
// written in YAML:
//
//	events:
//	  - {type: press, window: 1, button: 3, x: 10, y: 20, mods: [shift]}
//	  - {type: motion, window: 1, x: 12, y: 22}
//	  - {type: release, window: 1, button: 3, x: 12, y: 22}
//	  - {type: close, window: 1}
//
// Windows are referred to by handle. Handles are numbered from 1
// in the order windows are opened.
type Script struct {
	Events []ScriptEvent `yaml:"events"`
}

// ScriptEvent is one scripted native event.
type ScriptEvent struct {
	// Type is one of press, release, motion, enter, leave,
	// key_press, key_release, focus_in, focus_out, expose,
	// configure, close or destroy.
	Type   string `yaml:"type"`
	Window uint   `yaml:"window"`
	// Time in milliseconds. Zero leaves the time stamp to the
	// event loop.
	Time   int64     `yaml:"time"`
	Button uint32    `yaml:"button"`
	Code   uint32    `yaml:"code"`
	X      float32   `yaml:"x"`
	Y      float32   `yaml:"y"`
	Mods   []string  `yaml:"mods"`
	Rect   []float32 `yaml:"rect"`
}

// ReadScript loads a script from a file.
func ReadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "headless: open script")
	}
	defer f.Close()
	return LoadScript(f)
}

// LoadScript decodes a script.
func LoadScript(r io.Reader) (*Script, error) {
	s := new(Script)
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil {
		if err == io.EOF {
			return s, nil
		}
		return nil, errors.Wrap(err, "headless: decode script")
	}
	for i, e := range s.Events {
		if _, err := e.native(); err != nil {
			return nil, errors.Wrapf(err, "headless: event %d", i)
		}
	}
	return s, nil
}

var modMasks = map[string]uint32{
	"shift":   native.ShiftMask,
	"lock":    native.LockMask,
	"control": native.ControlMask,
	"ctrl":    native.ControlMask,
	"mod1":    native.Mod1Mask,
	"alt":     native.Mod1Mask,
	"mod2":    native.Mod2Mask,
	"mod3":    native.Mod3Mask,
	"mod4":    native.Mod4Mask,
	"super":   native.Mod4Mask,
	"mod5":    native.Mod5Mask,
}

func (e ScriptEvent) state() (uint32, error) {
	var s uint32
	for _, m := range e.Mods {
		mask, ok := modMasks[strings.ToLower(m)]
		if !ok {
			return 0, errors.Errorf("unknown modifier %q", m)
		}
		s |= mask
	}
	return s, nil
}

func (e ScriptEvent) rect() (f32.Rectangle, bool, error) {
	switch len(e.Rect) {
	case 0:
		return f32.Rectangle{}, false, nil
	case 4:
		return f32.Rect(e.Rect[0], e.Rect[1], e.Rect[2], e.Rect[3]), true, nil
	default:
		return f32.Rectangle{}, false, errors.Errorf("rect has %d coordinates; want 4", len(e.Rect))
	}
}

// native converts e to a native event. Expose events without a
// rectangle have an empty Rect and configure events are returned
// as is; Play completes both from the window state.
func (e ScriptEvent) native() (native.Event, error) {
	state, err := e.state()
	if err != nil {
		return nil, err
	}
	r, hasRect, err := e.rect()
	if err != nil {
		return nil, err
	}
	hdr := native.Header{Win: native.Handle(e.Window), Time: time.Duration(e.Time) * time.Millisecond}
	switch e.Type {
	case "press", "release":
		if e.Button == 0 {
			return nil, errors.Errorf("%s without button", e.Type)
		}
		return native.ButtonEvent{Header: hdr, Press: e.Type == "press", Button: e.Button, State: state, X: e.X, Y: e.Y}, nil
	case "motion":
		return native.MotionEvent{Header: hdr, State: state, X: e.X, Y: e.Y}, nil
	case "enter", "leave":
		return native.CrossingEvent{Header: hdr, Enter: e.Type == "enter", State: state, X: e.X, Y: e.Y}, nil
	case "key_press", "key_release":
		return native.KeyEvent{Header: hdr, Press: e.Type == "key_press", Code: e.Code, State: state}, nil
	case "focus_in", "focus_out":
		return native.FocusEvent{Header: hdr, In: e.Type == "focus_in"}, nil
	case "expose":
		return native.ExposeEvent{Header: hdr, Rect: r}, nil
	case "configure":
		if !hasRect {
			return nil, errors.New("configure without rect")
		}
		return native.ConfigureEvent{Header: hdr, Bounds: r}, nil
	case "close":
		return native.ClientMessageEvent{Header: hdr, Format: 32, Data: [5]uint64{uint64(CloseToken)}}, nil
	case "destroy":
		return native.DestroyEvent{Header: hdr}, nil
	default:
		return nil, errors.Errorf("unknown event type %q", e.Type)
	}
}

// Play queues the events of s. Configure events resize the window
// surface, destroy events remove it, and expose events without a
// rectangle cover the whole window.
func (d *Display) Play(s *Script) error {
	for i, se := range s.Events {
		e, err := se.native()
		if err != nil {
			return errors.Wrapf(err, "headless: event %d", i)
		}
		switch e := e.(type) {
		case native.ConfigureEvent:
			err = d.Resize(e.Win, e.Bounds)
		case native.DestroyEvent:
			err = d.CloseWindow(e.Win)
		case native.ExposeEvent:
			if e.Rect.Empty() {
				if b, ok := d.Bounds(e.Win); ok {
					e.Rect = f32.Rect(0, 0, b.Dx(), b.Dy())
				}
			}
			err = d.post(e)
		default:
			err = d.post(e)
		}
		if err != nil {
			return errors.Wrapf(err, "headless: play event %d", i)
		}
	}
	return nil
}

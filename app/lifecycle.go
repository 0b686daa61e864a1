// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"github.com/loomui/loom/io/system"
)

// lifecycle is the termination state machine of a Loop.
// awaiting is only ever true while running.
type lifecycle struct {
	running    bool
	awaiting   bool
	terminated bool
}

func (l *lifecycle) start() {
	l.running = true
}

// deferTermination enters the AwaitingTermination state.
func (l *lifecycle) deferTermination() {
	if l.running {
		l.awaiting = true
	}
}

// resume consumes a pending confirmation. It reports whether a
// deferred termination was pending.
func (l *lifecycle) resume() bool {
	if !l.awaiting {
		return false
	}
	l.awaiting = false
	return true
}

// stop enters the Terminated state. It reports false if the loop
// was already terminated.
func (l *lifecycle) stop() bool {
	if l.terminated {
		return false
	}
	l.running = false
	l.awaiting = false
	l.terminated = true
	return true
}

func (l *lifecycle) stage() system.Stage {
	switch {
	case l.terminated:
		return system.StageTerminated
	case l.awaiting:
		return system.StageAwaitingTermination
	case l.running:
		return system.StageRunning
	default:
		return system.StageStopped
	}
}

// SPDX-License-Identifier: Unlicense OR MIT

// Package system contains types usually handled at the top-level
// program level.
package system

// TerminateResponse is the host's answer to a request to
// terminate the application.
type TerminateResponse uint8

const (
	// TerminateCancel keeps the application running.
	TerminateCancel TerminateResponse = iota
	// TerminateDefer postpones the decision until the host calls
	// MayTerminateNow.
	TerminateDefer
	// TerminateNow runs the terminate sequence immediately.
	TerminateNow
)

// Stage of the application lifecycle.
type Stage uint8

const (
	// StageStopped is the Stage before the event loop starts.
	StageStopped Stage = iota
	// StageRunning is for a running event loop.
	StageRunning
	// StageAwaitingTermination is for a running event loop whose
	// termination was deferred by the host.
	StageAwaitingTermination
	// StageTerminated is the final Stage.
	StageTerminated
)

func (r TerminateResponse) String() string {
	switch r {
	case TerminateCancel:
		return "TerminateCancel"
	case TerminateDefer:
		return "TerminateDefer"
	case TerminateNow:
		return "TerminateNow"
	default:
		panic("unexpected TerminateResponse value")
	}
}

func (l Stage) String() string {
	switch l {
	case StageStopped:
		return "StageStopped"
	case StageRunning:
		return "StageRunning"
	case StageAwaitingTermination:
		return "StageAwaitingTermination"
	case StageTerminated:
		return "StageTerminated"
	default:
		panic("unexpected Stage value")
	}
}

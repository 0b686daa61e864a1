// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"sync"
)

// taskTable holds functions waiting to run on the loop goroutine.
type taskTable struct {
	mu     sync.Mutex
	nextID uint64
	tasks  map[uint64]func()
}

func (t *taskTable) record(f func()) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.tasks == nil {
		t.tasks = make(map[uint64]func())
	}
	t.nextID++
	id := t.nextID
	t.tasks[id] = f
	return id
}

// take removes and returns the task for id.
func (t *taskTable) take(id uint64) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	f := t.tasks[id]
	delete(t.tasks, id)
	return f
}

// SPDX-License-Identifier: Unlicense OR MIT

package wakeup

import (
	"errors"
	"testing"
	"time"
)

func TestWakeBeforeWait(t *testing.T) {
	n, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer n.Close()
	n.Wake()
	n.Wake()
	if _, err := n.Wait(-1); err != nil {
		t.Fatal(err)
	}
}

func TestWakeFromGoroutine(t *testing.T) {
	n, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer n.Close()
	done := make(chan error, 1)
	go func() {
		_, err := n.Wait(-1)
		done <- err
	}()
	time.Sleep(10 * time.Millisecond)
	n.Wake()
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Wait did not return after Wake")
	}
}

func TestWaitAfterClose(t *testing.T) {
	n, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if err := n.Close(); err != nil {
		t.Fatal(err)
	}
	if err := n.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	n.Wake()
	if _, err := n.Wait(-1); !errors.Is(err, ErrClosed) {
		t.Errorf("got %v; want ErrClosed", err)
	}
}

package search

import (
	"sync"
	"testing"
	"time"
)

func TestDebouncerFiresOnceWithLatestValue(t *testing.T) {
	var mu sync.Mutex
	var fired []string
	done := make(chan struct{}, 4)

	d := NewDebouncer(20*time.Millisecond, func(v string) {
		mu.Lock()
		fired = append(fired, v)
		mu.Unlock()
		done <- struct{}{}
	})
	defer d.Stop()

	// Rapid keystrokes: only the settled value may fire.
	d.Input("b")
	d.Input("be")
	d.Input("bea")
	d.Input("beat")

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debounced callback never fired")
	}

	// Give a stray early timer a chance to fire wrongly before asserting.
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(fired) != 1 || fired[0] != "beat" {
		t.Fatalf("callback fired with %v, want exactly [beat]", fired)
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	fired := make(chan string, 1)
	d := NewDebouncer(20*time.Millisecond, func(v string) { fired <- v })

	d.Input("never")
	d.Stop()

	select {
	case v := <-fired:
		t.Fatalf("callback fired with %q after Stop", v)
	case <-time.After(80 * time.Millisecond):
	}
}

func TestDebouncerDefaultDelay(t *testing.T) {
	d := NewDebouncer(0, func(string) {})
	defer d.Stop()
	if d.delay != DefaultQuietPeriod {
		t.Fatalf("delay = %v, want %v", d.delay, DefaultQuietPeriod)
	}
}

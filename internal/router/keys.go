// Package router turns per-frame device and navigation state into discrete,
// edge-triggered calibration events.
package router

import (
	"fmt"
	"sync"
)

// Key is a logical navigation key.
type Key int

const (
	Next Key = iota
	Prev
	Select
	Back
	AdjustUp
	AdjustDown
	numKeys
)

var keyNames = [numKeys]string{"next", "prev", "select", "back", "adjust_up", "adjust_down"}

func (k Key) String() string {
	if k >= 0 && k < numKeys {
		return keyNames[k]
	}
	return fmt.Sprintf("key(%d)", int(k))
}

// ParseKey is the inverse of Key.String.
func ParseKey(s string) (Key, bool) {
	for i, n := range keyNames {
		if n == s {
			return Key(i), true
		}
	}
	return 0, false
}

// NavState is the pressed state of every logical key in one frame.
type NavState [numKeys]bool

// Press returns a copy of n with k pressed.
func (n NavState) Press(k Key) NavState {
	if k >= 0 && k < numKeys {
		n[k] = true
	}
	return n
}

// Merge returns the union of two states.
func (n NavState) Merge(o NavState) NavState {
	for i := range n {
		n[i] = n[i] || o[i]
	}
	return n
}

// Latch collects key state from another goroutine for the frame loop. A press
// and release that both happen between two frames still shows as pressed in
// the next Snapshot.
type Latch struct {
	mu     sync.Mutex
	held   NavState
	tapped NavState
}

// Set records the state of k.
func (l *Latch) Set(k Key, pressed bool) {
	if k < 0 || k >= numKeys {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held[k] = pressed
	if pressed {
		l.tapped[k] = true
	}
}

// Snapshot returns the keys held now or pressed since the previous call.
func (l *Latch) Snapshot() NavState {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := l.held.Merge(l.tapped)
	l.tapped = NavState{}
	return s
}

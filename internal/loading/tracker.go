// Package loading tracks a process-wide busy flag for tracked
// operations.
package loading

import (
	"sync"
	"time"
)

// DefaultDebounce is how long the flag stays raised after an operation
// completes, damping flicker across rapid successive operations.
const DefaultDebounce = time.Second

// Tracker is a debounced busy flag. Begin raises the flag synchronously;
// End lowers it only after the debounce window elapses. The flag is an
// approximate indicator, not an in-flight counter: the last Begin/End
// call wins.
type Tracker struct {
	mu       sync.Mutex
	active   bool
	debounce time.Duration
	timer    *time.Timer
	onChange func(active bool)
}

// NewTracker creates a tracker. onChange may be nil; it is invoked on
// every flag transition.
func NewTracker(debounce time.Duration, onChange func(bool)) *Tracker {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Tracker{debounce: debounce, onChange: onChange}
}

// Begin raises the flag immediately and cancels any pending lowering.
// Safe on a nil tracker.
func (t *Tracker) Begin() {
	if t == nil {
		return
	}
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	changed := !t.active
	t.active = true
	onChange := t.onChange
	t.mu.Unlock()

	if changed && onChange != nil {
		onChange(true)
	}
}

// End schedules the flag to lower after the debounce window. A Begin
// arriving inside the window keeps the flag raised. Safe on a nil
// tracker.
func (t *Tracker) End() {
	if t == nil {
		return
	}
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.debounce, t.lower)
	t.mu.Unlock()
}

func (t *Tracker) lower() {
	t.mu.Lock()
	changed := t.active
	t.active = false
	t.timer = nil
	onChange := t.onChange
	t.mu.Unlock()

	if changed && onChange != nil {
		onChange(false)
	}
}

// Active reports the current flag state.
func (t *Tracker) Active() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

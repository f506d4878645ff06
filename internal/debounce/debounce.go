// Package debounce delays input handling until input has paused.
//
// Gate is for event loops that deliver their own timer messages (Bubble Tea):
// every Arm hands out a new Token and invalidates the previous one, so a timer
// that fires late is recognised as stale and dropped. Debouncer wraps
// time.AfterFunc for callers that want a callback instead.
package debounce

import (
	"sync"
	"time"
)

// Token identifies one armed quiet period. The zero Token is never current.
type Token uint64

// Gate hands out tokens and remembers which one is current.
type Gate struct {
	mu      sync.Mutex
	seq     uint64
	pending bool
}

// Arm starts a new quiet period and returns its token. Earlier tokens become stale.
func (g *Gate) Arm() Token {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	g.pending = true
	return Token(g.seq)
}

// Fire reports whether tok is still the current token and consumes it.
func (g *Gate) Fire(tok Token) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.pending || uint64(tok) != g.seq {
		return false
	}
	g.pending = false
	return true
}

// Pending reports whether a quiet period is armed and not yet fired.
func (g *Gate) Pending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending
}

// Cancel drops the pending quiet period, if any.
func (g *Gate) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = false
}

// Debouncer runs a function once calls have stopped for the configured duration.
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	fn       func()
	gen      uint64
	duration time.Duration
}

// New creates a Debouncer with the given quiet period.
func New(duration time.Duration) *Debouncer {
	return &Debouncer{duration: duration}
}

// Debounce schedules fn after the quiet period, replacing any pending call.
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.fn = fn
	d.timer = time.AfterFunc(d.duration, func() { d.run(gen) })
}

// run fires the call scheduled as gen; a timer superseded while waiting on the
// lock finds a newer gen and does nothing.
func (d *Debouncer) run(gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	fn := d.fn
	d.fn = nil
	d.timer = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Cancel drops any pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.fn = nil
}

// Flush runs the pending call now, if any, and reports whether one ran.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	fn := d.fn
	d.fn = nil
	d.mu.Unlock()

	if fn == nil {
		return false
	}
	fn()
	return true
}

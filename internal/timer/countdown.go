// Package timer implements the per-question countdown.
package timer

import (
	"sync"
	"time"
)

// State is a point-in-time view of a Countdown.
type State struct {
	Remaining int
	Total     int
	Active    bool
	Paused    bool
	// Progress is (Total-Remaining)/Total in [0,1].
	Progress float64
	Run      uint64
}

// Countdown counts whole seconds down to zero and calls onZero once per run
// when it gets there.
//
// A run starts with New or Reset. Ticking only happens while the countdown is
// active, not paused and has time left. A countdown that reached zero stays
// there until Reset, even if Start is called again.
type Countdown struct {
	mu         sync.Mutex
	configured int
	total      int
	remaining  int
	active     bool
	paused     bool
	run        uint64
	onZero     func(run uint64)

	interval time.Duration
	manual   bool
	newTick  func(time.Duration) (<-chan time.Time, func())

	// loop identifies the live ticking goroutine; stop ends it.
	loop uint64
	stop chan struct{}
}

// Option configures a Countdown.
type Option func(*Countdown)

// WithInterval overrides the one-second tick.
func WithInterval(d time.Duration) Option {
	return func(c *Countdown) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithManualTicks disables the ticking goroutine; the caller drives Tick.
func WithManualTicks() Option {
	return func(c *Countdown) { c.manual = true }
}

// New returns a stopped countdown of total seconds. onZero may be nil.
func New(total int, onZero func(run uint64), opts ...Option) *Countdown {
	c := &Countdown{
		configured: total,
		total:      total,
		remaining:  total,
		run:        1,
		onZero:     onZero,
		interval:   time.Second,
		newTick: func(d time.Duration) (<-chan time.Time, func()) {
			t := time.NewTicker(d)
			return t.C, t.Stop
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins ticking. It is a no-op when already running or when the
// current run has already reached zero.
func (c *Countdown) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.remaining <= 0 {
		return
	}
	if c.active && !c.paused {
		return
	}
	c.active = true
	c.paused = false
	c.syncLocked()
}

// Pause suspends ticking without touching the remaining time.
func (c *Countdown) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = true
	c.syncLocked()
}

// Resume continues a paused countdown.
func (c *Countdown) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = false
	c.syncLocked()
}

// Stop halts ticking and keeps the remaining time.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = false
	c.paused = false
	c.syncLocked()
}

// Reset stops ticking and starts a new run of newTotal seconds, or of the
// configured total when newTotal is not positive. It does not restart the
// countdown. The returned run id is passed to onZero for this run.
func (c *Countdown) Reset(newTotal int) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if newTotal <= 0 {
		newTotal = c.configured
	}
	c.active = false
	c.paused = false
	c.total = newTotal
	c.remaining = newTotal
	c.run++
	c.syncLocked()
	return c.run
}

// Tick applies one decrement if the countdown is ticking and reports whether
// it did. Reaching zero deactivates the countdown and calls onZero outside
// the lock.
func (c *Countdown) Tick() bool {
	return c.tick(0)
}

// tick with a non-zero loop id only applies while that goroutine is the live one.
func (c *Countdown) tick(loop uint64) bool {
	c.mu.Lock()
	if loop != 0 && (loop != c.loop || c.stop == nil) {
		c.mu.Unlock()
		return false
	}
	if !c.active || c.paused || c.remaining <= 0 {
		c.mu.Unlock()
		return false
	}
	c.remaining--
	if c.remaining > 0 {
		c.mu.Unlock()
		return true
	}

	c.active = false
	c.syncLocked()
	run, onZero := c.run, c.onZero
	c.mu.Unlock()

	if onZero != nil {
		onZero(run)
	}
	return true
}

// State returns the current countdown values.
func (c *Countdown) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	var progress float64
	if c.total > 0 {
		progress = float64(c.total-c.remaining) / float64(c.total)
	}
	return State{
		Remaining: c.remaining,
		Total:     c.total,
		Active:    c.active,
		Paused:    c.paused,
		Progress:  progress,
		Run:       c.run,
	}
}

// Remaining returns the seconds left in the current run.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// syncLocked makes the ticking goroutine exist exactly when the countdown
// should be ticking.
func (c *Countdown) syncLocked() {
	ticking := c.active && !c.paused && c.remaining > 0
	if !ticking || c.manual {
		if c.stop != nil {
			close(c.stop)
			c.stop = nil
		}
		return
	}
	if c.stop != nil {
		return
	}
	c.loop++
	c.stop = make(chan struct{})
	go c.tickLoop(c.loop, c.stop)
}

func (c *Countdown) tickLoop(id uint64, stop <-chan struct{}) {
	ticks, release := c.newTick(c.interval)
	defer release()
	for {
		select {
		case <-stop:
			return
		case <-ticks:
			c.tick(id)
		}
	}
}

package platform

import (
	"sync"
	"time"
)

// DefaultDebounce is how long input must settle before it is classified.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer delays a callback until input stops changing. Each Push cancels
// the previously pending one, so only the last input inside the window is
// delivered.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func(string)
	timer   *time.Timer
	seq     uint64
	pending string
	armed   bool
}

// NewDebouncer returns a Debouncer that calls fn delay after the last Push.
func NewDebouncer(delay time.Duration, fn func(input string)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay, fn: fn}
}

// Push replaces any pending input and restarts the timer.
func (d *Debouncer) Push(input string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.pending = input
	d.armed = true
	d.timer = time.AfterFunc(d.delay, func() { d.fire(seq) })
}

// Flush delivers the pending input now, if any.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	input, armed := d.pending, d.armed
	d.armed = false
	d.mu.Unlock()

	if armed {
		d.fn(input)
	}
}

// Stop discards the pending input.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	d.armed = false
}

func (d *Debouncer) fire(seq uint64) {
	d.mu.Lock()
	// A stopped timer can still fire if it raced with Push/Stop.
	if seq != d.seq || !d.armed {
		d.mu.Unlock()
		return
	}
	input := d.pending
	d.armed = false
	d.mu.Unlock()

	d.fn(input)
}

// SPDX-License-Identifier: Unlicense OR MIT

package loop

import (
	"container/heap"
	"time"

	"github.com/sciurus-wm/corium/clock"
)

// Timers is a min-heap of scheduled callbacks keyed by a clock's
// advancing time, generalizing the teacher's single hard-coded
// key-repeat timer (os_wayland.go's repeatState, which re-derives its
// next fire time from a rate and a delay on every Advance) into a
// reusable priority queue any subsystem can post deadlines to:
// animation frame pacing, idle-inhibitor timeouts, and key repeat
// alike.
type Timers struct {
	clock clock.Clock
	items timerHeap
	seq   int
}

type timerEntry struct {
	at  time.Duration
	fn  func()
	seq int
}

type timerHeap []timerEntry

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}
func (h timerHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *timerHeap) Push(x any)        { *h = append(*h, x.(timerEntry)) }
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// NewTimers creates a Timers driven by c.
func NewTimers(c clock.Clock) *Timers {
	return &Timers{clock: c}
}

// After schedules fn to run the first time Poll is called at or after
// now+d.
func (t *Timers) After(d time.Duration, fn func()) {
	t.seq++
	heap.Push(&t.items, timerEntry{at: t.clock.Now() + d, fn: fn, seq: t.seq})
}

// Poll fires every timer whose deadline has passed, in deadline
// order, and returns the duration until the next pending deadline (or
// -1 if none remain), suitable as a poll(2) timeout in milliseconds
// via NextTimeoutMS.
func (t *Timers) Poll() time.Duration {
	now := t.clock.Now()
	for len(t.items) > 0 && t.items[0].at <= now {
		e := heap.Pop(&t.items).(timerEntry)
		e.fn()
	}
	if len(t.items) == 0 {
		return -1
	}
	return t.items[0].at - now
}

// NextTimeoutMS converts Poll's return value into a poll(2) millisecond
// timeout, clamping a zero or negative remaining duration up to 0 and
// preserving -1 ("block indefinitely") untouched.
func NextTimeoutMS(remaining time.Duration) int {
	if remaining == -1 {
		return -1
	}
	ms := remaining.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	return int(ms)
}

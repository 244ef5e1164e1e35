// Package conversation contains the assistant conversation use cases.
package conversation

import (
	"sort"
	"sync"
	"time"
)

// Timer is a scheduled callback that may be stopped before it fires.
type Timer interface {
	// Stop prevents the callback from firing. It reports whether the call
	// stopped the timer, false meaning it already fired or was stopped.
	Stop() bool
}

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	AfterFunc(delay time.Duration, fn func()) Timer
}

// RealScheduler schedules callbacks on the runtime timer.
type RealScheduler struct{}

// AfterFunc implements Scheduler using time.AfterFunc.
func (RealScheduler) AfterFunc(delay time.Duration, fn func()) Timer {
	return time.AfterFunc(delay, fn)
}

// ManualScheduler fires callbacks only when its clock is advanced.
// Callbacks run on the goroutine calling Advance, in due order.
type ManualScheduler struct {
	mu      sync.Mutex
	elapsed time.Duration
	seq     int
	timers  []*manualTimer
}

type manualTimer struct {
	scheduler *ManualScheduler
	due       time.Duration
	seq       int
	fn        func()
	done      bool
}

// NewManualScheduler creates a ManualScheduler at time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc implements Scheduler.
func (s *ManualScheduler) AfterFunc(delay time.Duration, fn func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t := &manualTimer{
		scheduler: s,
		due:       s.elapsed + delay,
		seq:       s.seq,
		fn:        fn,
	}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward and fires every callback that came due.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.elapsed += d
	now := s.elapsed
	s.mu.Unlock()

	for {
		t := s.nextDue(now)
		if t == nil {
			return
		}
		t.fn()
	}
}

// Scheduled returns the number of callbacks still waiting to fire.
func (s *ManualScheduler) Scheduled() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.timers {
		if !t.done {
			n++
		}
	}
	return n
}

func (s *ManualScheduler) nextDue(now time.Duration) *manualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.done {
			live = append(live, t)
		}
	}
	s.timers = live

	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].due == s.timers[j].due {
			return s.timers[i].seq < s.timers[j].seq
		}
		return s.timers[i].due < s.timers[j].due
	})

	for _, t := range s.timers {
		if !t.done && t.due <= now {
			t.done = true
			return t
		}
	}
	return nil
}

func (t *manualTimer) Stop() bool {
	t.scheduler.mu.Lock()
	defer t.scheduler.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	return true
}

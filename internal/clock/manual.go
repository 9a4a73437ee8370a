package clock

import "time"

var _ Scheduler = (*Manual)(nil)

type manualTimer struct {
	due      time.Duration
	interval time.Duration // zero for one-shot timers
	seq      uint64
	fn       func()
}

// Manual is a [Scheduler] over virtual time. Nothing fires until [Manual.Advance] is called.
//
// Due callbacks fire in due-time order; ties fire in registration order. A repeating timer fires once per elapsed
// period, so advancing by ten periods fires it ten times.
type Manual struct {
	now    time.Duration
	seq    uint64
	timers map[Handle]*manualTimer
}

// NewManual creates a [Manual] scheduler positioned at virtual time zero.
func NewManual() *Manual {
	return &Manual{timers: make(map[Handle]*manualTimer)}
}

// Now returns the virtual time elapsed since creation.
func (m *Manual) Now() time.Duration { return m.now }

// Pending returns the number of live timers.
func (m *Manual) Pending() int { return len(m.timers) }

func (m *Manual) ScheduleRepeating(interval time.Duration, fn func()) Handle {
	if interval < minInterval {
		interval = minInterval
	}
	return m.add(interval, interval, fn)
}

func (m *Manual) ScheduleOnce(delay time.Duration, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}
	return m.add(delay, 0, fn)
}

func (m *Manual) Cancel(h Handle) {
	delete(m.timers, h)
}

func (m *Manual) add(delay, interval time.Duration, fn func()) Handle {
	m.seq++
	h := Handle(m.seq)
	m.timers[h] = &manualTimer{due: m.now + delay, interval: interval, seq: m.seq, fn: fn}
	return h
}

// Advance moves virtual time forward by d, firing every callback that becomes due, and returns how many fired.
//
// Callbacks may schedule or cancel timers; anything they schedule inside the window fires in the same call.
func (m *Manual) Advance(d time.Duration) int {
	target := m.now + d
	fired := 0

	for {
		h, t := m.next(target)
		if t == nil {
			break
		}

		m.now = t.due
		if t.interval > 0 {
			t.due += t.interval
		} else {
			delete(m.timers, h)
		}

		t.fn()
		fired++
	}

	m.now = target
	return fired
}

// next returns the earliest timer due at or before target.
func (m *Manual) next(target time.Duration) (Handle, *manualTimer) {
	var (
		best   *manualTimer
		handle Handle
	)
	for h, t := range m.timers {
		if t.due > target {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best, handle = t, h
		}
	}
	return handle, best
}

package clock

import "time"

// Handle identifies a scheduled callback. The zero Handle is never issued, so it can mean "nothing scheduled".
type Handle uint64

// Scheduler registers callbacks to run later on the owning event loop.
type Scheduler interface {
	// ScheduleRepeating runs fn every interval until the handle is cancelled.
	ScheduleRepeating(interval time.Duration, fn func()) Handle
	// ScheduleOnce runs fn once after delay unless the handle is cancelled first.
	ScheduleOnce(delay time.Duration, fn func()) Handle
	// Cancel stops a pending callback. Unknown or already fired handles are ignored.
	Cancel(h Handle)
}

// minInterval keeps a repeating timer with a non-positive period from spinning.
const minInterval = time.Millisecond

package clock

import (
	"context"
	"sync"
	"time"
)

var _ Scheduler = (*Loop)(nil)

// Poster hands a callback to the goroutine that owns the UI state, e.g. by sending it to a bubbletea program as a
// message or by calling [EventLoop.Post].
type Poster func(fn func())

// Loop is a wall-clock [Scheduler]. Timers run on their own goroutines but never call back directly: each firing is
// posted, and the callback only runs if its handle is still live when the owning loop gets to it.
//
// Intervals drift under load; missed ticks are dropped rather than replayed.
type Loop struct {
	post Poster

	mu     sync.Mutex
	seq    uint64
	timers map[Handle]func() // stop functions
}

// NewLoop creates a [Loop] that delivers callbacks through post.
func NewLoop(post Poster) *Loop {
	return &Loop{post: post, timers: make(map[Handle]func())}
}

func (l *Loop) ScheduleOnce(delay time.Duration, fn func()) Handle {
	h := l.reserve()

	t := time.AfterFunc(delay, func() {
		l.post(func() {
			if l.release(h) {
				fn()
			}
		})
	})

	l.track(h, func() { t.Stop() })
	return h
}

func (l *Loop) ScheduleRepeating(interval time.Duration, fn func()) Handle {
	if interval < minInterval {
		interval = minInterval
	}
	h := l.reserve()
	stop := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				l.post(func() {
					if l.live(h) {
						fn()
					}
				})
			}
		}
	}()

	l.track(h, func() { close(stop) })
	return h
}

func (l *Loop) Cancel(h Handle) {
	l.mu.Lock()
	stop, ok := l.timers[h]
	delete(l.timers, h)
	l.mu.Unlock()

	if ok && stop != nil {
		stop()
	}
}

func (l *Loop) reserve() Handle {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	h := Handle(l.seq)
	l.timers[h] = nil
	return h
}

// track records the stop function, unless the handle was cancelled between reserve and track.
func (l *Loop) track(h Handle, stop func()) {
	l.mu.Lock()
	_, ok := l.timers[h]
	if ok {
		l.timers[h] = stop
	}
	l.mu.Unlock()

	if !ok {
		stop()
	}
}

func (l *Loop) live(h Handle) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.timers[h]
	return ok
}

// release drops a one-shot handle and reports whether it was still live.
func (l *Loop) release(h Handle) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.timers[h]
	delete(l.timers, h)
	return ok
}

// EventLoop runs posted callbacks one at a time on the goroutine that calls [EventLoop.Run].
type EventLoop struct {
	queue chan func()
	done  chan struct{}
	once  sync.Once
}

// NewEventLoop creates an [EventLoop] whose queue holds up to buffer callbacks before Post blocks.
func NewEventLoop(buffer int) *EventLoop {
	return &EventLoop{queue: make(chan func(), buffer), done: make(chan struct{})}
}

// Post enqueues fn. After Run has returned, Post drops fn instead of blocking.
func (e *EventLoop) Post(fn func()) {
	select {
	case e.queue <- fn:
	case <-e.done:
	}
}

// Run executes callbacks in posting order until ctx is cancelled.
func (e *EventLoop) Run(ctx context.Context) error {
	defer e.once.Do(func() { close(e.done) })

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-e.queue:
			fn()
		}
	}
}

// Package clock schedules the delayed and repeating callbacks that drive simulated playback, generation latency,
// sample previews and notice dismissal.
//
// Every [Scheduler] runs callbacks one at a time on a single logical thread, so the state they touch needs no locking.
// Cancelling a handle before its callback fires guarantees the callback never runs; a callback that has started always
// runs to completion.
//
// Implementations:
//   - [Manual] : virtual time advanced explicitly, used by tests and headless simulation
//   - [Loop] : wall-clock timers whose firings are posted onto an event loop (a bubbletea program or an [EventLoop])
package clock

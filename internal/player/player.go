// Package player implements the simulated playback state machine for a generated track.
//
// Progress is a percentage in [0,100]. While playing, a repeating tick advances it linearly so that it reaches 100
// after the configured duration; at 100 the player pauses itself.
package player

import (
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/bestekar/internal/clock"
	"github.com/desertthunder/bestekar/internal/shared"
)

const (
	DefaultTick     = 100 * time.Millisecond
	DefaultDuration = 30
	DefaultMin      = 10
	DefaultMax      = 60
)

// Options configures a [Player]. Zero fields take the package defaults.
type Options struct {
	Duration    int           // initial duration in seconds
	MinDuration int           // slider lower bound, never below 1
	MaxDuration int           // slider upper bound
	Tick        time.Duration // progress update period
	Logger      *log.Logger
}

// OptionsFromConfig maps the [player] config section to [Options].
func OptionsFromConfig(c shared.PlayerConfig, logger *log.Logger) Options {
	return Options{
		Duration:    c.DefaultDuration,
		MinDuration: c.MinDuration,
		MaxDuration: c.MaxDuration,
		Tick:        c.Tick(),
		Logger:      logger,
	}
}

// Player is the playback state machine. It is not safe for concurrent use; all calls, including the tick callbacks it
// schedules, must happen on the scheduler's event loop.
type Player struct {
	sched    clock.Scheduler
	logger   *log.Logger
	tick     time.Duration
	min, max int

	state    State
	position time.Duration // Progress is derived from this
	duration int
	ticker   clock.Handle

	observers []func(Snapshot)
}

// Snapshot is a read-only view of the player, passed to observers.
type Snapshot struct {
	State    State
	Progress float64
	Duration int
	Display  string
}

// New creates a stopped [Player] at zero progress.
func New(sched clock.Scheduler, opts Options) *Player {
	if opts.Tick <= 0 {
		opts.Tick = DefaultTick
	}
	if opts.MinDuration < 1 {
		opts.MinDuration = DefaultMin
	}
	if opts.MaxDuration < opts.MinDuration {
		opts.MaxDuration = max(DefaultMax, opts.MinDuration)
	}
	if opts.Duration == 0 {
		opts.Duration = DefaultDuration
	}
	if opts.Logger == nil {
		opts.Logger = shared.DiscardLogger()
	}

	p := &Player{
		sched:  sched,
		logger: opts.Logger,
		tick:   opts.Tick,
		min:    opts.MinDuration,
		max:    opts.MaxDuration,
	}
	p.duration = p.clampDuration(opts.Duration)
	return p
}

// OnChange registers an observer called after every mutation. Observers run in registration order.
func (p *Player) OnChange(fn func(Snapshot)) {
	p.observers = append(p.observers, fn)
}

func (p *Player) State() State       { return p.state }
func (p *Player) Progress() float64  { return p.percentAt(p.position) }
func (p *Player) Duration() int      { return p.duration }
func (p *Player) IsPlaying() bool    { return p.state == Playing }
func (p *Player) Bounds() (int, int) { return p.min, p.max }
func (p *Player) Snapshot() Snapshot { return p.snapshot() }

// Play starts or resumes ticking from the current progress. It is a no-op while already playing.
func (p *Player) Play() {
	if p.state == Playing {
		return
	}
	p.state = Playing
	p.ticker = p.sched.ScheduleRepeating(p.tick, p.advance)
	p.logger.Debug("playback started", "position", p.position, "duration", p.duration)
	p.notify()
}

// Pause stops ticking and keeps the current progress.
func (p *Player) Pause() {
	if p.state != Playing {
		return
	}
	p.stopTicker()
	p.state = Paused
	p.logger.Debug("playback paused", "position", p.position)
	p.notify()
}

// Toggle pauses while playing and plays otherwise.
func (p *Player) Toggle() {
	if p.state == Playing {
		p.Pause()
	} else {
		p.Play()
	}
}

// Reset returns to [Stopped] at zero progress from any state.
func (p *Player) Reset() {
	p.stopTicker()
	p.state = Stopped
	p.position = 0
	p.notify()
}

// Seek sets progress to percent, clamped to [0,100], without changing the play state.
func (p *Player) Seek(percent float64) {
	if math.IsNaN(percent) {
		return
	}
	p.position = p.positionAt(clampPercent(percent))
	p.notify()
}

// SeekAt maps a pointer position x across a progress track of the given width and seeks there.
// A non-positive width is ignored.
func (p *Player) SeekAt(x, width int) {
	if width <= 0 {
		return
	}
	p.Seek(float64(x) / float64(width) * 100)
}

// SetDuration changes the track length, clamped to the configured bounds, and returns the value applied.
//
// The percentage is kept; while playing, later ticks run against the new length.
func (p *Player) SetDuration(seconds int) int {
	percent := p.Progress()
	p.duration = p.clampDuration(seconds)
	p.position = p.positionAt(percent)
	p.notify()
	return p.duration
}

// Elapsed returns the whole seconds played.
func (p *Player) Elapsed() int {
	return int(p.position / time.Second)
}

// CurrentTime formats [Player.Elapsed] as M:SS.
func (p *Player) CurrentTime() string { return shared.FormatClock(p.Elapsed()) }

// TotalTime formats the duration as M:SS.
func (p *Player) TotalTime() string { return shared.FormatClock(p.duration) }

// Display returns "current / total", e.g. "0:12 / 0:30".
func (p *Player) Display() string { return p.CurrentTime() + " / " + p.TotalTime() }

// advance is the tick callback. Position moves in whole ticks so the end is reached after exactly duration seconds.
func (p *Player) advance() {
	if p.state != Playing {
		return
	}

	p.position += p.tick

	if end := p.length(); p.position >= end {
		p.position = end
		p.stopTicker()
		p.state = Paused
		p.logger.Debug("playback reached the end", "duration", p.duration)
	}
	p.notify()
}

func (p *Player) stopTicker() {
	if p.ticker != 0 {
		p.sched.Cancel(p.ticker)
		p.ticker = 0
	}
}

func (p *Player) notify() {
	if len(p.observers) == 0 {
		return
	}
	snap := p.Snapshot()
	for _, fn := range p.observers {
		fn(snap)
	}
}

func (p *Player) clampDuration(seconds int) int {
	return max(1, min(max(seconds, p.min), p.max))
}

func (p *Player) length() time.Duration {
	return time.Duration(p.duration) * time.Second
}

// percentAt converts a position to a percentage; it multiplies first so whole percentages come out exact.
func (p *Player) percentAt(pos time.Duration) float64 {
	return float64(pos) * 100 / float64(p.length())
}

func (p *Player) positionAt(percent float64) time.Duration {
	return time.Duration(math.Round(percent / 100 * float64(p.length())))
}

func clampPercent(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func (p *Player) snapshot() Snapshot {
	return Snapshot{State: p.state, Progress: p.Progress(), Duration: p.duration, Display: p.Display()}
}

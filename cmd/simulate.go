package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/desertthunder/bestekar/internal/clock"
	"github.com/desertthunder/bestekar/internal/generation"
	"github.com/desertthunder/bestekar/internal/lyrics"
	"github.com/desertthunder/bestekar/internal/player"
	"github.com/desertthunder/bestekar/internal/shared"
	"github.com/urfave/cli/v3"
)

const checkpointBar = 20

// Checkpoint is one progress report of a simulated run.
type Checkpoint struct {
	State    string  `json:"state"`
	Progress float64 `json:"progress"`
	Time     string  `json:"time"`
}

// SimulationResult is the JSON output of [Runner.Simulate].
type SimulationResult struct {
	Track       *generation.Track `json:"track,omitempty"`
	Checkpoints []Checkpoint      `json:"checkpoints"`
	Error       string            `json:"error,omitempty"`
}

// simulation drives one generate-then-play run on a scheduler and records checkpoints.
type simulation struct {
	sched    clock.Scheduler
	s        *session
	step     int
	mark     int
	watcher  clock.Handle
	started  bool
	done     bool
	err      error
	emit     func(Checkpoint)
	finished func()
}

func newSimulation(sched clock.Scheduler, s *session, step int, emit func(Checkpoint), finished func()) *simulation {
	step = max(1, step)
	sim := &simulation{sched: sched, s: s, step: step, mark: -step, emit: emit, finished: finished}
	s.player.OnChange(sim.observe)
	return sim
}

// start submits req and polls the flow on every player tick.
func (sim *simulation) start(ctx context.Context, req generation.Request, poll time.Duration) {
	sim.s.flow.Generate(ctx, req)
	sim.watcher = sim.sched.ScheduleRepeating(poll, sim.watch)
}

func (sim *simulation) watch() {
	if sim.done {
		return
	}

	switch {
	case sim.s.flow.Err() != nil:
		sim.finish(sim.s.flow.Err())
	case sim.s.flow.Revealed() && !sim.started:
		sim.started = true
		sim.s.player.Play()
	case sim.started && sim.s.player.State() == player.Paused:
		sim.finish(nil)
	}
}

// observe records a checkpoint every step seconds and on every state change away from playing.
func (sim *simulation) observe(snap player.Snapshot) {
	if !sim.started {
		return
	}
	elapsed := sim.s.player.Elapsed()
	if snap.State == player.Playing && elapsed < sim.mark+sim.step {
		return
	}
	sim.mark = elapsed - elapsed%sim.step
	sim.emit(Checkpoint{
		State:    snap.State.String(),
		Progress: math.Round(snap.Progress*10) / 10,
		Time:     snap.Display,
	})
}

func (sim *simulation) finish(err error) {
	sim.done = true
	sim.err = err
	sim.sched.Cancel(sim.watcher)
	if sim.finished != nil {
		sim.finished()
	}
}

// Simulate generates a track from a style's sample lyrics and plays it to the end.
//
// By default it runs on virtual time and returns immediately; --realtime uses wall-clock timers.
func (r *Runner) Simulate(ctx context.Context, cmd *cli.Command) error {
	style := cmd.String("style")
	text, ok := lyrics.LyricsFor(style)
	if !ok {
		return fmt.Errorf("%w: %q", shared.ErrUnknownStyle, style)
	}

	useJSON := cmd.Bool("json")
	result := SimulationResult{Checkpoints: []Checkpoint{}}
	emit := func(c Checkpoint) {
		result.Checkpoints = append(result.Checkpoints, c)
		if !useJSON {
			r.writePlain("  %-7s %s  %s\n", c.State, progressBar(c.Progress), c.Time)
		}
	}

	var (
		sim *simulation
		s   *session
		err error
	)
	req := func() generation.Request {
		return generation.Request{Lyrics: text, Style: style, Duration: s.player.SetDuration(int(cmd.Int("duration")))}
	}
	gen := generator(cmd.Bool("fail"))
	poll := r.config.Player.Tick()

	if !useJSON {
		r.writePlainHeader("🎵 " + style)
	}

	if cmd.Bool("realtime") {
		events := clock.NewEventLoop(64)
		sched := clock.NewLoop(events.Post)
		runCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		s = r.newSession(sched, gen)
		sim = newSimulation(sched, s, int(cmd.Int("step")), emit, cancel)
		request := req()
		events.Post(func() { sim.start(runCtx, request, poll) })

		if err = events.Run(runCtx); err != nil && !(errors.Is(err, context.Canceled) && sim.done) {
			return err
		}
	} else {
		sched := clock.NewManual()
		s = r.newSession(sched, gen)
		sim = newSimulation(sched, s, int(cmd.Int("step")), emit, nil)
		request := req()
		sim.start(ctx, request, poll)

		limit := r.config.Generation.Delay() + 2*time.Duration(request.Duration)*time.Second + time.Minute
		for !sim.done && sched.Now() < limit {
			sched.Advance(time.Second)
		}
		if !sim.done {
			return fmt.Errorf("%w: simulation did not finish", shared.ErrServiceUnavailable)
		}
	}

	result.Track = s.flow.Track()
	if sim.err != nil {
		result.Error = sim.err.Error()
		r.logger.Error("simulated generation failed", "err", sim.err)
	}

	if useJSON {
		if err := r.writeJSON(result, true); err != nil {
			return err
		}
	} else if sim.err != nil {
		for _, n := range s.notices.Messages() {
			r.writePlain("✗ %s\n", n.Text)
		}
	} else {
		r.writePlainln("✓ %s (%s)", result.Track.Title, s.player.TotalTime())
	}

	return sim.err
}

// progressBar renders percent as a fixed-width text bar.
func progressBar(percent float64) string {
	filled := int(math.Round(percent / 100 * checkpointBar))
	filled = max(0, min(filled, checkpointBar))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", checkpointBar-filled) + "]"
}

package generation

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/bestekar/internal/clock"
	"github.com/desertthunder/bestekar/internal/notice"
	"github.com/desertthunder/bestekar/internal/player"
	"github.com/desertthunder/bestekar/internal/shared"
)

// DefaultDelay stands in for the latency of a real generation backend.
const DefaultDelay = 3 * time.Second

// ErrorMessage is the text of the notice shown when generation fails.
const ErrorMessage = "Bir hata oluştu. Lütfen tekrar deneyin."

// Options configures a [Controller].
type Options struct {
	Delay  time.Duration // simulated latency; zero fires on the next scheduler turn, negative means DefaultDelay
	Logger *log.Logger
}

// Controller drives the generate → loading → reveal flow. Use it only from the scheduler's event loop.
type Controller struct {
	sched  clock.Scheduler
	gen    Generator
	player *player.Player
	board  *notice.Board
	logger *log.Logger
	delay  time.Duration

	loading  bool
	pending  clock.Handle
	revealed bool
	track    *Track
	err      error
}

// NewController wires a controller to the player it resets and the board it reports failures on.
func NewController(sched clock.Scheduler, gen Generator, p *player.Player, board *notice.Board, opts Options) *Controller {
	if opts.Delay < 0 {
		opts.Delay = DefaultDelay
	}
	if opts.Logger == nil {
		opts.Logger = shared.DiscardLogger()
	}
	return &Controller{
		sched:  sched,
		gen:    gen,
		player: p,
		board:  board,
		logger: opts.Logger,
		delay:  opts.Delay,
	}
}

// Generate starts a generation and reports whether it did. While a generation is in flight it does nothing.
// ctx is handed to the [Generator] when the delay elapses.
func (c *Controller) Generate(ctx context.Context, req Request) bool {
	if c.loading {
		c.logger.Debug("generate ignored, already loading")
		return false
	}

	c.loading = true
	c.err = nil
	c.logger.Info("generation started", "style", req.Style, "duration", req.Duration)
	c.pending = c.sched.ScheduleOnce(c.delay, func() { c.complete(ctx, req) })
	return true
}

// Cancel abandons an in-flight generation without reporting an error.
func (c *Controller) Cancel() {
	if !c.loading {
		return
	}
	c.sched.Cancel(c.pending)
	c.pending = 0
	c.loading = false
	c.logger.Info("generation cancelled")
}

func (c *Controller) complete(ctx context.Context, req Request) {
	c.pending = 0

	track, err := c.gen.Generate(ctx, req)
	if err != nil {
		c.handleError(wrapError(req, err))
		return
	}

	c.loading = false
	c.revealed = true
	c.track = track
	c.player.Reset()
	c.logger.Info("generation finished", "id", track.ID, "title", track.Title)
}

// handleError resets the loading state unconditionally and surfaces err on the notice board.
func (c *Controller) handleError(err *GenerationError) {
	c.loading = false
	c.err = err
	c.logger.Error("generation failed", "err", err, "style", err.Request.Style)
	if c.board != nil {
		c.board.Show(notice.Error, ErrorMessage)
	}
}

// Loading reports whether a generation is in flight.
func (c *Controller) Loading() bool { return c.loading }

// Revealed reports whether a generation has completed, making the player visible.
func (c *Controller) Revealed() bool { return c.revealed }

// Track returns the most recent generated track, or nil.
func (c *Controller) Track() *Track { return c.track }

// Err returns the failure of the most recent generation, or nil.
func (c *Controller) Err() error { return c.err }

// Animating reports whether the waveform should move: while loading or while the player is playing.
func (c *Controller) Animating() bool {
	return c.loading || c.player.IsPlaying()
}

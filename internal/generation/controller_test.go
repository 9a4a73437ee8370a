package generation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/bestekar/internal/clock"
	"github.com/desertthunder/bestekar/internal/lyrics"
	"github.com/desertthunder/bestekar/internal/notice"
	"github.com/desertthunder/bestekar/internal/player"
	"github.com/desertthunder/bestekar/internal/shared"
)

// countingGenerator records calls and delegates to next.
type countingGenerator struct {
	next  Generator
	calls int
}

func (g *countingGenerator) Generate(ctx context.Context, req Request) (*Track, error) {
	g.calls++
	return g.next.Generate(ctx, req)
}

type fixture struct {
	sched  *clock.Manual
	player *player.Player
	board  *notice.Board
	gen    *countingGenerator
	ctrl   *Controller
}

func newFixture(gen Generator) *fixture {
	sched := clock.NewManual()
	p := player.New(sched, player.Options{Duration: 30})
	board := notice.NewBoard(sched, notice.DefaultDismiss)
	counting := &countingGenerator{next: gen}
	ctrl := NewController(sched, counting, p, board, Options{Delay: DefaultDelay})
	return &fixture{sched: sched, player: p, board: board, gen: counting, ctrl: ctrl}
}

var folkRequest = Request{
	Lyrics:   "Dağlar yüksek, yollar taşlı,\nGurbet elde gönül yaşlı.",
	Style:    lyrics.FolkSong,
	Duration: 30,
}

func TestController(t *testing.T) {
	ctx := context.Background()

	t.Run("generate loads, then reveals the player and resets it", func(t *testing.T) {
		f := newFixture(Simulated{})
		f.player.Play()
		f.sched.Advance(time.Second)

		if !f.ctrl.Generate(ctx, folkRequest) {
			t.Fatal("expected generation to start")
		}
		if !f.ctrl.Loading() {
			t.Fatal("expected loading state")
		}
		if !f.ctrl.Animating() {
			t.Error("expected waveform to animate while loading")
		}

		f.sched.Advance(2999 * time.Millisecond)
		if !f.ctrl.Loading() || f.ctrl.Revealed() {
			t.Fatal("completed before the simulated delay")
		}

		f.sched.Advance(time.Millisecond)
		if f.ctrl.Loading() {
			t.Error("expected loading to clear")
		}
		if !f.ctrl.Revealed() {
			t.Error("expected player to be revealed")
		}
		if f.player.State() != player.Stopped || f.player.Progress() != 0 {
			t.Errorf("expected reset player, got %s at %v", f.player.State(), f.player.Progress())
		}

		track := f.ctrl.Track()
		if track == nil || track.ID == "" {
			t.Fatalf("expected a track with an ID, got %+v", track)
		}
		if track.Title != "Dağlar yüksek, yollar taşlı" {
			t.Errorf("unexpected title %q", track.Title)
		}
	})

	t.Run("second generate while loading is a no-op", func(t *testing.T) {
		f := newFixture(Simulated{})

		first := f.ctrl.Generate(ctx, folkRequest)
		second := f.ctrl.Generate(ctx, Request{Style: lyrics.PopBallad, Duration: 45})

		if !first || second {
			t.Fatalf("expected (true, false), got (%v, %v)", first, second)
		}
		if !f.ctrl.Loading() {
			t.Error("second call must not affect loading state")
		}
		if f.sched.Pending() != 1 {
			t.Errorf("expected one pending generation, got %d", f.sched.Pending())
		}

		f.sched.Advance(DefaultDelay)
		if f.gen.calls != 1 {
			t.Errorf("expected one backend call, got %d", f.gen.calls)
		}
		if f.ctrl.Track().Style != lyrics.FolkSong {
			t.Errorf("expected the first request to win, got %q", f.ctrl.Track().Style)
		}
	})

	t.Run("generate is accepted again after completion", func(t *testing.T) {
		f := newFixture(Simulated{})
		f.ctrl.Generate(ctx, folkRequest)
		f.sched.Advance(DefaultDelay)

		if !f.ctrl.Generate(ctx, folkRequest) {
			t.Error("expected a new generation to start")
		}
	})

	t.Run("failure resets loading and shows a notice", func(t *testing.T) {
		cause := errors.New("backend exploded")
		f := newFixture(Failing{Err: cause})

		f.ctrl.Generate(ctx, folkRequest)
		f.sched.Advance(DefaultDelay)

		if f.ctrl.Loading() {
			t.Error("loading must be reset after failure")
		}
		if f.ctrl.Revealed() {
			t.Error("player must stay hidden after failure")
		}

		err := f.ctrl.Err()
		var gerr *GenerationError
		if !errors.As(err, &gerr) {
			t.Fatalf("expected *GenerationError, got %T", err)
		}
		if !errors.Is(err, cause) || !errors.Is(err, shared.ErrGenerationFailed) {
			t.Errorf("expected error to match cause and ErrGenerationFailed: %v", err)
		}

		msgs := f.board.Messages()
		if len(msgs) != 1 || msgs[0].Text != ErrorMessage || msgs[0].Kind != notice.Error {
			t.Fatalf("unexpected notices %+v", msgs)
		}

		f.sched.Advance(5 * time.Second)
		if len(f.board.Messages()) != 0 {
			t.Error("expected notice to auto-dismiss after 5s")
		}

		if !f.ctrl.Generate(ctx, folkRequest) {
			t.Error("expected retry to be accepted after failure")
		}
	})

	t.Run("plain errors from a generator are wrapped", func(t *testing.T) {
		f := newFixture(generatorFunc(func(context.Context, Request) (*Track, error) {
			return nil, context.DeadlineExceeded
		}))

		f.ctrl.Generate(ctx, folkRequest)
		f.sched.Advance(DefaultDelay)

		var gerr *GenerationError
		if !errors.As(f.ctrl.Err(), &gerr) || gerr.Request.Style != folkRequest.Style {
			t.Errorf("expected wrapped error carrying the request, got %v", f.ctrl.Err())
		}
	})

	t.Run("the caller's context reaches the generator", func(t *testing.T) {
		f := newFixture(Simulated{})
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		f.ctrl.Generate(cancelled, folkRequest)
		f.sched.Advance(DefaultDelay)

		if !errors.Is(f.ctrl.Err(), context.Canceled) || f.ctrl.Revealed() {
			t.Errorf("expected cancellation to fail the generation, got err=%v revealed=%v", f.ctrl.Err(), f.ctrl.Revealed())
		}
	})

	t.Run("Cancel abandons the in-flight generation", func(t *testing.T) {
		f := newFixture(Simulated{})
		f.ctrl.Generate(ctx, folkRequest)
		f.ctrl.Cancel()

		f.sched.Advance(time.Minute)
		if f.gen.calls != 0 || f.ctrl.Loading() || f.ctrl.Revealed() {
			t.Errorf("expected nothing to happen, calls=%d loading=%v revealed=%v", f.gen.calls, f.ctrl.Loading(), f.ctrl.Revealed())
		}
	})
}

type generatorFunc func(context.Context, Request) (*Track, error)

func (fn generatorFunc) Generate(ctx context.Context, req Request) (*Track, error) { return fn(ctx, req) }

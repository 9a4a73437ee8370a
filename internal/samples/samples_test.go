package samples

import (
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/bestekar/internal/clock"
	"github.com/desertthunder/bestekar/internal/shared"
)

func countPlaying(r *Registry) int {
	n := 0
	for _, s := range r.Samples() {
		if r.Playing(s.ID) {
			n++
		}
	}
	return n
}

func TestRegistry(t *testing.T) {
	t.Run("toggle starts then stops a sample", func(t *testing.T) {
		r := NewRegistry(clock.NewManual(), Catalog, 0, nil)

		if err := r.Toggle("gece"); err != nil {
			t.Fatalf("toggle failed: %v", err)
		}
		if !r.Playing("gece") {
			t.Fatal("expected gece to play")
		}

		if err := r.Toggle("gece"); err != nil {
			t.Fatalf("toggle failed: %v", err)
		}
		if r.Playing("gece") {
			t.Error("expected gece to stop")
		}
	})

	t.Run("toggling B while A plays leaves only B playing", func(t *testing.T) {
		r := NewRegistry(clock.NewManual(), Catalog, 0, nil)
		r.Toggle("gece")
		r.Toggle("anadolu")

		if r.Playing("gece") {
			t.Error("expected gece to be stopped")
		}
		if !r.Playing("anadolu") {
			t.Error("expected anadolu to play")
		}
		if n := countPlaying(r); n != 1 {
			t.Errorf("expected exactly one playing sample, got %d", n)
		}

		active, ok := r.Active()
		if !ok || active.ID != "anadolu" {
			t.Errorf("expected anadolu active, got %+v (%v)", active, ok)
		}
	})

	t.Run("at most one sample plays across any toggle sequence", func(t *testing.T) {
		r := NewRegistry(clock.NewManual(), Catalog, 0, nil)
		seq := []string{"gece", "sehir", "sehir", "sevda", "anadolu", "gece", "gece", "sevda"}

		for _, id := range seq {
			r.Toggle(id)
			if n := countPlaying(r); n > 1 {
				t.Fatalf("after toggling %s, %d samples playing", id, n)
			}
		}
	})

	t.Run("preview stops on its own", func(t *testing.T) {
		sched := clock.NewManual()
		r := NewRegistry(sched, Catalog, 3*time.Second, nil)
		r.Toggle("sehir")

		sched.Advance(2999 * time.Millisecond)
		if !r.Playing("sehir") {
			t.Fatal("stopped too early")
		}
		sched.Advance(time.Millisecond)
		if r.Playing("sehir") {
			t.Error("expected preview to stop after 3s")
		}
	})

	t.Run("stale auto-stop does not cut a restarted preview short", func(t *testing.T) {
		sched := clock.NewManual()
		r := NewRegistry(sched, Catalog, 3*time.Second, nil)

		r.Toggle("sevda")
		sched.Advance(2 * time.Second)
		r.Toggle("sevda")
		r.Toggle("sevda")

		sched.Advance(2 * time.Second)
		if !r.Playing("sevda") {
			t.Error("restarted preview was stopped by the earlier timer")
		}
		if sched.Pending() != 1 {
			t.Errorf("expected a single pending auto-stop, got %d", sched.Pending())
		}
	})

	t.Run("unknown sample", func(t *testing.T) {
		r := NewRegistry(clock.NewManual(), Catalog, 0, nil)

		if err := r.Toggle("missing"); !errors.Is(err, shared.ErrUnknownSample) {
			t.Errorf("expected ErrUnknownSample, got %v", err)
		}
		if err := r.ToggleAt(len(Catalog)); !errors.Is(err, shared.ErrUnknownSample) {
			t.Errorf("expected ErrUnknownSample for out of range position, got %v", err)
		}
		if r.Playing("missing") {
			t.Error("unknown sample should never be playing")
		}
	})

	t.Run("ToggleAt and StopAll", func(t *testing.T) {
		sched := clock.NewManual()
		r := NewRegistry(sched, Catalog, 0, nil)

		if err := r.ToggleAt(2); err != nil {
			t.Fatalf("toggle failed: %v", err)
		}
		if !r.Playing(Catalog[2].ID) {
			t.Fatalf("expected %s to play", Catalog[2].ID)
		}

		r.StopAll()
		if countPlaying(r) != 0 || sched.Pending() != 0 {
			t.Errorf("expected nothing playing or pending, got %d playing, %d pending", countPlaying(r), sched.Pending())
		}
	})
}

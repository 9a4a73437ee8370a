// Package samples manages the sample preview buttons. At most one preview plays at a time, and a started preview
// stops itself after a fixed length.
package samples

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/bestekar/internal/clock"
	"github.com/desertthunder/bestekar/internal/lyrics"
	"github.com/desertthunder/bestekar/internal/shared"
)

// DefaultPreview is how long a preview "plays" before stopping on its own.
const DefaultPreview = 3 * time.Second

// Sample is one preview card.
type Sample struct {
	ID    string
	Title string
	Style string
}

// Catalog is the fixed set of sample cards shown on the page.
var Catalog = []Sample{
	{ID: "gece", Title: "Gece Düşünceleri", Style: lyrics.EmotionalBallad},
	{ID: "anadolu", Title: "Anadolu Türküsü", Style: lyrics.FolkSong},
	{ID: "sehir", Title: "Şehir Işıkları", Style: lyrics.PopBallad},
	{ID: "sevda", Title: "Sevda Rüzgarı", Style: lyrics.RomanticBallad},
}

type entry struct {
	Sample
	playing bool
	stop    clock.Handle
}

// Registry tracks play state for every sample. Like the player, it must only be used from the scheduler's event loop.
type Registry struct {
	sched   clock.Scheduler
	preview time.Duration
	logger  *log.Logger
	entries []*entry
	index   map[string]*entry
}

// NewRegistry creates a [Registry] over the given samples with nothing playing.
// A non-positive preview falls back to [DefaultPreview].
func NewRegistry(sched clock.Scheduler, set []Sample, preview time.Duration, logger *log.Logger) *Registry {
	if preview <= 0 {
		preview = DefaultPreview
	}
	if logger == nil {
		logger = shared.DiscardLogger()
	}

	r := &Registry{
		sched:   sched,
		preview: preview,
		logger:  logger,
		index:   make(map[string]*entry, len(set)),
	}
	for _, s := range set {
		e := &entry{Sample: s}
		r.entries = append(r.entries, e)
		r.index[s.ID] = e
	}
	return r
}

// Samples returns the registered samples in display order.
func (r *Registry) Samples() []Sample {
	out := make([]Sample, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Sample
	}
	return out
}

// Toggle stops id if it is playing. Otherwise it stops every other sample, starts id and schedules its auto-stop.
func (r *Registry) Toggle(id string) error {
	target, ok := r.index[id]
	if !ok {
		return fmt.Errorf("%w: %q", shared.ErrUnknownSample, id)
	}

	if target.playing {
		r.stop(target)
		r.logger.Debug("sample stopped", "id", id)
		return nil
	}

	for _, e := range r.entries {
		if e != target {
			r.stop(e)
		}
	}

	target.playing = true
	target.stop = r.sched.ScheduleOnce(r.preview, func() {
		target.stop = 0
		target.playing = false
		r.logger.Debug("sample preview finished", "id", id)
	})
	r.logger.Debug("sample started", "id", id)
	return nil
}

// ToggleAt toggles the sample at the given display position.
func (r *Registry) ToggleAt(i int) error {
	if i < 0 || i >= len(r.entries) {
		return fmt.Errorf("%w: position %d", shared.ErrUnknownSample, i)
	}
	return r.Toggle(r.entries[i].ID)
}

// Playing reports whether id is playing. Unknown ids are never playing.
func (r *Registry) Playing(id string) bool {
	e, ok := r.index[id]
	return ok && e.playing
}

// Active returns the playing sample, if any.
func (r *Registry) Active() (Sample, bool) {
	for _, e := range r.entries {
		if e.playing {
			return e.Sample, true
		}
	}
	return Sample{}, false
}

// StopAll stops every sample and cancels pending auto-stops.
func (r *Registry) StopAll() {
	for _, e := range r.entries {
		r.stop(e)
	}
}

func (r *Registry) stop(e *entry) {
	if e.stop != 0 {
		r.sched.Cancel(e.stop)
		e.stop = 0
	}
	e.playing = false
}

package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/bestekar/internal/shared"
	"golang.org/x/time/rate"
)

// Request describes what to generate.
type Request struct {
	Lyrics   string
	Style    string
	Duration int // seconds
}

// Track is the (simulated) result of a generation.
type Track struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Style     string    `json:"style"`
	Lyrics    string    `json:"lyrics"`
	Duration  int       `json:"duration"`
	CreatedAt time.Time `json:"created_at"`
}

// Generator produces a track for a request.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Track, error)
}

// GenerationError is returned for every failed generation. It matches [shared.ErrGenerationFailed] and its cause
// under [errors.Is].
type GenerationError struct {
	Request Request
	Err     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() []error {
	return []error{shared.ErrGenerationFailed, e.Err}
}

// wrapError returns err as a [*GenerationError], leaving existing ones untouched.
func wrapError(req Request, err error) *GenerationError {
	var gerr *GenerationError
	if errors.As(err, &gerr) {
		return gerr
	}
	return &GenerationError{Request: req, Err: err}
}

const untitled = "İsimsiz Şarkı"

// Simulated is a [Generator] that never fails.
type Simulated struct {
	Now func() time.Time
}

func (s Simulated) Generate(ctx context.Context, req Request) (*Track, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	return &Track{
		ID:        shared.GenerateID(),
		Title:     titleFrom(req.Lyrics),
		Style:     req.Style,
		Lyrics:    req.Lyrics,
		Duration:  req.Duration,
		CreatedAt: now(),
	}, nil
}

// titleFrom uses the first non-empty lyric line, without trailing punctuation.
func titleFrom(lyrics string) string {
	for _, line := range strings.Split(lyrics, "\n") {
		line = strings.TrimRight(strings.TrimSpace(line), ",.;:!?")
		if line != "" {
			return line
		}
	}
	return untitled
}

// Failing is a [Generator] that always returns Err (or a generic failure when Err is nil).
type Failing struct {
	Err error
}

func (f Failing) Generate(ctx context.Context, req Request) (*Track, error) {
	err := f.Err
	if err == nil {
		err = errors.New("simulated backend failure")
	}
	return nil, &GenerationError{Request: req, Err: err}
}

// RateLimited rejects requests beyond a per-minute quota instead of waiting for capacity.
type RateLimited struct {
	next    Generator
	limiter *rate.Limiter
}

// NewRateLimited allows perMinute generations per minute with a burst of perMinute.
// A non-positive perMinute returns next unchanged.
func NewRateLimited(next Generator, perMinute int) Generator {
	if perMinute <= 0 {
		return next
	}
	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
	}
}

func (r *RateLimited) Generate(ctx context.Context, req Request) (*Track, error) {
	if !r.limiter.Allow() {
		return nil, &GenerationError{Request: req, Err: shared.ErrQuotaExceeded}
	}
	return r.next.Generate(ctx, req)
}

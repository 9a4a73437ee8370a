// Package notice holds transient on-screen notifications that dismiss themselves after a fixed delay.
package notice

import (
	"time"

	"github.com/desertthunder/bestekar/internal/clock"
)

// DefaultDismiss is how long a notice stays visible.
const DefaultDismiss = 5 * time.Second

// Kind distinguishes how a notice is styled.
type Kind int

const (
	Info Kind = iota
	Error
)

// Notice is a single visible message.
type Notice struct {
	ID   clock.Handle
	Kind Kind
	Text string
}

// Board is the list of visible notices. Use it only from the scheduler's event loop.
type Board struct {
	sched   clock.Scheduler
	dismiss time.Duration
	items   []Notice
}

// NewBoard creates an empty [Board]. A non-positive dismiss falls back to [DefaultDismiss].
func NewBoard(sched clock.Scheduler, dismiss time.Duration) *Board {
	if dismiss <= 0 {
		dismiss = DefaultDismiss
	}
	return &Board{sched: sched, dismiss: dismiss}
}

// Show displays text and schedules its removal.
func (b *Board) Show(kind Kind, text string) Notice {
	var n Notice
	n.ID = b.sched.ScheduleOnce(b.dismiss, func() { b.remove(n.ID) })
	n.Kind, n.Text = kind, text
	b.items = append(b.items, n)
	return n
}

// Dismiss removes a notice early.
func (b *Board) Dismiss(id clock.Handle) {
	b.sched.Cancel(id)
	b.remove(id)
}

// Messages returns the visible notices, oldest first.
func (b *Board) Messages() []Notice {
	out := make([]Notice, len(b.items))
	copy(out, b.items)
	return out
}

func (b *Board) remove(id clock.Handle) {
	for i, n := range b.items {
		if n.ID == id {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return
		}
	}
}

package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/bestekar/internal/theme"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgCallback MsgKind = iota
	MsgThemeLoaded
	MsgThemeSaved
)

// callbackMsg is the constructor for [MsgCallback]; it carries a scheduler callback onto the update loop.
func callbackMsg(fn func()) Msg {
	return Msg{kind: MsgCallback, data: fn}
}

type themeResult struct {
	theme theme.Theme
	err   error
}

// themeLoadedMsg is the constructor for [MsgThemeLoaded]
func themeLoadedMsg(t theme.Theme, err error) Msg {
	return Msg{kind: MsgThemeLoaded, data: themeResult{t, err}}
}

// themeSavedMsg is the constructor for [MsgThemeSaved]
func themeSavedMsg(t theme.Theme, err error) Msg {
	return Msg{kind: MsgThemeSaved, data: themeResult{t, err}}
}

// Bridge posts scheduler callbacks into a running [tea.Program]. It satisfies clock.Poster via [Bridge.Post].
//
// Callbacks posted before [Bridge.Attach] are held and delivered on attach.
type Bridge struct {
	mu      sync.Mutex
	program *tea.Program
	held    []func()
}

// Attach connects the bridge to p and flushes held callbacks.
func (b *Bridge) Attach(p *tea.Program) {
	b.mu.Lock()
	b.program = p
	held := b.held
	b.held = nil
	b.mu.Unlock()

	for _, fn := range held {
		p.Send(callbackMsg(fn))
	}
}

// Post delivers fn to the program's update loop.
func (b *Bridge) Post(fn func()) {
	b.mu.Lock()
	p := b.program
	if p == nil {
		b.held = append(b.held, fn)
	}
	b.mu.Unlock()

	if p != nil {
		p.Send(callbackMsg(fn))
	}
}

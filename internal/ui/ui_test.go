package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/bestekar/internal/clock"
	"github.com/desertthunder/bestekar/internal/generation"
	"github.com/desertthunder/bestekar/internal/lyrics"
	"github.com/desertthunder/bestekar/internal/models"
	"github.com/desertthunder/bestekar/internal/notice"
	"github.com/desertthunder/bestekar/internal/player"
	"github.com/desertthunder/bestekar/internal/samples"
	"github.com/desertthunder/bestekar/internal/shared"
	"github.com/desertthunder/bestekar/internal/theme"
)

type memoryPrefs struct {
	values map[string]string
	err    error
}

func (p *memoryPrefs) Get(_ context.Context, key string) (*models.Preference, error) {
	if p.err != nil {
		return nil, p.err
	}
	v, ok := p.values[key]
	if !ok {
		return nil, shared.ErrPreferenceMissing
	}
	return &models.Preference{Key: key, Value: v}, nil
}

func (p *memoryPrefs) Set(_ context.Context, pref *models.Preference) error {
	if p.err != nil {
		return p.err
	}
	p.values[pref.Key] = pref.Value
	return nil
}

func (p *memoryPrefs) Delete(_ context.Context, key string) error {
	if p.err != nil {
		return p.err
	}
	delete(p.values, key)
	return nil
}

type harness struct {
	sched *clock.Manual
	deps  Deps
	prefs *memoryPrefs
	model *Model
}

func newHarness(gen generation.Generator) *harness {
	sched := clock.NewManual()
	p := player.New(sched, player.Options{Duration: 30})
	board := notice.NewBoard(sched, notice.DefaultDismiss)
	prefs := &memoryPrefs{values: map[string]string{}}
	deps := Deps{
		Player:  p,
		Flow:    generation.NewController(sched, gen, p, board, generation.Options{Delay: generation.DefaultDelay}),
		Samples: samples.NewRegistry(sched, samples.Catalog, samples.DefaultPreview, nil),
		Lyrics:  lyrics.NewField(""),
		Notices: board,
		Themes:  theme.NewStore(prefs, theme.Light),
	}
	return &harness{sched: sched, deps: deps, prefs: prefs, model: NewModel(context.Background(), deps)}
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	_, cmd := h.model.Update(msg)
	return cmd
}

func (h *harness) press(keys ...string) {
	for _, k := range keys {
		switch k {
		case "tab":
			h.send(tea.KeyMsg{Type: tea.KeyTab})
		case "enter":
			h.send(tea.KeyMsg{Type: tea.KeyEnter})
		case "esc":
			h.send(tea.KeyMsg{Type: tea.KeyEsc})
		case "left":
			h.send(tea.KeyMsg{Type: tea.KeyLeft})
		case "right":
			h.send(tea.KeyMsg{Type: tea.KeyRight})
		case "down":
			h.send(tea.KeyMsg{Type: tea.KeyDown})
		case " ":
			h.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		default:
			h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		}
	}
}

// reveal runs a generation to completion from the page focus.
func (h *harness) reveal(t *testing.T) {
	t.Helper()
	h.press("esc", "g")
	h.sched.Advance(generation.DefaultDelay)
	if !h.deps.Flow.Revealed() {
		t.Fatal("expected player to be revealed")
	}
}

func TestModelFocus(t *testing.T) {
	h := newHarness(generation.Simulated{})

	if h.model.Focus() != FocusLyrics {
		t.Fatalf("expected lyrics focus, got %v", h.model.Focus())
	}

	h.press("tab")
	if h.model.Focus() != FocusStyle {
		t.Errorf("expected style focus, got %v", h.model.Focus())
	}
	h.press("tab", "tab", "tab")
	if h.model.Focus() != FocusLyrics {
		t.Errorf("expected focus to wrap to lyrics, got %v", h.model.Focus())
	}
}

func TestModelKeys(t *testing.T) {
	t.Run("typing goes to the lyrics field", func(t *testing.T) {
		h := newHarness(generation.Simulated{})
		h.press("q", "g")

		if got := h.deps.Lyrics.Text(); got != "qg" {
			t.Errorf("expected lyrics %q, got %q", "qg", got)
		}
		if h.deps.Flow.Loading() {
			t.Error("expected page shortcuts to be ignored while editing")
		}
	})

	t.Run("enter in lyrics starts generation", func(t *testing.T) {
		h := newHarness(generation.Simulated{})
		h.press("enter")

		if !h.deps.Flow.Loading() {
			t.Error("expected loading after enter")
		}
	})

	t.Run("style list selection replaces lyrics", func(t *testing.T) {
		h := newHarness(generation.Simulated{})
		h.press("tab", "down")

		want, _ := lyrics.LyricsFor(lyrics.FolkSong)
		if got := h.deps.Lyrics.SelectedStyle(); got != lyrics.FolkSong {
			t.Errorf("expected style %q, got %q", lyrics.FolkSong, got)
		}
		if got := h.deps.Lyrics.Text(); got != want {
			t.Errorf("expected folk lyrics, got %q", got)
		}
		if h.model.editor.Value() != want {
			t.Error("expected editor to show the selected lyrics")
		}
	})

	t.Run("duration slider clamps", func(t *testing.T) {
		h := newHarness(generation.Simulated{})
		h.press("tab", "tab")

		h.press("right", "right")
		if got := h.deps.Player.Duration(); got != 32 {
			t.Errorf("expected 32, got %d", got)
		}
		for range 60 {
			h.press("left")
		}
		if got := h.deps.Player.Duration(); got != player.DefaultMin {
			t.Errorf("expected %d, got %d", player.DefaultMin, got)
		}
	})

	t.Run("space only toggles a revealed player", func(t *testing.T) {
		h := newHarness(generation.Simulated{})
		h.press("esc", " ")
		if h.deps.Player.IsPlaying() {
			t.Fatal("expected hidden player to ignore space")
		}

		h.reveal(t)
		h.press(" ")
		if !h.deps.Player.IsPlaying() {
			t.Error("expected space to start playback")
		}
		h.press(" ")
		if h.deps.Player.State() != player.Paused {
			t.Errorf("expected paused, got %v", h.deps.Player.State())
		}
	})

	t.Run("space in the lyrics editor types instead of toggling", func(t *testing.T) {
		h := newHarness(generation.Simulated{})
		h.reveal(t)

		h.press("tab")
		if h.model.Focus() != FocusLyrics {
			t.Fatalf("expected lyrics focus, got %v", h.model.Focus())
		}
		h.press("a", " ", "b")
		if h.deps.Player.IsPlaying() {
			t.Error("expected space in the editor to leave the player alone")
		}
		if got := h.deps.Lyrics.Text(); got != "a b" {
			t.Errorf("expected lyrics %q, got %q", "a b", got)
		}
	})

	t.Run("arrows seek a revealed player from the page", func(t *testing.T) {
		h := newHarness(generation.Simulated{})
		h.reveal(t)

		h.press("right", "right")
		if got := h.deps.Player.Progress(); got != 10 {
			t.Errorf("expected progress 10, got %v", got)
		}
		h.press("left")
		if got := h.deps.Player.Progress(); got != 5 {
			t.Errorf("expected progress 5, got %v", got)
		}
	})

	t.Run("digits toggle samples", func(t *testing.T) {
		h := newHarness(generation.Simulated{})
		h.press("esc", "2")

		if !h.deps.Samples.Playing("anadolu") {
			t.Fatal("expected second sample playing")
		}
		h.press("1")
		if h.deps.Samples.Playing("anadolu") || !h.deps.Samples.Playing("gece") {
			t.Error("expected only the first sample playing")
		}
		h.press("9")
		if !h.deps.Samples.Playing("gece") {
			t.Error("expected out-of-range digit to be ignored")
		}
	})

	t.Run("esc cancels a pending generation", func(t *testing.T) {
		h := newHarness(generation.Simulated{})
		h.press("esc", "g")
		if !h.deps.Flow.Loading() {
			t.Fatal("expected loading")
		}

		h.press("esc")
		if h.deps.Flow.Loading() {
			t.Error("expected loading to stop")
		}
		msgs := h.deps.Notices.Messages()
		if len(msgs) != 1 || msgs[0].Text != cancelNotice {
			t.Errorf("expected cancel notice, got %+v", msgs)
		}

		h.sched.Advance(generation.DefaultDelay)
		if h.deps.Flow.Revealed() || h.deps.Flow.Err() != nil {
			t.Error("expected cancelled generation to never complete")
		}
	})

	t.Run("esc without a pending generation shows nothing", func(t *testing.T) {
		h := newHarness(generation.Simulated{})
		h.press("esc", "esc")

		if msgs := h.deps.Notices.Messages(); len(msgs) != 0 {
			t.Errorf("expected no notices, got %+v", msgs)
		}
	})

	t.Run("quitting cancels a pending generation", func(t *testing.T) {
		h := newHarness(generation.Simulated{})
		h.press("esc", "g")

		cmd := h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if h.deps.Flow.Loading() {
			t.Error("expected loading to stop on quit")
		}
		h.sched.Advance(generation.DefaultDelay)
		if h.deps.Flow.Revealed() {
			t.Error("expected no reveal after quit")
		}
	})

	t.Run("q quits outside the editor", func(t *testing.T) {
		h := newHarness(generation.Simulated{})
		h.press("esc")

		cmd := h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected QuitMsg")
		}
	})
}

func TestModelMouse(t *testing.T) {
	h := newHarness(generation.Simulated{})
	h.reveal(t)
	h.model.View()

	if h.model.barRow < 0 || h.model.barWidth <= 0 {
		t.Fatalf("expected bar hit box, got row=%d width=%d", h.model.barRow, h.model.barWidth)
	}

	h.send(tea.MouseMsg{
		X:      barIndent + h.model.barWidth/2,
		Y:      h.model.barRow,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	if got := h.deps.Player.Progress(); got != 50 {
		t.Errorf("expected progress 50, got %v", got)
	}

	h.send(tea.MouseMsg{X: barIndent, Y: h.model.barRow + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := h.deps.Player.Progress(); got != 50 {
		t.Errorf("expected clicks off the bar to be ignored, got %v", got)
	}
}

func TestModelTheme(t *testing.T) {
	t.Run("toggle saves and applies", func(t *testing.T) {
		h := newHarness(generation.Simulated{})
		h.press("esc")

		cmd := h.model.toggleTheme()
		if h.model.Theme() != theme.Dark {
			t.Fatalf("expected dark, got %v", h.model.Theme())
		}
		h.send(cmd())
		if got := h.prefs.values[models.ThemeKey]; got != string(theme.Dark) {
			t.Errorf("expected saved dark, got %q", got)
		}
	})

	t.Run("init loads the saved theme", func(t *testing.T) {
		h := newHarness(generation.Simulated{})
		h.prefs.values[models.ThemeKey] = string(theme.Dark)

		h.send(h.model.loadTheme()())
		if h.model.Theme() != theme.Dark {
			t.Errorf("expected dark, got %v", h.model.Theme())
		}
	})

	t.Run("a late load does not undo a toggle", func(t *testing.T) {
		h := newHarness(generation.Simulated{})
		h.press("esc")

		h.model.toggleTheme()
		h.send(themeLoadedMsg(theme.Light, nil))
		if h.model.Theme() != theme.Dark {
			t.Errorf("expected toggled dark to stick, got %v", h.model.Theme())
		}
	})

	t.Run("save failure shows a notice", func(t *testing.T) {
		h := newHarness(generation.Simulated{})
		h.prefs.err = errors.New("disk full")

		h.send(h.model.toggleTheme()())
		msgs := h.deps.Notices.Messages()
		if len(msgs) != 1 || msgs[0].Text != themeNotice {
			t.Errorf("expected theme notice, got %+v", msgs)
		}
	})
}

func TestModelView(t *testing.T) {
	t.Run("player hidden until generated", func(t *testing.T) {
		h := newHarness(generation.Simulated{})
		if strings.Contains(h.model.View(), "0:00 / 0:30") {
			t.Error("expected no player before generation")
		}

		h.reveal(t)
		if !strings.Contains(h.model.View(), "0:00 / 0:30") {
			t.Error("expected player display after generation")
		}
	})

	t.Run("failure notice rendered", func(t *testing.T) {
		h := newHarness(generation.Failing{})
		h.press("esc", "g")
		h.sched.Advance(generation.DefaultDelay)

		if !strings.Contains(h.model.View(), generation.ErrorMessage) {
			t.Error("expected error notice in view")
		}
		h.sched.Advance(notice.DefaultDismiss)
		if strings.Contains(h.model.View(), generation.ErrorMessage) {
			t.Error("expected notice to be dismissed")
		}
	})

	t.Run("spinner starts with loading", func(t *testing.T) {
		h := newHarness(generation.Simulated{})
		h.press("esc")

		if cmd := h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")}); cmd == nil {
			t.Fatal("expected spinner tick command")
		}
		if !h.model.animating {
			t.Error("expected animation flag")
		}
	})
}

func TestBridge(t *testing.T) {
	var b Bridge
	ran := 0
	b.Post(func() { ran++ })

	if len(b.held) != 1 {
		t.Fatalf("expected one held callback, got %d", len(b.held))
	}
	if ran != 0 {
		t.Error("expected callback to wait for attach")
	}
}

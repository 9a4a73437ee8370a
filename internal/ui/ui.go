package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/bestekar/internal/generation"
	"github.com/desertthunder/bestekar/internal/lyrics"
	"github.com/desertthunder/bestekar/internal/notice"
	"github.com/desertthunder/bestekar/internal/player"
	"github.com/desertthunder/bestekar/internal/samples"
	"github.com/desertthunder/bestekar/internal/shared"
	"github.com/desertthunder/bestekar/internal/theme"
)

// Focus represents which control receives keys.
type Focus int

const (
	FocusLyrics Focus = iota
	FocusStyle
	FocusDuration
	FocusPage
	focusCount
)

const (
	seekStep     = 5.0
	barIndent    = 2
	waveBars     = "▂▃▅▇▅▃▂▁▂▄▆█▆▄▂▁"
	playIcon     = "▶️"
	pauseIcon    = "⏸️"
	themeNotice  = "Tema kaydedilemedi."
	cancelNotice = "Oluşturma iptal edildi."
)

// Deps are the components the TUI drives. Themes may be nil, in which case theme changes are not persisted.
type Deps struct {
	Player  *player.Player
	Flow    *generation.Controller
	Samples *samples.Registry
	Lyrics  *lyrics.Field
	Notices *notice.Board
	Themes  *theme.Store
	Theme   theme.Theme
	Logger  *log.Logger
}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	deps    Deps
	keys    keyMap
	help    help.Model
	editor  textarea.Model
	styles  list.Model
	spinner spinner.Model
	bar     progress.Model

	focus     Focus
	theme     theme.Theme
	themeSet  bool // the user picked a theme; a late load must not override it
	palette   *Palette
	animating bool
	frame     int
	width     int
	height    int

	// progress bar hit box, recorded by View for mouse seeking
	barRow   int
	barWidth int
}

// NewModel creates a new TUI model bound to deps.
func NewModel(ctx context.Context, deps Deps) *Model {
	if deps.Logger == nil {
		deps.Logger = shared.DiscardLogger()
	}
	if deps.Theme == "" {
		deps.Theme = theme.Light
	}

	editor := textarea.New()
	editor.Placeholder = "Şarkı sözlerinizi buraya yazın..."
	editor.ShowLineNumbers = false
	editor.SetWidth(60)
	editor.SetHeight(5)
	editor.SetValue(deps.Lyrics.Text())
	editor.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := &Model{
		ctx:     ctx,
		deps:    deps,
		keys:    newKeyMap(),
		help:    help.New(),
		editor:  editor,
		styles:  newStyleList(60, 8),
		spinner: spin,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(50)),
		focus:   FocusLyrics,
	}
	m.applyTheme(deps.Theme)
	return m
}

// Focus returns the control that currently receives keys.
func (m *Model) Focus() Focus { return m.focus }

// Theme returns the active theme.
func (m *Model) Theme() theme.Theme { return m.theme }

// Init starts the cursor blink and loads the saved theme.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.loadTheme())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w := max(20, min(msg.Width-6, 80))
		m.editor.SetWidth(w)
		m.styles.SetSize(w, 8)
		m.bar.Width = max(10, w-barIndent)
		m.help.Width = msg.Width

	case Msg:
		cmd = m.handleMsg(msg)

	case spinner.TickMsg:
		if !m.deps.Flow.Animating() {
			m.animating = false
			return m, nil
		}
		m.frame++
		m.spinner, cmd = m.spinner.Update(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.KeyMsg:
		var quit bool
		cmd, quit = m.handleKeys(msg)
		if quit {
			m.deps.Flow.Cancel()
			return m, tea.Quit
		}

	default:
		if m.focus == FocusLyrics {
			m.editor, cmd = m.editor.Update(msg)
		}
	}

	return m, tea.Batch(cmd, m.syncAnimation())
}

func (m *Model) handleMsg(msg Msg) tea.Cmd {
	switch msg.kind {
	case MsgCallback:
		if fn, ok := msg.data.(func()); ok {
			fn()
		}
	case MsgThemeLoaded, MsgThemeSaved:
		res := msg.data.(themeResult)
		if res.err != nil {
			m.deps.Logger.Warn("theme preference unavailable", "err", res.err)
			if msg.kind == MsgThemeSaved {
				m.deps.Notices.Show(notice.Info, themeNotice)
			}
			return nil
		}
		if msg.kind == MsgThemeLoaded && m.themeSet {
			m.deps.Logger.Debug("saved theme ignored, already toggled", "theme", res.theme)
			return nil
		}
		m.applyTheme(res.theme)
	}
	return nil
}

// handleKeys routes a key press and reports whether the program should quit.
func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return nil, true
	}

	switch {
	case key.Matches(msg, m.keys.next):
		return m.setFocus((m.focus + 1) % focusCount), false
	case key.Matches(msg, m.keys.prev):
		return m.setFocus((m.focus + focusCount - 1) % focusCount), false
	}

	switch m.focus {
	case FocusLyrics:
		switch {
		case key.Matches(msg, m.keys.submit):
			m.generate()
			return nil, false
		case key.Matches(msg, m.keys.blur):
			return m.setFocus(FocusPage), false
		}
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		m.deps.Lyrics.SetText(m.editor.Value())
		return cmd, false

	case FocusStyle:
		switch {
		case key.Matches(msg, m.keys.submit):
			m.generate()
			return nil, false
		case key.Matches(msg, m.styles.KeyMap.CursorUp, m.styles.KeyMap.CursorDown):
			before := m.styles.Index()
			var cmd tea.Cmd
			m.styles, cmd = m.styles.Update(msg)
			if m.styles.Index() != before {
				m.selectStyle()
			}
			return cmd, false
		}

	case FocusDuration:
		switch {
		case key.Matches(msg, m.keys.shorter):
			m.deps.Player.SetDuration(m.deps.Player.Duration() - 1)
			return nil, false
		case key.Matches(msg, m.keys.longer):
			m.deps.Player.SetDuration(m.deps.Player.Duration() + 1)
			return nil, false
		}

	case FocusPage:
		if m.deps.Flow.Revealed() {
			switch {
			case key.Matches(msg, m.keys.shorter):
				m.deps.Player.Seek(m.deps.Player.Progress() - seekStep)
				return nil, false
			case key.Matches(msg, m.keys.longer):
				m.deps.Player.Seek(m.deps.Player.Progress() + seekStep)
				return nil, false
			}
		}
	}

	return m.handlePageKeys(msg)
}

// handlePageKeys handles shortcuts that work whenever the lyrics editor is not focused.
func (m *Model) handlePageKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return nil, true
	case key.Matches(msg, m.keys.play):
		if m.deps.Flow.Revealed() {
			m.deps.Player.Toggle()
		}
	case key.Matches(msg, m.keys.generate):
		m.generate()
	case key.Matches(msg, m.keys.blur):
		if m.deps.Flow.Loading() {
			m.deps.Flow.Cancel()
			m.deps.Notices.Show(notice.Info, cancelNotice)
		}
	case key.Matches(msg, m.keys.theme):
		return m.toggleTheme(), false
	case key.Matches(msg, m.keys.sample):
		pos := int(msg.Runes[0] - '1')
		if err := m.deps.Samples.ToggleAt(pos); err != nil {
			m.deps.Logger.Debug("sample toggle ignored", "err", err)
		}
	}
	return nil, false
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if !m.deps.Flow.Revealed() || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	if msg.Y != m.barRow || msg.X < barIndent || msg.X >= barIndent+m.barWidth {
		return
	}
	m.deps.Player.SeekAt(msg.X-barIndent, m.barWidth)
}

func (m *Model) setFocus(f Focus) tea.Cmd {
	m.focus = f
	if f == FocusLyrics {
		return m.editor.Focus()
	}
	m.editor.Blur()
	return nil
}

// selectStyle applies the highlighted style; known styles replace the lyrics.
func (m *Model) selectStyle() {
	item, ok := m.styles.SelectedItem().(styleItem)
	if !ok {
		return
	}
	if m.deps.Lyrics.Select(item.style) {
		m.editor.SetValue(m.deps.Lyrics.Text())
	}
}

func (m *Model) generate() {
	req := generation.Request{
		Lyrics:   m.deps.Lyrics.Text(),
		Style:    m.deps.Lyrics.SelectedStyle(),
		Duration: m.deps.Player.Duration(),
	}
	m.deps.Flow.Generate(m.ctx, req)
}

// syncAnimation restarts the spinner tick chain when something starts animating.
func (m *Model) syncAnimation() tea.Cmd {
	if m.animating || !m.deps.Flow.Animating() {
		return nil
	}
	m.animating = true
	return m.spinner.Tick
}

func (m *Model) applyTheme(t theme.Theme) {
	m.theme = t
	m.palette = PaletteFor(t)
	m.spinner.Style = NewStyle(m.palette.accent)
}

func (m *Model) loadTheme() tea.Cmd {
	store := m.deps.Themes
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		t, err := store.Load(m.ctx)
		return themeLoadedMsg(t, err)
	}
}

func (m *Model) toggleTheme() tea.Cmd {
	next := m.theme.Toggle()
	m.themeSet = true
	m.applyTheme(next)

	store := m.deps.Themes
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		return themeSavedMsg(next, store.Save(m.ctx, next))
	}
}

// View renders the page.
func (m *Model) View() string {
	p := m.palette
	sections := []string{
		p.title.Render("🎵 Bestekar") + "  " + p.help.Render("Türkçe sözlerden müzik") + "  " + m.theme.Icon(),
		p.label.Render("Şarkı Sözleri"),
		p.box(m.editor.View(), m.focus == FocusLyrics),
		p.box(m.styles.View(), m.focus == FocusStyle),
		p.box(m.renderDuration(), m.focus == FocusDuration),
		m.renderGenerate(),
	}

	m.barRow, m.barWidth = -1, 0
	if m.deps.Flow.Revealed() {
		sections = append(sections, m.renderPlayerHeader())
		m.barRow = lipgloss.Height(strings.Join(sections, "\n"))
		m.barWidth = m.bar.Width
		sections = append(sections,
			strings.Repeat(" ", barIndent)+m.bar.ViewAs(m.deps.Player.Progress()/100),
			strings.Repeat(" ", barIndent)+m.deps.Player.Display(),
		)
	}

	sections = append(sections, "", p.label.Render("Örnekler"), m.renderSamples())

	if notes := m.renderNotices(); notes != "" {
		sections = append(sections, "", notes)
	}

	sections = append(sections, "", m.help.ShortHelpView(m.helpKeys()))
	return strings.Join(sections, "\n")
}

func (m *Model) renderDuration() string {
	lo, hi := m.deps.Player.Bounds()
	return fmt.Sprintf("Süre: ◀ %d sn ▶  %s", m.deps.Player.Duration(), m.palette.help.Render(fmt.Sprintf("[%d-%d]", lo, hi)))
}

func (m *Model) renderGenerate() string {
	if m.deps.Flow.Loading() {
		return m.spinner.View() + " Müzik oluşturuluyor...  " + m.renderWave()
	}
	return m.palette.ok.Render("[ Müzik Oluştur ]") + "  " + m.renderWave()
}

// renderWave draws the waveform, scrolling it while something is animating.
func (m *Model) renderWave() string {
	bars := []rune(waveBars)
	if m.deps.Flow.Animating() {
		shift := m.frame % len(bars)
		bars = append(bars[shift:], bars[:shift]...)
	}
	return NewStyle(m.palette.accent).Render(string(bars))
}

func (m *Model) renderPlayerHeader() string {
	icon := playIcon
	if m.deps.Player.IsPlaying() {
		icon = pauseIcon
	}
	title := "Oluşturulan şarkı"
	if track := m.deps.Flow.Track(); track != nil {
		title = track.Title
	}
	return fmt.Sprintf("%s  %s", icon, m.palette.ok.Render(title))
}

func (m *Model) renderSamples() string {
	var b strings.Builder
	for i, s := range m.deps.Samples.Samples() {
		icon := playIcon
		if m.deps.Samples.Playing(s.ID) {
			icon = pauseIcon
		}
		fmt.Fprintf(&b, "  %d %s %s %s\n", i+1, icon, s.Title, m.palette.help.Render(s.Style))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderNotices() string {
	var lines []string
	for _, n := range m.deps.Notices.Messages() {
		switch n.Kind {
		case notice.Error:
			lines = append(lines, m.palette.err.Render(n.Text))
		default:
			lines = append(lines, m.palette.warn.Render(n.Text))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) helpKeys() []key.Binding {
	switch m.focus {
	case FocusLyrics:
		return []key.Binding{m.keys.next, m.keys.submit, m.keys.blur}
	case FocusDuration:
		return []key.Binding{m.keys.next, m.keys.shorter, m.keys.longer, m.keys.generate, m.keys.quit}
	default:
		keys := []key.Binding{m.keys.next, m.keys.generate, m.keys.sample, m.keys.theme}
		if m.deps.Flow.Loading() {
			keys = append(keys, m.keys.blur)
		}
		if m.deps.Flow.Revealed() {
			keys = append(keys, m.keys.play)
		}
		return append(keys, m.keys.quit)
	}
}

package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/bestekar/internal/theme"
)

var palettes = map[theme.Theme]*Palette{
	theme.Light: NewPalette("#21808D", "#1D7480", "#C0152F", "#A84B2F", "#626C71", "#E6E8E9"),
	theme.Dark:  NewPalette("#32B8C6", "#2DA6B2", "#FF5459", "#E68161", "#A7A9A9", "#3A3F40"),
}

// PaletteFor returns the stylesheet for t, defaulting to light.
func PaletteFor(t theme.Theme) *Palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[theme.Light]
}

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title   lipgloss.Style
	label   lipgloss.Style
	ok      lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
	help    lipgloss.Style
	focused lipgloss.Style
	blurred lipgloss.Style
	accent  string
}

func NewPalette(primary, hover, e, w, muted, border string) *Palette {
	return &Palette{
		title:   NewBold(primary).MarginBottom(1),
		label:   NewBold(muted),
		ok:      NewBold(hover),
		err:     NewBold("#FFFFFF").Background(lipgloss.Color(e)).Padding(0, 2),
		warn:    NewStyle(w),
		help:    NewEm(muted),
		focused: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(primary)).Padding(0, 1),
		blurred: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(border)).Padding(0, 1),
		accent:  primary,
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// box wraps content in the focused or blurred border.
func (p *Palette) box(content string, focused bool) string {
	if focused {
		return p.focused.Render(content)
	}
	return p.blurred.Render(content)
}

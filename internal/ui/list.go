package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/bestekar/internal/lyrics"
)

var _ list.DefaultItem = styleItem{}

// styleItem wraps a style label to implement [list.DefaultItem].
type styleItem struct {
	style string
}

func (i styleItem) FilterValue() string { return i.style }
func (i styleItem) Title() string       { return i.style }
func (i styleItem) Description() string {
	text, _ := lyrics.LyricsFor(i.style)
	first, _, _ := strings.Cut(text, "\n")
	return first
}

// newStyleList builds the style picker over every known style.
func newStyleList(width, height int) list.Model {
	styles := lyrics.Styles()
	items := make([]list.Item, len(styles))
	for i, s := range styles {
		items[i] = styleItem{style: s}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Stil"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	return l
}

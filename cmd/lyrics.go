package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/bestekar/internal/lyrics"
	"github.com/desertthunder/bestekar/internal/shared"
	"github.com/urfave/cli/v3"
)

// StyleLyrics pairs a style with its sample lyrics for JSON output.
type StyleLyrics struct {
	Style  string `json:"style"`
	Lyrics string `json:"lyrics"`
}

// Styles lists every style label in catalog order.
func (r *Runner) Styles(ctx context.Context, cmd *cli.Command) error {
	styles := lyrics.Styles()

	if cmd.Bool("json") {
		return r.writeJSON(styles, true)
	}

	for i, s := range styles {
		r.writePlain("%d. %s\n", i+1, s)
	}
	return nil
}

// Lyrics prints the sample lyrics for the style given as argument.
func (r *Runner) Lyrics(ctx context.Context, cmd *cli.Command) error {
	style := strings.TrimSpace(cmd.StringArg("style"))
	if style == "" {
		return fmt.Errorf("%w: style is required", shared.ErrMissingArgument)
	}

	text, ok := lyrics.LyricsFor(style)
	if !ok {
		return fmt.Errorf("%w: %q", shared.ErrUnknownStyle, style)
	}

	if cmd.Bool("json") {
		return r.writeJSON(StyleLyrics{Style: style, Lyrics: text}, true)
	}

	r.writePlainHeader(style)
	return r.writePlain("%s\n", text)
}

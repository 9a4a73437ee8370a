package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/bestekar/internal/clock"
	"github.com/desertthunder/bestekar/internal/shared"
	"github.com/desertthunder/bestekar/internal/theme"
	"github.com/desertthunder/bestekar/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal demo.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	if cmd.Bool("debug") {
		shared.SetLogLevel(fileLogger, log.DebugLevel)
	}
	r.SetLogger(fileLogger)

	store, closeDB, err := r.openThemes(ctx)
	if err != nil {
		r.logger.Warn("theme preference unavailable, not persisting", "error", err)
	} else {
		defer closeDB()
	}

	fallback, err := theme.Parse(r.config.Theme.Default)
	if err != nil {
		fallback = theme.Light
	}

	bridge := &ui.Bridge{}
	sched := clock.NewLoop(bridge.Post)
	s := r.newSession(sched, generator(cmd.Bool("fail")))

	model := ui.NewModel(ctx, ui.Deps{
		Player:  s.player,
		Flow:    s.flow,
		Samples: s.samples,
		Lyrics:  s.lyrics,
		Notices: s.notices,
		Themes:  store,
		Theme:   fallback,
		Logger:  r.logger,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	bridge.Attach(p)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

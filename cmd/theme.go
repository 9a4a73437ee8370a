package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/bestekar/internal/models"
	"github.com/desertthunder/bestekar/internal/shared"
	"github.com/desertthunder/bestekar/internal/theme"
	"github.com/urfave/cli/v3"
)

// ThemeShow prints the saved theme, or the configured default when none is saved.
func (r *Runner) ThemeShow(ctx context.Context, cmd *cli.Command) error {
	store, closeDB, err := r.openThemes(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	t, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load theme: %w", err)
	}
	return r.writePlain("%s %s\n", t.Icon(), t)
}

// ThemeSet saves the theme given as argument.
func (r *Runner) ThemeSet(ctx context.Context, cmd *cli.Command) error {
	value := cmd.StringArg("theme")
	if value == "" {
		return fmt.Errorf("%w: theme is required", shared.ErrMissingArgument)
	}

	t, err := theme.Parse(value)
	if err != nil {
		return err
	}

	store, closeDB, err := r.openThemes(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := store.Save(ctx, t); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}

	r.logger.Info("theme saved", "theme", t)
	return r.writePlain("✓ theme set to %s\n", t)
}

// ThemeReset forgets the saved theme and prints the default that applies again.
func (r *Runner) ThemeReset(ctx context.Context, cmd *cli.Command) error {
	store, closeDB, err := r.openThemes(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	t, err := store.Reset(ctx)
	if err != nil {
		return fmt.Errorf("failed to reset theme: %w", err)
	}

	r.logger.Info("theme reset", "theme", t)
	return r.writePlain("✓ theme reset to %s\n", t)
}

// Preferences prints every saved preference.
func (r *Runner) Preferences(ctx context.Context, cmd *cli.Command) error {
	repo, closeDB, err := r.openPreferences(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	prefs, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list preferences: %w", err)
	}

	if cmd.Bool("json") {
		if prefs == nil {
			prefs = []*models.Preference{}
		}
		return r.writeJSON(prefs, true)
	}

	if len(prefs) == 0 {
		return r.writePlain("no saved preferences\n")
	}
	for _, p := range prefs {
		r.writePlain("%-16s %-8s %s\n", p.Key, p.Value, p.UpdatedAt.Format(time.DateTime))
	}
	return nil
}

// ThemeToggle flips the saved theme.
func (r *Runner) ThemeToggle(ctx context.Context, cmd *cli.Command) error {
	store, closeDB, err := r.openThemes(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	t, err := store.Toggle(ctx)
	if err != nil {
		return fmt.Errorf("failed to toggle theme: %w", err)
	}
	return r.writePlain("%s %s\n", t.Icon(), t)
}

// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/bestekar/internal/lyrics"
	"github.com/urfave/cli/v3"
)

// setupCommand handles setup operations for the preference database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   r.configPath,
					},
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Revert the most recent migration instead of migrating up",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// stylesCommand lists the known music styles.
func stylesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "styles",
		Usage: "List music styles with sample lyrics",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Styles,
	}
}

// lyricsCommand prints the sample lyrics of a style.
func lyricsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "lyrics",
		Usage: "Print the sample lyrics for a style",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "style"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Lyrics,
	}
}

// themeCommand reads and writes the saved theme.
func themeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "theme",
		Usage: "Show or change the saved theme",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Print the saved theme",
				Action: r.ThemeShow,
			},
			{
				Name:  "set",
				Usage: "Save a theme (light or dark)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "theme"},
				},
				Action: r.ThemeSet,
			},
			{
				Name:   "toggle",
				Usage:  "Switch between light and dark",
				Action: r.ThemeToggle,
			},
			{
				Name:   "reset",
				Usage:  "Forget the saved theme and use the configured default",
				Action: r.ThemeReset,
			},
		},
	}
}

// preferencesCommand lists everything in the preference database.
func preferencesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "preferences",
		Usage: "List saved preferences",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Preferences,
	}
}

// simulateCommand runs the generate and play flow without a terminal UI.
func simulateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "simulate",
		Usage: "Generate a track and play it to the end, printing progress",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "duration",
				Aliases: []string{"d"},
				Usage:   "Track length in seconds (clamped to the configured bounds)",
				Value:   r.config.Player.DefaultDuration,
			},
			&cli.StringFlag{
				Name:    "style",
				Aliases: []string{"s"},
				Usage:   "Style whose sample lyrics are used",
				Value:   lyrics.EmotionalBallad,
			},
			&cli.IntFlag{
				Name:  "step",
				Usage: "Seconds between progress checkpoints",
				Value: 5,
			},
			&cli.BoolFlag{
				Name:  "fail",
				Usage: "Make the simulated backend fail",
			},
			&cli.BoolFlag{
				Name:  "realtime",
				Usage: "Run on wall-clock timers instead of virtual time",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output checkpoints as JSON",
			},
		},
		Action: r.Simulate,
	}
}

// tuiCommand launches the interactive demo
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Launch the interactive terminal demo",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Write debug logs to the log file",
			},
			&cli.BoolFlag{
				Name:  "fail",
				Usage: "Make the simulated backend fail",
			},
		},
		Action: r.TUI,
	}
}

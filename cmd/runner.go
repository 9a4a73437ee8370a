package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/bestekar/internal/clock"
	"github.com/desertthunder/bestekar/internal/generation"
	"github.com/desertthunder/bestekar/internal/lyrics"
	"github.com/desertthunder/bestekar/internal/notice"
	"github.com/desertthunder/bestekar/internal/player"
	"github.com/desertthunder/bestekar/internal/repositories"
	"github.com/desertthunder/bestekar/internal/samples"
	"github.com/desertthunder/bestekar/internal/shared"
	"github.com/desertthunder/bestekar/internal/theme"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = "config.toml"
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, stylesCommand, lyricsCommand, themeCommand, preferencesCommand, simulateCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// session is one wired set of page components sharing a scheduler.
type session struct {
	player  *player.Player
	flow    *generation.Controller
	samples *samples.Registry
	lyrics  *lyrics.Field
	notices *notice.Board
}

// newSession builds the page components from config. gen is wrapped with the configured quota.
func (r *Runner) newSession(sched clock.Scheduler, gen generation.Generator) *session {
	cfg := r.config
	p := player.New(sched, player.OptionsFromConfig(cfg.Player, shared.WithLogger(r.logger, "component", "player")))
	board := notice.NewBoard(sched, cfg.Notice.Dismiss())
	gen = generation.NewRateLimited(gen, cfg.Generation.QuotaPerMinute)
	opts := generation.Options{Delay: cfg.Generation.Delay(), Logger: shared.WithLogger(r.logger, "component", "generation")}

	return &session{
		player:  p,
		flow:    generation.NewController(sched, gen, p, board, opts),
		samples: samples.NewRegistry(sched, samples.Catalog, cfg.Samples.Preview(), shared.WithLogger(r.logger, "component", "samples")),
		lyrics:  lyrics.NewField(""),
		notices: board,
	}
}

// generator picks the backend stand-in.
func generator(fail bool) generation.Generator {
	if fail {
		return generation.Failing{}
	}
	return generation.Simulated{}
}

// openPreferences opens the preference database. Call the returned func to close it.
func (r *Runner) openPreferences(ctx context.Context) (*repositories.PreferenceRepository, func() error, error) {
	db, err := shared.OpenDatabase(ctx, r.config.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return repositories.NewPreferenceRepository(db), db.Close, nil
}

// openThemes returns a theme store over the preference database. Call the returned func to close it.
func (r *Runner) openThemes(ctx context.Context) (*theme.Store, func() error, error) {
	repo, closeDB, err := r.openPreferences(ctx)
	if err != nil {
		return nil, nil, err
	}

	fallback, err := theme.Parse(r.config.Theme.Default)
	if err != nil {
		fallback = theme.Light
	}
	return theme.NewStore(repo, fallback), closeDB, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Player     PlayerConfig     `toml:"player"`
	Generation GenerationConfig `toml:"generation"`
	Samples    SamplesConfig    `toml:"samples"`
	Notice     NoticeConfig     `toml:"notice"`
	Theme      ThemeConfig      `toml:"theme"`
	Database   DatabaseConfig   `toml:"database"`
	Log        LogConfig        `toml:"log"`
}

// PlayerConfig bounds the duration slider and sets the progress tick period.
type PlayerConfig struct {
	DefaultDuration int `toml:"default_duration"`
	MinDuration     int `toml:"min_duration"`
	MaxDuration     int `toml:"max_duration"`
	TickMS          int `toml:"tick_ms"`
}

// GenerationConfig contains the simulated generation latency and optional quota.
type GenerationConfig struct {
	DelayMS        int `toml:"delay_ms"`
	QuotaPerMinute int `toml:"quota_per_minute"`
}

// SamplesConfig contains sample preview settings.
type SamplesConfig struct {
	PreviewMS int `toml:"preview_ms"`
}

// NoticeConfig contains on-screen notification settings.
type NoticeConfig struct {
	DismissMS int `toml:"dismiss_ms"`
}

// ThemeConfig holds the theme used when no preference has been saved.
type ThemeConfig struct {
	Default string `toml:"default"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LogConfig contains the log file used while the TUI owns the terminal.
type LogConfig struct {
	File string `toml:"file"`
}

func (c PlayerConfig) Tick() time.Duration      { return ms(c.TickMS) }
func (c GenerationConfig) Delay() time.Duration { return ms(c.DelayMS) }
func (c SamplesConfig) Preview() time.Duration  { return ms(c.PreviewMS) }
func (c NoticeConfig) Dismiss() time.Duration   { return ms(c.DismissMS) }
func ms(v int) time.Duration                    { return time.Duration(v) * time.Millisecond }

// Validate reports the first inconsistent setting, wrapped with [ErrInvalidConfig].
func (c *Config) Validate() error {
	p := c.Player
	switch {
	case p.MinDuration < 1:
		return fmt.Errorf("%w: player.min_duration must be at least 1, got %d", ErrInvalidConfig, p.MinDuration)
	case p.MaxDuration < p.MinDuration:
		return fmt.Errorf("%w: player.max_duration %d is below min_duration %d", ErrInvalidConfig, p.MaxDuration, p.MinDuration)
	case p.DefaultDuration < p.MinDuration || p.DefaultDuration > p.MaxDuration:
		return fmt.Errorf("%w: player.default_duration %d outside [%d,%d]", ErrInvalidConfig, p.DefaultDuration, p.MinDuration, p.MaxDuration)
	case p.TickMS <= 0:
		return fmt.Errorf("%w: player.tick_ms must be positive", ErrInvalidConfig)
	case c.Generation.DelayMS < 0:
		return fmt.Errorf("%w: generation.delay_ms must not be negative", ErrInvalidConfig)
	case c.Generation.QuotaPerMinute < 0:
		return fmt.Errorf("%w: generation.quota_per_minute must not be negative", ErrInvalidConfig)
	case c.Samples.PreviewMS <= 0:
		return fmt.Errorf("%w: samples.preview_ms must be positive", ErrInvalidConfig)
	case c.Notice.DismissMS <= 0:
		return fmt.Errorf("%w: notice.dismiss_ms must be positive", ErrInvalidConfig)
	case c.Theme.Default != "light" && c.Theme.Default != "dark":
		return fmt.Errorf("%w: theme.default must be light or dark, got %q", ErrInvalidConfig, c.Theme.Default)
	}
	return nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/Iron-Ham/stopsignal/internal/experiment"
	"github.com/Iron-Ham/stopsignal/internal/logging"
	"github.com/Iron-Ham/stopsignal/internal/staircase"
	"github.com/Iron-Ham/stopsignal/internal/trial"
	"github.com/Iron-Ham/stopsignal/internal/trialclock"
)

// Config represents the complete stopsignal configuration
type Config struct {
	Task      TaskConfig      `mapstructure:"task" yaml:"task"`
	Timing    TimingConfig    `mapstructure:"timing" yaml:"timing"`
	Staircase StaircaseConfig `mapstructure:"staircase" yaml:"staircase"`
	Export    ExportConfig    `mapstructure:"export" yaml:"export"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
}

// TaskConfig controls session composition
type TaskConfig struct {
	// TrialsPerSet is the number of trials in each block (default: 80)
	TrialsPerSet int `mapstructure:"trials_per_set" yaml:"trials_per_set"`
	// TotalSets is the number of blocks in the session (default: 3)
	TotalSets int `mapstructure:"total_sets" yaml:"total_sets"`
	// Seed fixes the random source for reproducible sessions. 0 seeds from the clock.
	Seed uint64 `mapstructure:"seed" yaml:"seed"`
	// Proportions is the trial-type composition of every block
	Proportions trial.Proportions `mapstructure:"proportions" yaml:"proportions"`
}

// TimingConfig controls phase durations, in milliseconds
type TimingConfig struct {
	// ISIMeanMs is the mean of the normally distributed inter-stimulus interval (default: 1500)
	ISIMeanMs int `mapstructure:"isi_mean_ms" yaml:"isi_mean_ms"`
	// ISISDMs is its standard deviation (default: 372)
	ISISDMs int `mapstructure:"isi_sd_ms" yaml:"isi_sd_ms"`
	// ISIFloorMs is the minimum ISI; shorter draws are clamped up (default: 200)
	ISIFloorMs   int `mapstructure:"isi_floor_ms" yaml:"isi_floor_ms"`
	FixationMs   int `mapstructure:"fixation_ms" yaml:"fixation_ms"`
	StimulusMs   int `mapstructure:"stimulus_ms" yaml:"stimulus_ms"`
	InterTrialMs int `mapstructure:"inter_trial_ms" yaml:"inter_trial_ms"`
	// FrameRate is how many times per second the display ticks (default: 60)
	FrameRate int `mapstructure:"frame_rate" yaml:"frame_rate"`
}

// StaircaseConfig controls the stop-signal delay, in milliseconds
type StaircaseConfig struct {
	InitialMs int `mapstructure:"initial_ms" yaml:"initial_ms"`
	StepMs    int `mapstructure:"step_ms" yaml:"step_ms"`
	MinMs     int `mapstructure:"min_ms" yaml:"min_ms"`
	MaxMs     int `mapstructure:"max_ms" yaml:"max_ms"`
}

// ExportConfig controls where the outcome table is written
type ExportConfig struct {
	// Dir is the directory receiving exported tables (default: ".")
	Dir string `mapstructure:"dir" yaml:"dir"`
	// Prefix starts every exported file name (default: "stopsignal")
	Prefix string `mapstructure:"prefix" yaml:"prefix"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level" yaml:"level"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups" yaml:"max_backups"`
	// Dir holds one subdirectory per session. Empty means ".stopsignal/sessions".
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	params := experiment.DefaultParams()
	return &Config{
		Task: TaskConfig{
			TrialsPerSet: params.TrialsPerSet,
			TotalSets:    params.TotalSets,
			Proportions:  params.Proportions,
		},
		Timing: TimingConfig{
			ISIMeanMs:    1500,
			ISISDMs:      372,
			ISIFloorMs:   200,
			FixationMs:   500,
			StimulusMs:   1000,
			InterTrialMs: 500,
			FrameRate:    60,
		},
		Staircase: StaircaseConfig{
			InitialMs: 220,
			StepMs:    50,
			MinMs:     20,
			MaxMs:     900,
		},
		Export: ExportConfig{
			Dir:    ".",
			Prefix: "stopsignal",
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

func msDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// Params converts the configuration into experiment parameters.
func (c *Config) Params() experiment.Params {
	return experiment.Params{
		TrialsPerSet: c.Task.TrialsPerSet,
		TotalSets:    c.Task.TotalSets,
		Proportions:  c.Task.Proportions,
		Timing: trialclock.Timing{
			ISIMean:    msDuration(c.Timing.ISIMeanMs),
			ISISD:      msDuration(c.Timing.ISISDMs),
			ISIFloor:   msDuration(c.Timing.ISIFloorMs),
			Fixation:   msDuration(c.Timing.FixationMs),
			Stimulus:   msDuration(c.Timing.StimulusMs),
			InterTrial: msDuration(c.Timing.InterTrialMs),
		},
		Staircase: staircase.Config{
			Initial: msDuration(c.Staircase.InitialMs),
			Step:    msDuration(c.Staircase.StepMs),
			Min:     msDuration(c.Staircase.MinMs),
			Max:     msDuration(c.Staircase.MaxMs),
		},
	}
}

// FrameInterval returns the display tick period.
func (c *TimingConfig) FrameInterval() time.Duration {
	if c.FrameRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.FrameRate)
}

// Rotation returns the log rotation settings.
func (c *LoggingConfig) Rotation() logging.RotationConfig {
	return logging.RotationConfig{
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
	}
}

// SessionsDir returns the directory that holds per-session log directories.
func (c *LoggingConfig) SessionsDir() string {
	if c.Dir == "" {
		return filepath.Join(".stopsignal", "sessions")
	}
	return c.Dir
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Task defaults
	viper.SetDefault("task.trials_per_set", defaults.Task.TrialsPerSet)
	viper.SetDefault("task.total_sets", defaults.Task.TotalSets)
	viper.SetDefault("task.seed", defaults.Task.Seed)
	viper.SetDefault("task.proportions.congruent_go", defaults.Task.Proportions.CongruentGo)
	viper.SetDefault("task.proportions.incongruent_go", defaults.Task.Proportions.IncongruentGo)
	viper.SetDefault("task.proportions.nogo", defaults.Task.Proportions.NoGo)
	viper.SetDefault("task.proportions.stop", defaults.Task.Proportions.Stop)

	// Timing defaults
	viper.SetDefault("timing.isi_mean_ms", defaults.Timing.ISIMeanMs)
	viper.SetDefault("timing.isi_sd_ms", defaults.Timing.ISISDMs)
	viper.SetDefault("timing.isi_floor_ms", defaults.Timing.ISIFloorMs)
	viper.SetDefault("timing.fixation_ms", defaults.Timing.FixationMs)
	viper.SetDefault("timing.stimulus_ms", defaults.Timing.StimulusMs)
	viper.SetDefault("timing.inter_trial_ms", defaults.Timing.InterTrialMs)
	viper.SetDefault("timing.frame_rate", defaults.Timing.FrameRate)

	// Staircase defaults
	viper.SetDefault("staircase.initial_ms", defaults.Staircase.InitialMs)
	viper.SetDefault("staircase.step_ms", defaults.Staircase.StepMs)
	viper.SetDefault("staircase.min_ms", defaults.Staircase.MinMs)
	viper.SetDefault("staircase.max_ms", defaults.Staircase.MaxMs)

	// Export defaults
	viper.SetDefault("export.dir", defaults.Export.Dir)
	viper.SetDefault("export.prefix", defaults.Export.Prefix)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate the configuration
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the directory holding the config file
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "stopsignal")
	}
	// Fall back to ~/.config/stopsignal
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stopsignal"
	}
	return filepath.Join(home, ".config", "stopsignal")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

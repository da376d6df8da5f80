package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/Iron-Ham/stopsignal/internal/experiment"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	// Verify default task config
	if cfg.Task.TrialsPerSet != 80 {
		t.Errorf("Task.TrialsPerSet = %d, want 80", cfg.Task.TrialsPerSet)
	}
	if cfg.Task.TotalSets != 3 {
		t.Errorf("Task.TotalSets = %d, want 3", cfg.Task.TotalSets)
	}
	if cfg.Task.Seed != 0 {
		t.Errorf("Task.Seed = %d, want 0", cfg.Task.Seed)
	}

	// Verify default timing config
	if cfg.Timing.ISIMeanMs != 1500 || cfg.Timing.ISISDMs != 372 || cfg.Timing.ISIFloorMs != 200 {
		t.Errorf("ISI = %d/%d/%d, want 1500/372/200", cfg.Timing.ISIMeanMs, cfg.Timing.ISISDMs, cfg.Timing.ISIFloorMs)
	}
	if cfg.Timing.StimulusMs != 1000 {
		t.Errorf("Timing.StimulusMs = %d, want 1000", cfg.Timing.StimulusMs)
	}

	// Verify default staircase config
	if cfg.Staircase.InitialMs != 220 || cfg.Staircase.StepMs != 50 {
		t.Errorf("Staircase = %+v", cfg.Staircase)
	}

	// Verify default export config
	if cfg.Export.Prefix != "stopsignal" {
		t.Errorf("Export.Prefix = %q, want %q", cfg.Export.Prefix, "stopsignal")
	}

	// Verify default logging config
	if !cfg.Logging.Enabled {
		t.Error("Logging.Enabled should be true by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestConfig_Params(t *testing.T) {
	got := Default().Params()
	want := experiment.DefaultParams()

	if got != want {
		t.Errorf("Default().Params() = %+v, want %+v", got, want)
	}
}

func TestTimingConfig_FrameInterval(t *testing.T) {
	tests := []struct {
		rate int
		want time.Duration
	}{
		{60, time.Second / 60},
		{120, time.Second / 120},
		{0, time.Second / 60},
	}

	for _, tt := range tests {
		cfg := TimingConfig{FrameRate: tt.rate}
		if got := cfg.FrameInterval(); got != tt.want {
			t.Errorf("FrameInterval() at %d = %v, want %v", tt.rate, got, tt.want)
		}
	}
}

func TestLoggingConfig_SessionsDir(t *testing.T) {
	cfg := LoggingConfig{}
	if got := cfg.SessionsDir(); got != filepath.Join(".stopsignal", "sessions") {
		t.Errorf("SessionsDir() = %q", got)
	}
	cfg.Dir = "/var/log/stopsignal"
	if got := cfg.SessionsDir(); got != "/var/log/stopsignal" {
		t.Errorf("SessionsDir() = %q", got)
	}
}

func TestConfigDir(t *testing.T) {
	// Test with XDG_CONFIG_HOME set
	t.Run("with XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		result := ConfigDir()
		expected := "/custom/config/stopsignal"
		if result != expected {
			t.Errorf("ConfigDir() = %q, want %q", result, expected)
		}
	})

	// Test without XDG_CONFIG_HOME
	t.Run("without XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		result := ConfigDir()

		// Should be based on home directory
		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, ".config", "stopsignal")
		if result != expected {
			t.Errorf("ConfigDir() = %q, want %q", result, expected)
		}
	})
}

func TestConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	result := ConfigFile()
	expected := "/custom/config/stopsignal/config.yaml"
	if result != expected {
		t.Errorf("ConfigFile() = %q, want %q", result, expected)
	}
}

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	// Set defaults in viper first (normally done by cmd init)
	SetDefaults()

	// Load() should return defaults when no config file exists
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Task.TrialsPerSet != 80 {
		t.Errorf("Load().Task.TrialsPerSet = %d, want 80", cfg.Task.TrialsPerSet)
	}
	if cfg.Task.Proportions != Default().Task.Proportions {
		t.Errorf("Load().Task.Proportions = %+v", cfg.Task.Proportions)
	}
}

func TestLoad_FromFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `task:
  trials_per_set: 40
  seed: 7
  proportions:
    nogo: 0.125
timing:
  stimulus_ms: 800
staircase:
  initial_ms: 300
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig failed: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Task.TrialsPerSet != 40 || cfg.Task.Seed != 7 {
		t.Errorf("Task = %+v", cfg.Task)
	}
	if cfg.Task.Proportions.CongruentGo != 0.625 {
		t.Errorf("unset proportion lost its default: %+v", cfg.Task.Proportions)
	}
	if cfg.Timing.StimulusMs != 800 || cfg.Timing.FixationMs != 500 {
		t.Errorf("Timing = %+v", cfg.Timing)
	}
	if cfg.Params().Staircase.Initial != 300*time.Millisecond {
		t.Errorf("Params().Staircase.Initial = %v", cfg.Params().Staircase.Initial)
	}
}

func TestLoad_RejectsImpossibleBlock(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()
	viper.Set("task.trials_per_set", 6)

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should reject a block too small for the proportions")
	}
	errs, ok := err.(ValidationErrors)
	if !ok || len(errs) != 1 || errs[0].Field != "task.trials_per_set" {
		t.Errorf("Load() error = %v", err)
	}
}

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/stopsignal/internal/config"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	config.SetDefaults()
	t.Cleanup(viper.Reset)
}

func runWith(t *testing.T, run func(*cobra.Command, []string) error) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&buf)
	err := run(c, nil)
	return buf.String(), err
}

func TestRootHasSubcommands(t *testing.T) {
	want := map[string]bool{"run": false, "config": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("root command is missing %q", name)
		}
	}
	if rootCmd.RunE == nil {
		t.Error("root command should run a session by default")
	}
	if rootCmd.PersistentFlags().Lookup("config") == nil {
		t.Error("root command is missing --config")
	}
}

func TestConfigSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range configCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"show", "init", "path"} {
		if !names[want] {
			t.Errorf("config command is missing %q", want)
		}
	}
}

func TestConfigShow(t *testing.T) {
	resetViper(t)
	viper.Set("task.trials_per_set", 40)

	out, err := runWith(t, runConfigShow)
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.HasPrefix(out, "# Config file: (none - using defaults)") {
		t.Errorf("output should name the config source:\n%s", out)
	}

	var shown config.Config
	if err := yaml.Unmarshal([]byte(out), &shown); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if shown.Task.TrialsPerSet != 40 {
		t.Errorf("trials_per_set = %d, want 40", shown.Task.TrialsPerSet)
	}
	if shown.Staircase.InitialMs != 220 {
		t.Errorf("staircase.initial_ms = %d, want 220", shown.Staircase.InitialMs)
	}
}

func TestConfigShowInvalid(t *testing.T) {
	resetViper(t)
	viper.Set("task.total_sets", 0)

	if _, err := runWith(t, runConfigShow); err == nil {
		t.Fatal("config show should report an invalid configuration")
	}
}

func TestConfigInit(t *testing.T) {
	resetViper(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	out, err := runWith(t, runConfigInit)
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	path := config.ConfigFile()
	if !strings.Contains(out, path) {
		t.Errorf("output should name %s:\n%s", path, out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading config file: %v", err)
	}
	if !strings.HasPrefix(string(data), "# Stopsignal Configuration") {
		t.Error("config file is missing its header")
	}

	// The written file must load back to the defaults.
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("written config does not parse: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("written config does not validate: %v", err)
	}
	if cfg.Params() != config.Default().Params() {
		t.Errorf("written config = %+v, want defaults", cfg.Params())
	}

	if _, err := runWith(t, runConfigInit); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("second init error = %v, want already exists", err)
	}
}

func TestConfigPath(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	out, err := runWith(t, runConfigPath)
	if err != nil {
		t.Fatalf("config path failed: %v", err)
	}
	for _, want := range []string{
		filepath.Join(dir, "stopsignal", "config.yaml"),
		"(not created)",
		"STOPSIGNAL_",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/stopsignal/internal/cmd/session"
	"github.com/Iron-Ham/stopsignal/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "stopsignal",
	Short: "Arrow task with go/no-go and stop-signal trials",
	Long: `Stopsignal runs a response-inhibition session in the terminal.

Participants press the arrow key matching an on-screen arrow. On no-go
trials the frame turns blue at once; on stop trials it turns blue after
an adaptive delay. Either way the participant should withhold the press.

Running stopsignal without a subcommand starts a session.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/stopsignal/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	session.Register(rootCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/stopsignal")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("STOPSIGNAL")
	// Replace dots with underscores for nested keys in env vars
	// e.g., STOPSIGNAL_TASK_TRIALS_PER_SET for task.trials_per_set
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

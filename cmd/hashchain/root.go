// Package hashchain implements the hashchain command line interface.
package hashchain

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/manifest-network/hashchain/internal/config"
	"github.com/manifest-network/hashchain/internal/output"
)

var rootCmd = &cobra.Command{
	Use:   "hashchain",
	Short: "An append-only, tamper-evident in-memory ledger",
	Long: `hashchain maintains a sequence of blocks in which every block's hash
commits to its predecessor's hash, so any retroactive modification of the
history is detectable.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level, err := config.ParseLogLevel(viper.GetString("log-level"))
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: level,
		})))
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json", false, "Render blocks as line-delimited JSON instead of a table")

	mustBindPFlag("log-level", rootCmd, "log-level")
	mustBindPFlag("json", rootCmd, "json")

	viper.SetEnvPrefix("hashchain")
	viper.AutomaticEnv()
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// mustBindPFlag binds a persistent or local flag of cmd to a viper key.
// Binding only fails on a misspelled flag name, which is a programming error.
func mustBindPFlag(key string, cmd *cobra.Command, flag string) {
	f := cmd.PersistentFlags().Lookup(flag)
	if f == nil {
		f = cmd.Flags().Lookup(flag)
	}
	if f == nil {
		panic(fmt.Sprintf("unknown flag %q on command %q", flag, cmd.Name()))
	}
	if err := viper.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("failed to bind flag %q: %v", flag, err))
	}
}

// baseConfig resolves the settings shared by all subcommands.
func baseConfig() config.DemoConfig {
	return config.DemoConfig{
		JSON:              viper.GetBool("json"),
		LogLevel:          viper.GetString("log-level"),
		PollInterval:      viper.GetDuration("poll-interval"),
		VerifyConcurrency: viper.GetInt("verify-concurrency"),
	}
}

// newHandler picks the output handler for the resolved configuration,
// writing to the command's stdout.
func newHandler(cmd *cobra.Command, cfg config.DemoConfig) output.Handler {
	if cfg.JSON {
		return output.NewJSONHandler(cmd.OutOrStdout())
	}
	return output.NewConsoleHandler(cmd.OutOrStdout())
}

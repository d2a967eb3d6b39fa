package hashchain

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/manifest-network/hashchain/internal/chain"
	"github.com/manifest-network/hashchain/internal/driver"
)

var defaultPayloads = []string{"test1", "test2", "test3"}

var demoCmd = &cobra.Command{
	Use:   "demo [payload]...",
	Short: "Append sample payloads, printing the whole chain after each append",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := baseConfig()
		cfg.Payloads = args
		if len(cfg.Payloads) == 0 {
			cfg.Payloads = defaultPayloads
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		handler := newHandler(cmd, cfg)
		defer func() {
			if err := handler.Close(); err != nil {
				slog.Warn("Failed to close output handler", "error", err)
			}
		}()

		return driver.Run(cmd.Context(), chain.New(), cfg, handler)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

package hashchain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/manifest-network/hashchain/internal/chain"
	"github.com/manifest-network/hashchain/internal/config"
	"github.com/manifest-network/hashchain/internal/driver"
)

const defaultPollInterval = 200 * time.Millisecond

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Append generated payloads in bulk, verify the chain and report metrics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := baseConfig()
		cfg.Count = viper.GetUint64("count")
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		c := chain.New()

		if viper.GetBool("follow") {
			return seedWithFollower(cmd, c, cfg)
		}
		if err := driver.Seed(cmd.Context(), c, cfg); err != nil {
			return err
		}
		return logMetrics()
	},
}

func init() {
	seedCmd.Flags().Uint64P("count", "n", 1000, "Number of blocks to append")
	seedCmd.Flags().Int("verify-concurrency", 0, "Workers used to verify the chain (0 = one per CPU)")
	seedCmd.Flags().Bool("follow", false, "Render blocks live while they are appended")
	seedCmd.Flags().Duration("poll-interval", defaultPollInterval, "How often the follower checks for new blocks")

	mustBindPFlag("count", seedCmd, "count")
	mustBindPFlag("verify-concurrency", seedCmd, "verify-concurrency")
	mustBindPFlag("follow", seedCmd, "follow")
	mustBindPFlag("poll-interval", seedCmd, "poll-interval")

	rootCmd.AddCommand(seedCmd)
}

// seedWithFollower runs the seeder with a follower rendering blocks as they
// appear. The follower drains the remaining blocks when the seeder is done.
func seedWithFollower(cmd *cobra.Command, c *chain.Chain, cfg config.DemoConfig) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	handler := newHandler(cmd, cfg)
	defer func() {
		if err := handler.Close(); err != nil {
			slog.Warn("Failed to close output handler", "error", err)
		}
	}()

	done := make(chan error, 1)
	go func() {
		done <- driver.Follow(ctx, c, cfg, handler)
	}()

	seedErr := driver.Seed(ctx, c, cfg)
	cancel()
	if err := <-done; err != nil {
		return fmt.Errorf("follower failed: %w", err)
	}
	if seedErr != nil {
		return seedErr
	}
	return logMetrics()
}

// logMetrics logs the process-wide chain metrics gathered from the default
// prometheus registry.
func logMetrics() error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "hashchain_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				slog.Info("Metric", "name", mf.GetName(), "value", m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				slog.Info("Metric", "name", mf.GetName(), "value", m.GetGauge().GetValue())
			case m.GetHistogram() != nil:
				slog.Info("Metric", "name", mf.GetName(),
					"count", m.GetHistogram().GetSampleCount(),
					"sum", m.GetHistogram().GetSampleSum())
			}
		}
	}
	return nil
}

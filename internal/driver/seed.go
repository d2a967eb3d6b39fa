package driver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/schollz/progressbar/v3"

	"github.com/manifest-network/hashchain/internal/chain"
	"github.com/manifest-network/hashchain/internal/config"
)

// Seed appends cfg.Count generated payloads to the chain, then verifies the
// resulting history. A progress bar is shown for multi-block runs.
func Seed(ctx context.Context, c *chain.Chain, cfg config.DemoConfig) error {
	slog.Info("Seeding chain", "count", cfg.Count)

	displayProgress := cfg.Count > 1
	var bar *progressbar.ProgressBar
	if displayProgress {
		bar = progressbar.NewOptions64(
			int64(cfg.Count),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetDescription("Appending blocks..."),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
		if err := bar.RenderBlank(); err != nil {
			return fmt.Errorf("failed to render progress bar: %w", err)
		}
	}

	for i := uint64(0); i < cfg.Count; i++ {
		if ctx.Err() != nil {
			slog.Info("Seeding cancelled by user")
			return ctx.Err()
		}

		c.Append(fmt.Appendf(nil, "payload-%06d", i))

		if bar != nil {
			if err := bar.Add(1); err != nil {
				slog.Warn("Failed to update progress bar", "error", err)
			}
		}
	}

	if bar != nil {
		if err := bar.Finish(); err != nil {
			return fmt.Errorf("failed to finish progress bar: %w", err)
		}
	}

	if err := c.Verify(ctx, cfg.VerifyConcurrency); err != nil {
		return fmt.Errorf("chain failed verification: %w", err)
	}
	if head, ok := c.Head(); ok {
		slog.Info("Chain verified", "height", head.Index(), "head", head.Hash())
	}
	return nil
}

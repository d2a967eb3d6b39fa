// Package driver drives a chain on behalf of the CLI: it appends payloads,
// renders traversal snapshots through an output handler, and follows live
// appends.
package driver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/manifest-network/hashchain/internal/chain"
	"github.com/manifest-network/hashchain/internal/config"
	"github.com/manifest-network/hashchain/internal/output"
)

// Run appends each configured payload in order, rendering the full chain
// after every append, then verifies the resulting history.
func Run(ctx context.Context, c *chain.Chain, cfg config.DemoConfig, handler output.Handler) error {
	for _, payload := range cfg.Payloads {
		if ctx.Err() != nil {
			slog.Info("Run cancelled by user")
			return ctx.Err()
		}

		b := c.Append([]byte(payload))
		slog.Info("Appended block", "index", b.Index(), "hash", b.Hash())

		if err := renderChain(ctx, c, handler); err != nil {
			return fmt.Errorf("failed to render chain after block %d: %w", b.Index(), err)
		}
	}

	if err := c.Verify(ctx, cfg.VerifyConcurrency); err != nil {
		return fmt.Errorf("chain failed verification: %w", err)
	}
	return nil
}

// renderChain writes a fresh traversal snapshot to the handler.
func renderChain(ctx context.Context, c *chain.Chain, handler output.Handler) error {
	for b := range c.Iterate() {
		if err := handler.WriteBlock(ctx, b); err != nil {
			return fmt.Errorf("failed to write block %d: %w", b.Index(), err)
		}
	}
	if err := handler.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/manifest-network/hashchain/internal/chain"
	"github.com/manifest-network/hashchain/internal/config"
	"github.com/manifest-network/hashchain/internal/output"
)

// Follow renders blocks as they are appended by other goroutines. It polls
// the chain head every cfg.PollInterval and writes every block appended
// since the previous poll. When ctx is cancelled it drains whatever was
// appended before the cancellation and returns nil.
func Follow(ctx context.Context, c *chain.Chain, cfg config.DemoConfig, handler output.Handler) error {
	var next int64
	for {
		if err := drain(ctx, c, handler, &next); err != nil {
			return err
		}

		// Sleep before checking again
		select {
		case <-ctx.Done():
			return drain(context.WithoutCancel(ctx), c, handler, &next)
		case <-time.After(cfg.PollInterval):
		}
	}
}

// drain writes all blocks with index >= *next and advances next past the
// current head.
func drain(ctx context.Context, c *chain.Chain, handler output.Handler, next *int64) error {
	head, ok := c.Head()
	if !ok || head.Index() < *next {
		return nil
	}

	for i := *next; i <= head.Index(); i++ {
		b, ok := c.Get(i)
		if !ok {
			return fmt.Errorf("block %d missing from an append-only chain", i)
		}
		if err := handler.WriteBlock(ctx, b); err != nil {
			return fmt.Errorf("failed to write block %d: %w", i, err)
		}
	}
	*next = head.Index() + 1

	if err := handler.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

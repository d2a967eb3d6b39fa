package output

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/manifest-network/hashchain/internal/chain"
)

// ConsoleHandler renders blocks as aligned text columns: index, decoded
// payload, previous hash and hash. Not safe for concurrent use.
type ConsoleHandler struct {
	tw     *tabwriter.Writer
	header bool
}

func NewConsoleHandler(w io.Writer) *ConsoleHandler {
	return &ConsoleHandler{tw: tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)}
}

func (h *ConsoleHandler) WriteBlock(_ context.Context, block *chain.Block) error {
	if !h.header {
		if _, err := fmt.Fprintln(h.tw, "INDEX\tDATA\tPREVIOUS HASH\tHASH"); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		h.header = true
	}
	_, err := fmt.Fprintf(h.tw, "%d\t%s\t%s\t%s\n",
		block.Index(), block.Payload(), block.PrevHash(), block.Hash())
	if err != nil {
		return fmt.Errorf("failed to write block %d: %w", block.Index(), err)
	}
	return nil
}

// Flush writes the buffered table out and starts a new one, so the next
// traversal gets its own header.
func (h *ConsoleHandler) Flush() error {
	h.header = false
	if err := h.tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush console output: %w", err)
	}
	return nil
}

func (h *ConsoleHandler) Close() error {
	return h.Flush()
}

package output

import (
	"context"

	"github.com/manifest-network/hashchain/internal/chain"
)

// Handler renders appended blocks. It is the display collaborator of the
// chain: the driver hands it every block of a traversal snapshot, in index
// order.
type Handler interface {
	// WriteBlock renders a single block.
	WriteBlock(ctx context.Context, block *chain.Block) error

	// Flush forces any buffered output out, e.g. after a full traversal.
	Flush() error

	// Close closes the handler. No WriteBlock or Flush may follow.
	Close() error
}

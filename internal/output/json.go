package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/manifest-network/hashchain/internal/chain"
	"github.com/manifest-network/hashchain/internal/models"
)

// JSONHandler renders one block view as a JSON object per line.
// Not safe for concurrent use.
type JSONHandler struct {
	enc *json.Encoder
}

func NewJSONHandler(w io.Writer) *JSONHandler {
	return &JSONHandler{enc: json.NewEncoder(w)}
}

func (h *JSONHandler) WriteBlock(_ context.Context, block *chain.Block) error {
	if err := h.enc.Encode(models.ViewOf(block)); err != nil {
		return fmt.Errorf("failed to encode block %d: %w", block.Index(), err)
	}
	return nil
}

func (h *JSONHandler) Flush() error { return nil }

func (h *JSONHandler) Close() error { return nil }

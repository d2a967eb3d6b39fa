package driver

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manifest-network/hashchain/internal/chain"
	"github.com/manifest-network/hashchain/internal/config"
)

// recordingHandler collects written block indices. Safe for concurrent use
// so the follower tests can read while Follow writes.
type recordingHandler struct {
	mu      sync.Mutex
	indices []int64
	flushes int
}

func (h *recordingHandler) WriteBlock(_ context.Context, block *chain.Block) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.indices = append(h.indices, block.Index())
	return nil
}

func (h *recordingHandler) Flush() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.flushes++
	return nil
}

func (h *recordingHandler) Close() error { return nil }

func (h *recordingHandler) snapshot() []int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]int64(nil), h.indices...)
}

func TestRunRendersAfterEveryAppend(t *testing.T) {
	c := chain.New()
	h := &recordingHandler{}
	cfg := config.DemoConfig{Payloads: []string{"test1", "test2", "test3"}}

	require.NoError(t, Run(context.Background(), c, cfg, h))

	assert.Equal(t, 3, c.Len())
	// Traversals of length 1, 2 and 3, each from the start.
	assert.Equal(t, []int64{0, 0, 1, 0, 1, 2}, h.snapshot())
	assert.Equal(t, 3, h.flushes)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := chain.New()
	err := Run(ctx, c, config.DemoConfig{Payloads: []string{"test1"}}, &recordingHandler{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, c.Len())
}

func TestSeedAppendsAndVerifies(t *testing.T) {
	c := chain.New()

	require.NoError(t, Seed(context.Background(), c, config.DemoConfig{Count: 1}))
	assert.Equal(t, 1, c.Len())

	head, ok := c.Head()
	require.True(t, ok)
	assert.Equal(t, "payload-000000", string(head.Payload()))
}

func TestSeedZeroCount(t *testing.T) {
	c := chain.New()

	require.NoError(t, Seed(context.Background(), c, config.DemoConfig{Count: 0}))
	assert.Zero(t, c.Len())
}

func TestFollowDrainsAllAppends(t *testing.T) {
	c := chain.New()
	h := &recordingHandler{}
	cfg := config.DemoConfig{PollInterval: 5 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Follow(ctx, c, cfg, h)
	}()

	for i := 0; i < 5; i++ {
		c.Append([]byte("live"))
		time.Sleep(2 * time.Millisecond)
	}
	cancel()

	require.NoError(t, <-done)
	assert.Equal(t, []int64{0, 1, 2, 3, 4}, h.snapshot(),
		"the follower must render every block exactly once, in order")
}

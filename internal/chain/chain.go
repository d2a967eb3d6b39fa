// Package chain implements an append-only, tamper-evident ledger: an ordered
// sequence of blocks in which every block's hash commits to its predecessor's
// hash. Appends are serialized and traversal works on point-in-time
// snapshots, so the chain is safe for concurrent use.
package chain

import (
	"context"
	"iter"
	"runtime"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/manifest-network/hashchain/internal/metrics"
)

// ErrIntegrity is the cause of every error reported by Verify.
var ErrIntegrity = errors.New("chain: integrity check failed")

// Chain is an append-only ordered container of blocks. The zero value is not
// usable; construct one with New or NewWithClock.
type Chain struct {
	mu      sync.RWMutex
	genesis *Block
	blocks  []*Block
	now     func() time.Time
}

// New returns a fresh, empty chain with its genesis anchor initialized.
// Every call yields an independent chain.
func New() *Chain {
	return NewWithClock(time.Now)
}

// NewWithClock is New with an explicit time source, so tests can construct
// chains with deterministic block timestamps.
func NewWithClock(now func() time.Time) *Chain {
	return &Chain{
		genesis: newGenesis(now()),
		now:     now,
	}
}

// Append constructs a block holding data, links it to the current tail and
// stores it as the new tail. The returned block is immutable. Append never
// fails: any byte sequence, including an empty one, is a valid payload.
// Concurrent appends are serialized, so indices are always contiguous and
// every block has exactly one successor.
func (c *Chain) Append(data []byte) *Block {
	c.mu.Lock()
	defer c.mu.Unlock()

	tail := c.genesis
	prevHash := ""
	if n := len(c.blocks); n > 0 {
		tail = c.blocks[n-1]
		prevHash = tail.Hash()
	}

	b := newBlock(tail.Index()+1, data, prevHash, c.now())
	c.blocks = append(c.blocks, b)

	metrics.BlocksAppended.Inc()
	metrics.ChainHeight.Set(float64(b.Index()))
	metrics.PayloadBytes.Observe(float64(len(data)))
	return b
}

// Len returns the number of blocks appended so far. The genesis anchor is
// not counted.
func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.blocks)
}

// Head returns the most recently appended block, or false when the chain is
// still empty.
func (c *Chain) Head() (*Block, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.blocks) == 0 {
		return nil, false
	}
	return c.blocks[len(c.blocks)-1], true
}

// Get returns the block at the given index, or false when no such block
// exists.
func (c *Chain) Get(index int64) (*Block, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if index < 0 || index >= int64(len(c.blocks)) {
		return nil, false
	}
	return c.blocks[index], true
}

// Iterate returns a traversal over all blocks in ascending index order, as
// of the moment Iterate is called. The sequence is restartable and always
// ranges over the same snapshot: appends that happen after the call are not
// visible to it. The genesis anchor is never yielded.
func (c *Chain) Iterate() iter.Seq[*Block] {
	snap := c.snapshot()
	return func(yield func(*Block) bool) {
		for _, b := range snap {
			if !yield(b) {
				return
			}
		}
	}
}

// Verify re-checks the linkage invariant over a snapshot of the chain: the
// first block must be anchored (index 0, empty previous hash) and every
// later block must carry its predecessor's hash and index plus one. The
// snapshot is split into segments checked concurrently; concurrency < 1
// selects GOMAXPROCS workers. A nil return means the history is intact.
func (c *Chain) Verify(ctx context.Context, concurrency int) error {
	snap := c.snapshot()
	n := len(snap)
	if n == 0 {
		return nil
	}
	if snap[0].Index() != 0 || snap[0].PrevHash() != "" {
		return errors.Wrap(ErrIntegrity, "first block is not anchored at genesis")
	}
	if concurrency < 1 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)

	// Each link check only needs blocks i-1 and i, so segment boundaries
	// need no coordination beyond the shared snapshot.
	seg := (n + concurrency - 1) / concurrency
	for start := 0; start < n; start += seg {
		end := min(start+seg, n)
		eg.Go(func() error {
			for i := max(start, 1); i < end; i++ {
				cur, prev := snap[i], snap[i-1]
				if cur.Index() != prev.Index()+1 {
					return errors.Wrapf(ErrIntegrity, "block %d: index %d does not follow %d", i, cur.Index(), prev.Index())
				}
				if cur.PrevHash() != prev.Hash() {
					return errors.Wrapf(ErrIntegrity, "block %d: broken link to block %d", i, i-1)
				}
			}
			return nil
		})
	}
	return eg.Wait()
}

// snapshot copies the current block list under the read lock. Blocks are
// immutable, so sharing the pointers is safe.
func (c *Chain) snapshot() []*Block {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snap := make([]*Block, len(c.blocks))
	copy(snap, c.blocks)
	return snap
}

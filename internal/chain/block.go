package chain

import (
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"strings"
	"time"
)

// genesisIndex is the index reserved for the internal anchor block. The
// anchor exists only so the first real block has a well-defined predecessor;
// it is never visible through any public read path.
const genesisIndex = -1

// Block is a single immutable entry in the chain. Every field is fixed at
// construction; the hash is derived on demand from the field values and is
// therefore stable for the block's lifetime.
type Block struct {
	index     int64
	payload   []byte
	timestamp time.Time
	prevHash  string
}

// newBlock constructs a block at the given instant. The instant is truncated
// to whole seconds in UTC so hashes are reproducible across rapid repeated
// construction. The payload is copied; the block owns its bytes exclusively.
func newBlock(index int64, payload []byte, prevHash string, at time.Time) *Block {
	b := &Block{
		index:     index,
		payload:   make([]byte, len(payload)),
		timestamp: at.UTC().Truncate(time.Second),
		prevHash:  prevHash,
	}
	copy(b.payload, payload)
	return b
}

func newGenesis(at time.Time) *Block {
	return newBlock(genesisIndex, nil, "", at)
}

// Index returns the zero-based position of the block in the chain.
func (b *Block) Index() int64 { return b.index }

// Timestamp returns the creation instant, truncated to whole seconds, in UTC.
func (b *Block) Timestamp() time.Time { return b.timestamp }

// Data returns the payload encoded as standard Base64.
func (b *Block) Data() string {
	return base64.StdEncoding.EncodeToString(b.payload)
}

// Payload returns a copy of the raw payload bytes.
func (b *Block) Payload() []byte {
	p := make([]byte, len(b.payload))
	copy(p, b.payload)
	return p
}

// PrevHash returns the hash of the predecessor block, or the empty string
// when the block has no real predecessor.
func (b *Block) PrevHash() string { return b.prevHash }

// Hash returns the Base64-encoded SHA-256 digest of the block's canonical
// preimage: index, previous hash, UNIX timestamp and Base64 payload, joined
// by newlines. Recomputed on every call; callers may cache the result.
func (b *Block) Hash() string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatInt(b.index, 10))
	sb.WriteByte('\n')
	sb.WriteString(b.prevHash)
	sb.WriteByte('\n')
	sb.WriteString(strconv.FormatInt(b.timestamp.Unix(), 10))
	sb.WriteByte('\n')
	sb.WriteString(b.Data())

	sum := sha256.Sum256([]byte(sb.String()))
	return base64.StdEncoding.EncodeToString(sum[:])
}

package chain

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testInstant = time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC)

func TestBlockHashDeterminism(t *testing.T) {
	a := newBlock(3, []byte("payload"), "prev", testInstant)
	b := newBlock(3, []byte("payload"), "prev", testInstant)

	assert.Equal(t, a.Hash(), b.Hash(), "identical inputs must produce identical hashes")
	assert.Equal(t, a.Hash(), a.Hash(), "hash must be stable across calls")
}

func TestBlockHashTamperEvidence(t *testing.T) {
	base := newBlock(3, []byte("payload"), "prev", testInstant)

	tests := []struct {
		name     string
		tampered *Block
	}{
		{"index", newBlock(4, []byte("payload"), "prev", testInstant)},
		{"payload", newBlock(3, []byte("Payload"), "prev", testInstant)},
		{"previous hash", newBlock(3, []byte("payload"), "other", testInstant)},
		{"timestamp", newBlock(3, []byte("payload"), "prev", testInstant.Add(time.Second))},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.NotEqual(t, base.Hash(), tc.tampered.Hash(), "changing the %s must change the hash", tc.name)
		})
	}
}

func TestBlockHashIsBase64SHA256(t *testing.T) {
	b := newBlock(0, []byte("test1"), "", testInstant)

	sum, err := base64.StdEncoding.DecodeString(b.Hash())
	require.NoError(t, err)
	assert.Len(t, sum, 32)
}

func TestBlockDataRoundTrip(t *testing.T) {
	payloads := [][]byte{
		[]byte("test1"),
		{},
		{0x00, 0xff, 0x10},
	}
	for _, payload := range payloads {
		b := newBlock(0, payload, "", testInstant)

		decoded, err := base64.StdEncoding.DecodeString(b.Data())
		require.NoError(t, err)
		assert.Equal(t, payload, append([]byte{}, decoded...))
		assert.Equal(t, payload, b.Payload())
	}
}

func TestBlockTimestampTruncation(t *testing.T) {
	precise := time.Date(2024, 5, 17, 10, 30, 0, 987654321, time.UTC)

	a := newBlock(1, []byte("x"), "", precise)
	b := newBlock(1, []byte("x"), "", precise.Add(10*time.Millisecond))

	assert.Equal(t, precise.Truncate(time.Second).Unix(), a.Timestamp().Unix())
	assert.Zero(t, a.Timestamp().Nanosecond(), "sub-second components must be discarded")
	assert.Equal(t, time.UTC, a.Timestamp().Location())
	assert.Equal(t, a.Hash(), b.Hash(), "hashes must be reproducible within the same second")
}

func TestBlockOwnsItsPayload(t *testing.T) {
	payload := []byte("mutable")
	b := newBlock(0, payload, "", testInstant)
	want := b.Hash()

	payload[0] = 'X'
	b.Payload()[0] = 'Y'

	assert.Equal(t, "mutable", string(b.Payload()))
	assert.Equal(t, want, b.Hash())
}

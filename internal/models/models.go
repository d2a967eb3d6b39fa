package models

import "github.com/manifest-network/hashchain/internal/chain"

// BlockView is the read-only rendering of a chain block handed to output
// handlers. Data is the Base64 payload and Timestamp is UNIX seconds UTC,
// matching the chain's external contract.
type BlockView struct {
	Index     int64  `json:"index"`
	Data      string `json:"data"`
	PrevHash  string `json:"previous_hash"`
	Hash      string `json:"hash"`
	Timestamp int64  `json:"timestamp"`
}

// ViewOf builds a BlockView from a block's accessors.
func ViewOf(b *chain.Block) BlockView {
	return BlockView{
		Index:     b.Index(),
		Data:      b.Data(),
		PrevHash:  b.PrevHash(),
		Hash:      b.Hash(),
		Timestamp: b.Timestamp().Unix(),
	}
}

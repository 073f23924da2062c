package ledger

import (
	"encoding/binary"
	"fmt"
)

// Ledger is an append-only ordered sequence of validated blocks, indexed
// densely from 0. It grows only through AddBlock and is not internally
// synchronized; concurrent use must be guarded by the caller (the store
// package provides a guarded wrapper).
type Ledger struct {
	blocks []*Block
}

// New creates an empty ledger
func New() *Ledger {
	return &Ledger{blocks: make([]*Block, 0)}
}

// Length returns the number of stored blocks
func (l *Ledger) Length() int {
	return len(l.blocks)
}

// AddBlock decodes raw serialized bytes (which re-verifies the signature),
// tentatively appends the block, and runs the chain check against the
// previous tail. A rejected append rolls back, leaving the ledger exactly as
// it was before the call.
func (l *Ledger) AddBlock(raw []byte) (*Block, error) {
	b, err := DecodeBlock(raw)
	if err != nil {
		return nil, err
	}

	l.blocks = append(l.blocks, b)

	if len(l.blocks) == 1 {
		err = validateSingle(b)
	} else {
		err = validatePair(b, l.blocks[len(l.blocks)-2])
	}
	if err != nil {
		l.blocks = l.blocks[:len(l.blocks)-1]
		return nil, err
	}

	return b, nil
}

// AddBlockZero bootstraps the genesis block: index 0, all-zero previous
// hash, empty data, stamped now. The keypair is generated on the spot and
// its private half discarded — genesis is a chain anchor, not an origin of
// authority.
func (l *Ledger) AddBlockZero() (*Block, error) {
	priv, pub, err := GenerateKeyPair()
	if err != nil {
		return nil, err
	}

	b := NewBlock(nil, 0, Hash32{}, pub, now())
	if err := b.Sign(priv); err != nil {
		return nil, err
	}

	raw, err := b.Serialize()
	if err != nil {
		return nil, err
	}

	return l.AddBlock(raw)
}

// GetBlock returns the block at index. The index space is dense and
// zero-based, so lookup is positional.
func (l *Ledger) GetBlock(index uint64) (*Block, error) {
	if index >= uint64(len(l.blocks)) {
		return nil, fmt.Errorf("%w: index %d, length %d", ErrNotFound, index, len(l.blocks))
	}
	return l.blocks[index], nil
}

// LastBlock returns the tail block
func (l *Ledger) LastBlock() (*Block, error) {
	if len(l.blocks) == 0 {
		return nil, fmt.Errorf("%w: ledger is empty", ErrNotFound)
	}
	return l.blocks[len(l.blocks)-1], nil
}

// LastIndex returns the tail block's index. Producers use LastIndex+1 and
// LastHash to construct the next block.
func (l *Ledger) LastIndex() (uint64, error) {
	b, err := l.LastBlock()
	if err != nil {
		return 0, err
	}
	return b.Index, nil
}

// LastHash returns the tail block's hash
func (l *Ledger) LastHash() (Hash32, error) {
	b, err := l.LastBlock()
	if err != nil {
		return Hash32{}, err
	}
	return b.Hash(), nil
}

// Dump serializes the whole chain as repeated
// length(4, BE u32) || serialized_block records, in chain order.
func (l *Ledger) Dump() ([]byte, error) {
	var buf []byte
	for _, b := range l.blocks {
		raw, err := b.Serialize()
		if err != nil {
			return nil, err
		}
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(raw)))
		buf = append(buf, raw...)
	}
	return buf, nil
}

// FromDump rebuilds a ledger from Dump output. Every record is fed back
// through AddBlock, so signatures and chain linkage are re-verified; a
// corrupted or tampered dump fails to load instead of producing a broken
// chain.
func FromDump(raw []byte) (*Ledger, error) {
	l := New()
	for len(raw) > 0 {
		if len(raw) < 4 {
			return nil, fmt.Errorf("%w: truncated record length", ErrMalformedInput)
		}
		n := binary.BigEndian.Uint32(raw[:4])
		raw = raw[4:]
		if uint64(len(raw)) < uint64(n) {
			return nil, fmt.Errorf("%w: truncated record", ErrMalformedInput)
		}
		if _, err := l.AddBlock(raw[:n]); err != nil {
			return nil, fmt.Errorf("replaying block %d: %w", l.Length(), err)
		}
		raw = raw[n:]
	}
	return l, nil
}

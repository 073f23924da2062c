package ledger

import (
	"encoding/binary"
	"math"
)

// Serialized block layout, fixed offsets:
//
//	signature     [0:64]
//	public_key    [64:96]
//	index         [96:104]  big-endian uint64
//	previous_hash [104:136]
//	timestamp     [136:144] big-endian IEEE-754 double
//	data          [144:]
//
// The unsigned region [64:] is both the hashing and the signing domain, so the
// byte order must match bit-for-bit across implementations.
const (
	sigEnd       = 64
	pubKeyEnd    = sigEnd + 32
	indexEnd     = pubKeyEnd + 8
	prevHashEnd  = indexEnd + 32
	timestampEnd = prevHashEnd + 8

	// HeaderSize is the minimum length of a serialized block (empty data)
	HeaderSize = timestampEnd
)

// Block is a single signed record in the chain. Until Sign is called it is a
// mutable draft; afterwards it is frozen and may be serialized.
type Block struct {
	Data         []byte
	Index        uint64
	PreviousHash Hash32
	PublicKey    PublicKey
	Timestamp    float64

	signature Signature
	signed    bool
}

// NewBlock constructs an unsigned draft. Producers take index and prevHash
// from the ledger tail (LastIndex+1, LastHash).
func NewBlock(data []byte, index uint64, prevHash Hash32, pub PublicKey, timestamp float64) *Block {
	return &Block{
		Data:         data,
		Index:        index,
		PreviousHash: prevHash,
		PublicKey:    pub,
		Timestamp:    timestamp,
	}
}

// encodeUnsigned produces the canonical unsigned encoding:
// public_key || index || previous_hash || timestamp || data
func (b *Block) encodeUnsigned() []byte {
	buf := make([]byte, 0, HeaderSize-sigEnd+len(b.Data))
	buf = append(buf, b.PublicKey[:]...)
	buf = binary.BigEndian.AppendUint64(buf, b.Index)
	buf = append(buf, b.PreviousHash[:]...)
	buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(b.Timestamp))
	buf = append(buf, b.Data...)
	return buf
}

// Hash is the block's digest: sha256 over the canonical unsigned encoding.
// Children store it as their PreviousHash, and Sign signs it.
func (b *Block) Hash() Hash32 {
	return Sha256(b.encodeUnsigned())
}

// Sign computes the signature over Hash() and freezes the block.
// A block may be signed at most once.
func (b *Block) Sign(priv PrivateKey) error {
	if b.signed {
		return ErrAlreadySigned
	}

	digest := b.Hash()
	b.signature = Sign(digest[:], priv)
	b.signed = true
	return nil
}

// Signed reports whether the block has been signed
func (b *Block) Signed() bool {
	return b.signed
}

// Signature returns the block's signature, or ErrNotSigned for a draft
func (b *Block) Signature() (Signature, error) {
	if !b.signed {
		return Signature{}, ErrNotSigned
	}
	return b.signature, nil
}

// Serialize produces signature || canonical unsigned encoding.
// Drafts cannot be serialized.
func (b *Block) Serialize() ([]byte, error) {
	if !b.signed {
		return nil, ErrNotSigned
	}

	buf := make([]byte, 0, HeaderSize+len(b.Data))
	buf = append(buf, b.signature[:]...)
	buf = append(buf, b.encodeUnsigned()...)
	return buf, nil
}

// DecodeBlock parses serialized bytes at fixed offsets and verifies the
// signature against the embedded public key before returning. It fails
// closed: truncated input or a signature mismatch yields an error and no
// block. This is the only place an externally supplied byte sequence gets
// its signature checked.
func DecodeBlock(raw []byte) (*Block, error) {
	if len(raw) < HeaderSize {
		return nil, ErrMalformedInput
	}

	b := &Block{signed: true}
	copy(b.signature[:], raw[:sigEnd])
	copy(b.PublicKey[:], raw[sigEnd:pubKeyEnd])
	b.Index = binary.BigEndian.Uint64(raw[pubKeyEnd:indexEnd])
	copy(b.PreviousHash[:], raw[indexEnd:prevHashEnd])
	b.Timestamp = math.Float64frombits(binary.BigEndian.Uint64(raw[prevHashEnd:timestampEnd]))
	b.Data = append([]byte(nil), raw[timestampEnd:]...)

	digest := Sha256(raw[sigEnd:])
	if !Verify(digest[:], b.signature, b.PublicKey) {
		return nil, ErrInvalidSignature
	}

	return b, nil
}

// VerifySerialized checks the signature on serialized bytes under pub without
// constructing a Block. Callers that go through DecodeBlock do not need it.
func VerifySerialized(raw []byte, pub PublicKey) error {
	if len(raw) < HeaderSize {
		return ErrMalformedInput
	}

	var sig Signature
	copy(sig[:], raw[:sigEnd])

	digest := Sha256(raw[sigEnd:])
	if !Verify(digest[:], sig, pub) {
		return ErrInvalidSignature
	}
	return nil
}

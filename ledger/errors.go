package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput is returned when serialized bytes are too short or
	// structurally unparsable.
	ErrMalformedInput = errors.New("ledger: malformed input")

	// ErrInvalidSignature is returned when decoded fields are well-formed but
	// the signature does not verify under the embedded public key.
	ErrInvalidSignature = errors.New("ledger: invalid signature")

	// ErrNotFound is returned when a requested index is outside the stored range.
	ErrNotFound = errors.New("ledger: block not found")

	// ErrNotSigned is returned when serializing a block that has no signature yet.
	ErrNotSigned = errors.New("ledger: block not signed")

	// ErrAlreadySigned is returned when signing a block a second time.
	ErrAlreadySigned = errors.New("ledger: block already signed")
)

// ChainRule identifies which append invariant a rejected block violated
type ChainRule string

const (
	RuleIndexContinuity ChainRule = "index continuity"
	RuleHashLinkage     ChainRule = "hash linkage"
	RuleTimestampOrder  ChainRule = "timestamp order"
	RuleFutureTimestamp ChainRule = "future timestamp"
)

// ChainViolationError is returned when a decoded, signature-valid block fails
// the chain check against the current tail
type ChainViolationError struct {
	Index  uint64
	Rule   ChainRule
	Detail string
}

func (e *ChainViolationError) Error() string {
	return fmt.Sprintf("ledger: chain violation at block %d (%s): %s", e.Index, e.Rule, e.Detail)
}

// IsChainViolation checks whether an error is a ChainViolationError and returns it.
func IsChainViolation(err error) (*ChainViolationError, bool) {
	var cv *ChainViolationError
	if errors.As(err, &cv) {
		return cv, true
	}
	return nil, false
}

package ledger

import (
	"fmt"
	"time"
)

// now is the validation clock, float64 seconds since epoch
var now = func() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}

// validateSingle applies the rules that hold for every block regardless of
// its predecessor
func validateSingle(b *Block) error {
	if t := now(); b.Timestamp >= t {
		return &ChainViolationError{
			Index:  b.Index,
			Rule:   RuleFutureTimestamp,
			Detail: fmt.Sprintf("timestamp %f is not before current time %f", b.Timestamp, t),
		}
	}
	return nil
}

// validatePair applies the linkage rules between the new tail b and its
// predecessor p. Every prior append already passed this same check, so by
// induction checking only the new edge keeps the whole chain valid at O(1)
// per append.
func validatePair(b, p *Block) error {
	if b.Index != p.Index+1 {
		return &ChainViolationError{
			Index:  b.Index,
			Rule:   RuleIndexContinuity,
			Detail: fmt.Sprintf("expected index %d, got %d", p.Index+1, b.Index),
		}
	}

	if b.PreviousHash != p.Hash() {
		return &ChainViolationError{
			Index:  b.Index,
			Rule:   RuleHashLinkage,
			Detail: fmt.Sprintf("previous_hash %x does not match tail hash", b.PreviousHash[:8]),
		}
	}

	if b.Timestamp < p.Timestamp {
		return &ChainViolationError{
			Index:  b.Index,
			Rule:   RuleTimestampOrder,
			Detail: fmt.Sprintf("timestamp %f precedes tail timestamp %f", b.Timestamp, p.Timestamp),
		}
	}

	return validateSingle(b)
}

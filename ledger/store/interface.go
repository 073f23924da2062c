package store

import (
	"provchain/ledger"
)

// LedgerStore is the surface the serving layer reads through. The core
// Ledger is not internally synchronized, so anything serving concurrent
// requests goes through a store instead of holding a *ledger.Ledger.
type LedgerStore interface {

	// Update/Add/Put
	AddBlock(raw []byte) (*ledger.Block, error)

	// Getters
	GetBlock(index uint64) (*ledger.Block, error)
	LastBlock() (*ledger.Block, error)
	Length() (int, error)

	// Persistence
	Save(path string) error
}

package store

import (
	"errors"
	"sync"

	"provchain/ledger"
)

// GuardedStore wraps a Ledger in a RWMutex: one writer, any number of
// readers. This is the single-writer discipline the core leaves to callers.
type GuardedStore struct {
	ledger *ledger.Ledger
	mu     sync.RWMutex
}

// NewGuardedStore wraps an existing ledger. Pass ledger.New() for an empty one.
func NewGuardedStore(l *ledger.Ledger) *GuardedStore {
	if l == nil {
		l = ledger.New()
	}
	return &GuardedStore{ledger: l}
}

func (s *GuardedStore) AddBlock(raw []byte) (*ledger.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.AddBlock(raw)
}

func (s *GuardedStore) GetBlock(index uint64) (*ledger.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.GetBlock(index)
}

func (s *GuardedStore) LastBlock() (*ledger.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.LastBlock()
}

func (s *GuardedStore) Length() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Length(), nil
}

func (s *GuardedStore) Save(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Save(path)
}

// Swap atomically replaces the underlying ledger - used after a reload from disk
func (s *GuardedStore) Swap(l *ledger.Ledger) error {
	if l == nil {
		return errors.New("cannot swap in nil ledger")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger = l
	return nil
}

package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"provchain/ledger"
	provtest "provchain/testing"
)

func TestGuardedStoreBasics(t *testing.T) {
	l := ledger.New()
	if _, err := l.AddBlockZero(); err != nil {
		t.Fatalf("AddBlockZero() error = %v", err)
	}
	st := NewGuardedStore(l)

	length, err := st.Length()
	if err != nil {
		t.Fatalf("Length() error = %v", err)
	}
	if length != 1 {
		t.Errorf("Length() = %d, want 1", length)
	}

	genesis, err := st.GetBlock(0)
	if err != nil {
		t.Fatalf("GetBlock(0) error = %v", err)
	}
	last, err := st.LastBlock()
	if err != nil {
		t.Fatalf("LastBlock() error = %v", err)
	}
	if genesis != last {
		t.Error("single-block store: genesis and last must be the same block")
	}

	if _, err := st.GetBlock(9); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("GetBlock(9) error = %v, want ErrNotFound", err)
	}
}

func TestGuardedStoreAddBlock(t *testing.T) {
	l := ledger.New()
	if _, err := l.AddBlockZero(); err != nil {
		t.Fatalf("AddBlockZero() error = %v", err)
	}
	st := NewGuardedStore(l)

	last, err := st.LastBlock()
	if err != nil {
		t.Fatalf("LastBlock() error = %v", err)
	}

	priv, pub, err := ledger.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() error = %v", err)
	}
	ts := float64(time.Now().UnixNano()) / float64(time.Second)
	b := ledger.NewBlock([]byte("appended"), last.Index+1, last.Hash(), pub, ts)
	if err := b.Sign(priv); err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	raw, err := b.Serialize()
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	added, err := st.AddBlock(raw)
	if err != nil {
		t.Fatalf("AddBlock() error = %v", err)
	}
	if added.Index != 1 {
		t.Errorf("added index = %d, want 1", added.Index)
	}

	length, err := st.Length()
	if err != nil {
		t.Fatalf("Length() error = %v", err)
	}
	if length != 2 {
		t.Errorf("Length() = %d, want 2", length)
	}
}

func TestGuardedStoreConcurrentReaders(t *testing.T) {
	l, err := provtest.BuildExampleChain(5)
	if err != nil {
		t.Fatalf("BuildExampleChain() error = %v", err)
	}
	st := NewGuardedStore(l)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, err := st.GetBlock(uint64(j % 6)); err != nil {
					t.Errorf("GetBlock() error = %v", err)
					return
				}
				if _, err := st.LastBlock(); err != nil {
					t.Errorf("LastBlock() error = %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestGuardedStoreSwap(t *testing.T) {
	st := NewGuardedStore(nil)

	if err := st.Swap(nil); err == nil {
		t.Error("Swap(nil) must fail")
	}

	replacement := ledger.New()
	if _, err := replacement.AddBlockZero(); err != nil {
		t.Fatalf("AddBlockZero() error = %v", err)
	}
	if err := st.Swap(replacement); err != nil {
		t.Fatalf("Swap() error = %v", err)
	}

	length, err := st.Length()
	if err != nil {
		t.Fatalf("Length() error = %v", err)
	}
	if length != 1 {
		t.Errorf("Length() after swap = %d, want 1", length)
	}
}

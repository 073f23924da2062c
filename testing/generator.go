// Package testing provides deterministic-ish generators for provenance
// chains: one-off signer accounts, stage payloads and prebuilt ledgers.
// Used by tests and by cmd/populate.
package testing

import (
	"fmt"
	"time"

	"provchain/ledger"
	"provchain/payload"
)

// Account holds a complete keypair for fabricating blocks. Population uses
// a fresh account per block and discards it — block provenance rests on the
// chain linkage, not on long-lived signing identities.
type Account struct {
	PrivateKey ledger.PrivateKey
	PublicKey  ledger.PublicKey
}

// NewAccount generates a one-off account
func NewAccount() Account {
	priv, pub, err := ledger.GenerateKeyPair()
	if err != nil {
		panic("Failed to generate keypair: " + err.Error())
	}
	return Account{PrivateKey: priv, PublicKey: pub}
}

// Link builds a component reference to an already-appended stage block
func Link(proportion float64, name string, travelDistance float64, index uint64) payload.ComponentRef {
	return payload.ComponentRef{
		Proportion:     proportion,
		Name:           name,
		TravelDistance: travelDistance,
		LedgerIndex:    &index,
	}
}

// NewStage builds a stage document in one call
func NewStage(name, country, city string, batchSize float64, units, factory string, components []payload.ComponentRef, notes string) *payload.Stage {
	if components == nil {
		components = []payload.ComponentRef{}
	}
	return &payload.Stage{
		Name:           name,
		City:           city,
		Country:        country,
		BatchSize:      batchSize,
		BatchSizeUnits: units,
		Components:     components,
		FactoryName:    factory,
		Notes:          notes,
	}
}

// AppendStage signs a stage payload with a one-off account and appends it
// onto l's tail, returning the stored block
func AppendStage(l *ledger.Ledger, stage *payload.Stage) (*ledger.Block, error) {
	data, err := stage.Encode()
	if err != nil {
		return nil, err
	}
	return AppendData(l, data)
}

// AppendData appends arbitrary payload bytes as a signed block on l's tail
func AppendData(l *ledger.Ledger, data []byte) (*ledger.Block, error) {
	lastIndex, err := l.LastIndex()
	if err != nil {
		return nil, fmt.Errorf("ledger has no tail to chain onto: %w", err)
	}
	lastHash, err := l.LastHash()
	if err != nil {
		return nil, err
	}

	account := NewAccount()
	ts := float64(time.Now().UnixNano()) / float64(time.Second)

	block := ledger.NewBlock(data, lastIndex+1, lastHash, account.PublicKey, ts)
	if err := block.Sign(account.PrivateKey); err != nil {
		return nil, err
	}

	raw, err := block.Serialize()
	if err != nil {
		return nil, err
	}

	return l.AddBlock(raw)
}

// BuildExampleChain creates a genesis-bootstrapped ledger with n simple
// stage blocks appended, each consuming the previous stage in full
func BuildExampleChain(n int) (*ledger.Ledger, error) {
	l := ledger.New()
	if _, err := l.AddBlockZero(); err != nil {
		return nil, err
	}

	var prev *ledger.Block
	for i := 0; i < n; i++ {
		var components []payload.ComponentRef
		if prev != nil {
			components = append(components, Link(1.0, fmt.Sprintf("Stage %d", i-1), 100, prev.Index))
		}
		stage := NewStage(
			fmt.Sprintf("Stage %d", i),
			"Denmark", "Copenhagen", 10, "units",
			fmt.Sprintf("Factory %d", i), components, "",
		)

		block, err := AppendStage(l, stage)
		if err != nil {
			return nil, err
		}
		prev = block
	}

	return l, nil
}

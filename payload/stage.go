// Package payload defines the supply-chain stage documents carried in block
// data. The core ledger treats block data as opaque bytes; only the serving
// layer and the population tooling interpret it.
package payload

import (
	"encoding/json"
	"fmt"
)

// Stage describes one production stage: what was made, where, in what batch,
// and which upstream components went into it.
type Stage struct {
	Name           string         `json:"name"`
	City           string         `json:"city"`
	Country        string         `json:"country"`
	BatchSize      float64        `json:"batch_size"`
	BatchSizeUnits string         `json:"batch_size_units"`
	Components     []ComponentRef `json:"components"`
	FactoryName    string         `json:"factory_name"`
	Notes          string         `json:"notes,omitempty"`
}

// ComponentRef links a stage to an upstream component by ledger index,
// with the proportion it contributes and how far it travelled.
type ComponentRef struct {
	Proportion     float64
	Name           string
	TravelDistance float64
	// LedgerIndex is the referenced block's index; nil if the component was
	// never recorded on the ledger.
	LedgerIndex *uint64
}

// componentDetail is the object half of the wire form
type componentDetail struct {
	Name           string  `json:"name"`
	TravelDistance float64 `json:"travel_distance"`
	LedgerIndex    *uint64 `json:"blockchain_index"`
}

// MarshalJSON encodes the two-element array wire form
// [proportion, {"name": ..., "travel_distance": ..., "blockchain_index": ...}]
func (c ComponentRef) MarshalJSON() ([]byte, error) {
	detail := componentDetail{
		Name:           c.Name,
		TravelDistance: c.TravelDistance,
		LedgerIndex:    c.LedgerIndex,
	}
	return json.Marshal([2]any{c.Proportion, detail})
}

// UnmarshalJSON decodes the two-element array wire form
func (c *ComponentRef) UnmarshalJSON(raw []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(raw, &parts); err != nil {
		return fmt.Errorf("component reference is not an array: %w", err)
	}
	if len(parts) != 2 {
		return fmt.Errorf("component reference has %d elements, want 2", len(parts))
	}

	if err := json.Unmarshal(parts[0], &c.Proportion); err != nil {
		return fmt.Errorf("component proportion: %w", err)
	}

	var detail componentDetail
	if err := json.Unmarshal(parts[1], &detail); err != nil {
		return fmt.Errorf("component detail: %w", err)
	}

	c.Name = detail.Name
	c.TravelDistance = detail.TravelDistance
	c.LedgerIndex = detail.LedgerIndex
	return nil
}

// Decode parses block data as a stage document
func Decode(data []byte) (*Stage, error) {
	var s Stage
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding stage payload: %w", err)
	}
	return &s, nil
}

// Encode serializes a stage document for use as block data
func (s *Stage) Encode() ([]byte, error) {
	return json.Marshal(s)
}

package payload

import (
	"encoding/json"
	"testing"
)

func TestComponentRefWireForm(t *testing.T) {
	index := uint64(7)
	ref := ComponentRef{
		Proportion:     0.9,
		Name:           "Crocodile Hide",
		TravelDistance: 2300,
		LedgerIndex:    &index,
	}

	raw, err := json.Marshal(ref)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `[0.9,{"name":"Crocodile Hide","travel_distance":2300,"blockchain_index":7}]`
	if string(raw) != want {
		t.Errorf("Marshal() = %s, want %s", raw, want)
	}

	var decoded ComponentRef
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Proportion != ref.Proportion || decoded.Name != ref.Name ||
		decoded.TravelDistance != ref.TravelDistance {
		t.Errorf("round trip mismatch: %+v", decoded)
	}
	if decoded.LedgerIndex == nil || *decoded.LedgerIndex != index {
		t.Errorf("LedgerIndex = %v, want %d", decoded.LedgerIndex, index)
	}
}

func TestComponentRefNullIndex(t *testing.T) {
	raw := []byte(`[1.0, {"name": "String Rolls", "travel_distance": 600, "blockchain_index": null}]`)

	var ref ComponentRef
	if err := json.Unmarshal(raw, &ref); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if ref.LedgerIndex != nil {
		t.Errorf("LedgerIndex = %v, want nil", ref.LedgerIndex)
	}
}

func TestComponentRefRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not an array", raw: `{"proportion": 0.5}`},
		{name: "one element", raw: `[0.5]`},
		{name: "three elements", raw: `[0.5, {}, {}]`},
		{name: "non-numeric proportion", raw: `["high", {}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ref ComponentRef
			if err := json.Unmarshal([]byte(tt.raw), &ref); err == nil {
				t.Errorf("Unmarshal(%s) succeeded, want error", tt.raw)
			}
		})
	}
}

func TestStageRoundTrip(t *testing.T) {
	index := uint64(3)
	stage := &Stage{
		Name:           "Leather Sheets Assembly",
		City:           "Beijing",
		Country:        "China",
		BatchSize:      60,
		BatchSizeUnits: "pieces",
		Components: []ComponentRef{
			{Proportion: 0.9, Name: "Crocodile Hide", TravelDistance: 2300, LedgerIndex: &index},
		},
		FactoryName: "Leather Weather Factory",
		Notes:       "No known issues with the company",
	}

	data, err := stage.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if decoded.Name != stage.Name || decoded.FactoryName != stage.FactoryName {
		t.Errorf("round trip mismatch: %+v", decoded)
	}
	if len(decoded.Components) != 1 {
		t.Fatalf("components = %d, want 1", len(decoded.Components))
	}
	if decoded.Components[0].LedgerIndex == nil || *decoded.Components[0].LedgerIndex != index {
		t.Errorf("component index = %v, want %d", decoded.Components[0].LedgerIndex, index)
	}
}

func TestDecodeRejectsNonStage(t *testing.T) {
	if _, err := Decode([]byte("")); err == nil {
		t.Error("Decode(empty) must fail")
	}
	if _, err := Decode([]byte("binary \x00 garbage")); err == nil {
		t.Error("Decode(garbage) must fail")
	}
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"provchain/ledger"
	"provchain/ledger/store"
	"provchain/payload"
	provtest "provchain/testing"
)

// provenanceStore builds a small two-tier chain:
// block 1, 2 = raw materials; block 3 = assembly of both
func provenanceStore(t *testing.T) store.LedgerStore {
	t.Helper()

	l := ledger.New()
	if _, err := l.AddBlockZero(); err != nil {
		t.Fatalf("AddBlockZero() error = %v", err)
	}

	hide, err := provtest.AppendStage(l, provtest.NewStage(
		"Crocodile Hide", "Vietnam", "Ho Chi Minh", 30, "pieces",
		"Croco Farming Ltd", nil, "Known for excessive animal cruelty"))
	if err != nil {
		t.Fatalf("AppendStage(hide) error = %v", err)
	}

	str, err := provtest.AppendStage(l, provtest.NewStage(
		"String Rolls", "China", "Beijing", 30, "kg",
		"Rolling Dragon Ltd", nil, ""))
	if err != nil {
		t.Fatalf("AppendStage(string) error = %v", err)
	}

	_, err = provtest.AppendStage(l, provtest.NewStage(
		"Leather Sheets Assembly", "China", "Beijing", 60, "pieces",
		"Leather Weather Factory", []payload.ComponentRef{
			provtest.Link(0.9, "Crocodile Hide", 2300, hide.Index),
			provtest.Link(0.1, "String Rolls", 600, str.Index),
		}, ""))
	if err != nil {
		t.Fatalf("AppendStage(assembly) error = %v", err)
	}

	return store.NewGuardedStore(l)
}

func TestGraphResolution(t *testing.T) {
	st := provenanceStore(t)

	req := httptest.NewRequest(http.MethodGet, "/api/blocks/3/graph", nil)
	rec := httptest.NewRecorder()
	HandleBlocks(rec, req, st)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}

	var root GraphNode
	if err := json.NewDecoder(rec.Body).Decode(&root); err != nil {
		t.Fatalf("decoding graph: %v", err)
	}

	if root.Index != 3 {
		t.Errorf("root index = %d, want 3", root.Index)
	}
	if root.Stage == nil || root.Stage.Name != "Leather Sheets Assembly" {
		t.Fatalf("root stage = %+v, want Leather Sheets Assembly", root.Stage)
	}
	if len(root.Components) != 2 {
		t.Fatalf("root has %d components, want 2", len(root.Components))
	}

	first := root.Components[0]
	if first.Proportion != 0.9 || first.Name != "Crocodile Hide" {
		t.Errorf("first edge = %+v", first)
	}
	if first.Node == nil || first.Node.Index != 1 {
		t.Fatalf("first edge did not resolve to block 1: %+v", first.Node)
	}
	if first.Node.Stage.FactoryName != "Croco Farming Ltd" {
		t.Errorf("resolved factory = %q", first.Node.Stage.FactoryName)
	}
	if len(first.Node.Components) != 0 {
		t.Errorf("raw material has %d components, want 0", len(first.Node.Components))
	}

	second := root.Components[1]
	if second.Node == nil || second.Node.Index != 2 {
		t.Fatalf("second edge did not resolve to block 2: %+v", second.Node)
	}
}

func TestGraphLeavesUnrecordedComponentsUnresolved(t *testing.T) {
	l := ledger.New()
	if _, err := l.AddBlockZero(); err != nil {
		t.Fatalf("AddBlockZero() error = %v", err)
	}

	// Component has no ledger index: the edge stays, the node is nil
	stage := provtest.NewStage("Buttons", "Germany", "Hamburg", 100, "pieces",
		"ButtonTech GmbH", []payload.ComponentRef{
			{Proportion: 1.0, Name: "Offledger Brass", TravelDistance: 50},
		}, "")
	if _, err := provtest.AppendStage(l, stage); err != nil {
		t.Fatalf("AppendStage() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/blocks/1/graph", nil)
	rec := httptest.NewRecorder()
	HandleBlocks(rec, req, store.NewGuardedStore(l))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}

	var root GraphNode
	if err := json.NewDecoder(rec.Body).Decode(&root); err != nil {
		t.Fatalf("decoding graph: %v", err)
	}
	if len(root.Components) != 1 {
		t.Fatalf("root has %d components, want 1", len(root.Components))
	}
	if root.Components[0].Node != nil {
		t.Error("unrecorded component must not resolve to a node")
	}
}

func TestGraphErrors(t *testing.T) {
	st := provenanceStore(t)

	t.Run("genesis payload is not a stage", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/blocks/0/graph", nil)
		rec := httptest.NewRecorder()
		HandleBlocks(rec, req, st)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("unknown root index", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/blocks/42/graph", nil)
		rec := httptest.NewRecorder()
		HandleBlocks(rec, req, st)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("self-referencing payload", func(t *testing.T) {
		l := ledger.New()
		if _, err := l.AddBlockZero(); err != nil {
			t.Fatalf("AddBlockZero() error = %v", err)
		}
		// The payload claims its own block index as a component
		stage := provtest.NewStage("Ouroboros", "Nowhere", "Nowhere", 1, "units",
			"Loop Ltd", []payload.ComponentRef{
				provtest.Link(1.0, "Ouroboros", 0, 1),
			}, "")
		if _, err := provtest.AppendStage(l, stage); err != nil {
			t.Fatalf("AppendStage() error = %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/api/blocks/1/graph", nil)
		rec := httptest.NewRecorder()
		HandleBlocks(rec, req, store.NewGuardedStore(l))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("dangling reference", func(t *testing.T) {
		l := ledger.New()
		if _, err := l.AddBlockZero(); err != nil {
			t.Fatalf("AddBlockZero() error = %v", err)
		}
		stage := provtest.NewStage("Broken", "Nowhere", "Nowhere", 1, "units",
			"Broken Ltd", []payload.ComponentRef{
				provtest.Link(1.0, "Ghost Component", 10, 99),
			}, "")
		if _, err := provtest.AppendStage(l, stage); err != nil {
			t.Fatalf("AppendStage() error = %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/api/blocks/1/graph", nil)
		rec := httptest.NewRecorder()
		HandleBlocks(rec, req, store.NewGuardedStore(l))
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

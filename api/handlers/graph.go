package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"provchain/ledger/store"
	"provchain/payload"
)

// maxGraphDepth bounds recursion so a pathological reference chain cannot
// exhaust the stack
const maxGraphDepth = 64

// GraphNode is one resolved stage in the provenance tree
type GraphNode struct {
	Index      uint64         `json:"index"`
	Stage      *payload.Stage `json:"stage"`
	Components []GraphEdge    `json:"components"`
}

// GraphEdge carries the reference metadata plus the resolved upstream node.
// Node is nil when the component was never recorded on the ledger.
type GraphEdge struct {
	Proportion     float64    `json:"proportion"`
	Name           string     `json:"name"`
	TravelDistance float64    `json:"travel_distance"`
	Node           *GraphNode `json:"node"`
}

// HandleGraph resolves a block's payload-embedded component references into
// a tree. It is a pure consumer of GetBlock.
func HandleGraph(w http.ResponseWriter, r *http.Request, st store.LedgerStore, index uint64) {
	visited := make(map[uint64]bool)
	node, err := resolveGraph(st, index, visited, 0)
	if err != nil {
		writeGraphError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(node)
}

func resolveGraph(st store.LedgerStore, index uint64, visited map[uint64]bool, depth int) (*GraphNode, error) {
	if depth > maxGraphDepth {
		return nil, fmt.Errorf("reference graph deeper than %d at block %d", maxGraphDepth, index)
	}
	if visited[index] {
		return nil, fmt.Errorf("reference cycle through block %d", index)
	}
	visited[index] = true
	defer delete(visited, index)

	block, err := st.GetBlock(index)
	if err != nil {
		return nil, err
	}

	stage, err := payload.Decode(block.Data)
	if err != nil {
		return nil, fmt.Errorf("block %d: %w", index, err)
	}

	node := &GraphNode{
		Index:      index,
		Stage:      stage,
		Components: make([]GraphEdge, 0, len(stage.Components)),
	}

	for _, ref := range stage.Components {
		edge := GraphEdge{
			Proportion:     ref.Proportion,
			Name:           ref.Name,
			TravelDistance: ref.TravelDistance,
		}
		if ref.LedgerIndex != nil {
			child, err := resolveGraph(st, *ref.LedgerIndex, visited, depth+1)
			if err != nil {
				return nil, err
			}
			edge.Node = child
		}
		node.Components = append(node.Components, edge)
	}

	return node, nil
}

func writeGraphError(w http.ResponseWriter, err error) {
	// Unresolvable references and non-stage payloads are client-visible data
	// problems, not server faults
	writeDomainErrorWithDefault(w, err, http.StatusBadRequest)
}

func writeDomainErrorWithDefault(w http.ResponseWriter, err error, fallback int) {
	if mapped := domainStatus(err); mapped != 0 {
		http.Error(w, err.Error(), mapped)
		return
	}
	http.Error(w, err.Error(), fallback)
}

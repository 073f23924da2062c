package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"provchain/ledger"
	"provchain/ledger/store"
)

// BlockView is the JSON projection of a block; all byte fields are base64
type BlockView struct {
	SignatureB64    string  `json:"signature_b64"`
	Index           uint64  `json:"index"`
	PreviousHashB64 string  `json:"previous_hash_b64"`
	PublicKeyB64    string  `json:"public_key_b64"`
	Timestamp       float64 `json:"timestamp"`
	DataB64         string  `json:"data_b64"`
	Sha256B64       string  `json:"sha256_b64"`
}

// NewBlockView projects a stored block for JSON responses
func NewBlockView(b *ledger.Block) (BlockView, error) {
	sig, err := b.Signature()
	if err != nil {
		return BlockView{}, err
	}
	hash := b.Hash()

	return BlockView{
		SignatureB64:    base64.StdEncoding.EncodeToString(sig[:]),
		Index:           b.Index,
		PreviousHashB64: base64.StdEncoding.EncodeToString(b.PreviousHash[:]),
		PublicKeyB64:    base64.StdEncoding.EncodeToString(b.PublicKey[:]),
		Timestamp:       b.Timestamp,
		DataB64:         base64.StdEncoding.EncodeToString(b.Data),
		Sha256B64:       base64.StdEncoding.EncodeToString(hash[:]),
	}, nil
}

func HandleBlocks(w http.ResponseWriter, r *http.Request, st store.LedgerStore) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Path after /api/blocks/: either "last", "{index}" or "{index}/graph"
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/blocks"), "/")
	if path == "" {
		http.Error(w, "Block index required in URL", http.StatusBadRequest)
		return
	}

	if path == "last" {
		handleLastBlock(w, r, st)
		return
	}

	indexPart, rest, _ := strings.Cut(path, "/")
	index, err := strconv.ParseUint(indexPart, 10, 64)
	if err != nil {
		http.Error(w, "Invalid block index (must be an unsigned integer)", http.StatusBadRequest)
		return
	}

	switch rest {
	case "":
		handleGetBlock(w, r, st, index)
	case "graph":
		HandleGraph(w, r, st, index)
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

func handleGetBlock(w http.ResponseWriter, r *http.Request, st store.LedgerStore, index uint64) {
	block, err := st.GetBlock(index)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeBlock(w, r, block)
}

func handleLastBlock(w http.ResponseWriter, r *http.Request, st store.LedgerStore) {
	block, err := st.LastBlock()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeBlock(w, r, block)
}

// writeBlock responds with the JSON projection, or the raw serialized block
// when ?format=binary is requested
func writeBlock(w http.ResponseWriter, r *http.Request, block *ledger.Block) {
	if r.URL.Query().Get("format") == "binary" {
		raw, err := block.Serialize()
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to serialize block: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write(raw)
		return
	}

	view, err := NewBlockView(block)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to project block: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

// domainStatus maps ledger errors onto HTTP statuses; 0 means unmapped
func domainStatus(err error) int {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrMalformedInput):
		return http.StatusBadRequest
	}
	return 0
}

func writeDomainError(w http.ResponseWriter, err error) {
	writeDomainErrorWithDefault(w, err, http.StatusInternalServerError)
}

package ledger

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Save writes the gzip-compressed dump to path. The file is written to a
// temporary sibling first and renamed into place, so a crash mid-write
// cannot corrupt an existing valid file.
func (l *Ledger) Save(path string) error {
	dump, err := l.Dump()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(dump); err != nil {
		return fmt.Errorf("compressing ledger: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compressing ledger: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("writing ledger file: %w", err)
	}

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing ledger file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing ledger file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing ledger file: %w", err)
	}
	return nil
}

// Load reads a saved ledger from path, re-validating every block during
// replay. With create set, a missing file yields a fresh ledger bootstrapped
// with a genesis block instead of an error.
func Load(path string, create bool) (*Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		if create && errors.Is(err, fs.ErrNotExist) {
			l := New()
			if _, err := l.AddBlockZero(); err != nil {
				return nil, err
			}
			return l, nil
		}
		return nil, fmt.Errorf("reading ledger file: %w", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: not a gzip container: %v", ErrMalformedInput, err)
	}
	defer zr.Close()

	dump, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: corrupt gzip container: %v", ErrMalformedInput, err)
	}

	return FromDump(dump)
}

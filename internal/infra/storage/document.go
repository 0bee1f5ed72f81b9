package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// The dedup table and the ledger are each one JSON document: loaded fully
// into memory at open, rewritten wholesale on every mutation. The rewrite
// is write-temp-then-rename so a crash never leaves a torn file. A single
// active process is assumed; two writers on the same files are unsupported.

// loadDocument reads a full JSON document into v. A missing file is not an
// error; the caller starts empty.
func loadDocument(path string, v any) (found bool, err error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return true, nil
}

// saveDocument atomically replaces the document at path with v.
func saveDocument(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// ensureDir creates the parent directory of path if needed.
func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	return nil
}

// Package library persists parsed entries as an ordered JSON array on
// disk. Appends rewrite the whole array; output files are only written
// after successful in-memory construction, so a failed operation never
// leaves a partial file behind.
package library

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Load reads the entry library at path. A missing file loads as an empty
// library; existing content that is not a JSON array is an error.
func Load(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read library file: %w", err)
	}

	var entries []map[string]any
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("library %s must contain a JSON array of entries: %w", path, err)
	}
	if entries == nil {
		entries = []map[string]any{}
	}
	return entries, nil
}

// Save writes entries to path as an indented JSON array. Map keys
// serialize in sorted order, so identical entries always produce identical
// bytes.
func Save(entries []map[string]any, path string) error {
	if entries == nil {
		entries = []map[string]any{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode library: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create library directory: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write library file: %w", err)
	}
	return nil
}

// Append loads the library, extends it with records, rewrites the file,
// and returns the updated list.
func Append(records []map[string]any, path string) ([]map[string]any, error) {
	current, err := Load(path)
	if err != nil {
		return nil, err
	}
	current = append(current, records...)
	if err := Save(current, path); err != nil {
		return nil, err
	}
	log.Info().Str("path", path).Int("added", len(records)).Int("total", len(current)).Msg("Library updated")
	return current, nil
}

// Package store persists parsed entry records in PostgreSQL so libraries
// merged from many scans can be queried and deduplicated centrally.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"lexicanum/internal/textutil"
)

// EntryStore writes entry records to the entries table, deduplicated by a
// content hash over the canonical JSON form.
type EntryStore struct {
	pool *pgxpool.Pool
}

// NewEntryStore creates an entry store on the given pool.
func NewEntryStore(pool *pgxpool.Pool) *EntryStore {
	return &EntryStore{pool: pool}
}

// EnsureSchema creates the entries table if it does not exist.
func (s *EntryStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS entries (
			hash       TEXT PRIMARY KEY,
			entry_type TEXT NOT NULL,
			name       TEXT NOT NULL DEFAULT '',
			source     TEXT NOT NULL DEFAULT '',
			payload    JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("create entries table: %w", err)
	}
	return nil
}

// Record pairs an entry's content hash with its canonical JSON form.
type Record struct {
	Hash    string
	Type    string
	Name    string
	Source  string
	Payload []byte
}

// BuildRecord computes the canonical record for one serialized entry.
// encoding/json sorts map keys, so the hash is stable across runs.
func BuildRecord(rec map[string]any) (Record, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return Record{}, fmt.Errorf("encode entry record: %w", err)
	}
	r := Record{Hash: textutil.Hash(string(payload)), Payload: payload}
	if t, ok := rec["type"].(string); ok {
		r.Type = t
	}
	if n, ok := rec["name"].(string); ok {
		r.Name = n
	}
	if src, ok := rec["source"].(string); ok {
		r.Source = src
	}
	return r, nil
}

// Upsert inserts records, skipping hashes already present. Returns the
// number of newly inserted rows.
func (s *EntryStore) Upsert(ctx context.Context, records []Record) (int, error) {
	inserted := 0
	for _, r := range records {
		tag, err := s.pool.Exec(ctx, `
			INSERT INTO entries (hash, entry_type, name, source, payload)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (hash) DO NOTHING
		`, r.Hash, r.Type, r.Name, r.Source, r.Payload)
		if err != nil {
			return inserted, fmt.Errorf("upsert entry %s: %w", textutil.Truncate(r.Name, 30), err)
		}
		if tag.RowsAffected() > 0 {
			inserted++
		}
	}

	log.Info().Int("records", len(records)).Int("inserted", inserted).Msg("Upserted entries")
	return inserted, nil
}

// CountByType returns how many stored entries exist per entry type.
func (s *EntryStore) CountByType(ctx context.Context) (map[string]int, error) {
	rows, err := s.pool.Query(ctx, `SELECT entry_type, COUNT(*) FROM entries GROUP BY entry_type`)
	if err != nil {
		return nil, fmt.Errorf("count entries: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var entryType string
		var count int
		if err := rows.Scan(&entryType, &count); err != nil {
			return nil, fmt.Errorf("scan entry count: %w", err)
		}
		counts[entryType] = count
	}
	return counts, rows.Err()
}

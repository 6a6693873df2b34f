package similarity

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
	"github.com/rs/zerolog/log"
)

// VectorStore handles pgvector-backed embedding storage and similarity
// search over entry vectors.
type VectorStore struct {
	pool *pgxpool.Pool
	dims int
}

// NewVectorStore creates a vector store for embeddings of the given
// dimensionality.
func NewVectorStore(pool *pgxpool.Pool, dims int) *VectorStore {
	return &VectorStore{pool: pool, dims: dims}
}

// EnsureSchema creates the vector extension and the entry_vectors table.
func (vs *VectorStore) EnsureSchema(ctx context.Context) error {
	if _, err := vs.pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return fmt.Errorf("create vector extension: %w", err)
	}
	_, err := vs.pool.Exec(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS entry_vectors (
			hash      TEXT PRIMARY KEY,
			label     TEXT NOT NULL,
			embedding vector(%d) NOT NULL
		)
	`, vs.dims))
	if err != nil {
		return fmt.Errorf("create entry_vectors table: %w", err)
	}
	return nil
}

// VectorRecord is one entry's embedding keyed by its content hash. Label
// carries a short human-readable handle (type plus name) for search
// output.
type VectorRecord struct {
	Hash   string
	Label  string
	Vector []float32
}

// Match is one similarity search result.
type Match struct {
	Hash  string
	Label string
	Score float64
}

// Store upserts embedding records.
func (vs *VectorStore) Store(ctx context.Context, records []VectorRecord) error {
	if len(records) == 0 {
		return nil
	}

	for _, r := range records {
		_, err := vs.pool.Exec(ctx, `
			INSERT INTO entry_vectors (hash, label, embedding)
			VALUES ($1, $2, $3)
			ON CONFLICT (hash) DO UPDATE SET label = $2, embedding = $3
		`, r.Hash, r.Label, pgvector.NewVector(r.Vector))
		if err != nil {
			return fmt.Errorf("insert embedding %s: %w", r.Hash, err)
		}
	}

	log.Info().Int("count", len(records)).Msg("Stored entry embeddings")
	return nil
}

// Search finds the top-K entries most similar to the query vector by
// cosine distance.
func (vs *VectorStore) Search(ctx context.Context, queryVector []float32, topK int) ([]Match, error) {
	rows, err := vs.pool.Query(ctx, `
		SELECT hash, label, 1 - (embedding <=> $1) AS similarity
		FROM entry_vectors
		ORDER BY embedding <=> $1
		LIMIT $2
	`, pgvector.NewVector(queryVector), topK)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.Hash, &m.Label, &m.Score); err != nil {
			return nil, fmt.Errorf("scan search result: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// Package similarity finds near-duplicate entries across scans. Entries
// parsed from different books (or different windows of the same book)
// often describe the same talent with small wording drift; feature-hashed
// bag-of-token vectors stored in pgvector make those cheap to find without
// any external embedding service.
package similarity

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// Vectorizer produces deterministic feature-hashed embeddings of entry
// text. The same text always maps to the same vector.
type Vectorizer struct {
	dims int
}

// NewVectorizer creates a vectorizer with the given dimensionality.
func NewVectorizer(dims int) *Vectorizer {
	if dims < 1 {
		dims = 256
	}
	return &Vectorizer{dims: dims}
}

// Dims returns the vector dimensionality.
func (v *Vectorizer) Dims() int { return v.dims }

// Embed hashes each lowercased token into a bucket and L2-normalizes the
// resulting term-frequency vector. Empty or token-free text yields the
// zero vector.
func (v *Vectorizer) Embed(text string) []float32 {
	vec := make([]float32, v.dims)
	for _, token := range tokenize(text) {
		h := fnv.New32a()
		h.Write([]byte(token))
		vec[h.Sum32()%uint32(v.dims)]++
	}

	var norm float64
	for _, x := range vec {
		norm += float64(x) * float64(x)
	}
	if norm == 0 {
		return vec
	}
	scale := float32(1 / math.Sqrt(norm))
	for i := range vec {
		vec[i] *= scale
	}
	return vec
}

// tokenize lowercases text and splits on anything that is not a letter or
// digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

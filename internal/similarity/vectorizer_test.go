package similarity_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexicanum/internal/similarity"
)

func TestEmbedIsDeterministic(t *testing.T) {
	v := similarity.NewVectorizer(64)
	first := v.Embed("Air Of Authority: affect more targets")
	second := v.Embed("Air Of Authority: affect more targets")
	assert.Equal(t, first, second)
}

func TestEmbedIsUnitLength(t *testing.T) {
	v := similarity.NewVectorizer(128)
	vec := v.Embed("Catfall reduces falling damage")

	var norm float64
	for _, x := range vec {
		norm += float64(x) * float64(x)
	}
	assert.InDelta(t, 1.0, norm, 1e-5)
}

func TestEmbedCaseAndPunctuationInsensitive(t *testing.T) {
	v := similarity.NewVectorizer(64)
	assert.Equal(t, v.Embed("CATFALL, agility!"), v.Embed("catfall agility"))
}

func TestEmbedEmptyTextIsZeroVector(t *testing.T) {
	v := similarity.NewVectorizer(32)
	vec := v.Embed("   ...   ")
	require.Len(t, vec, 32)
	for _, x := range vec {
		assert.Zero(t, x)
	}
}

func TestSimilarTextsScoreHigherThanUnrelated(t *testing.T) {
	v := similarity.NewVectorizer(256)
	base := v.Embed("Catfall: you always land on your feet, reducing falling damage")
	near := v.Embed("Catfall: you land on your feet and reduce falling damage")
	far := v.Embed("Hammer Blow: a mighty strike that staggers the foe")

	assert.Greater(t, cosine(base, near), cosine(base, far))
}

func TestDefaultDimensions(t *testing.T) {
	assert.Equal(t, 256, similarity.NewVectorizer(0).Dims())
	assert.Equal(t, 64, similarity.NewVectorizer(64).Dims())
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

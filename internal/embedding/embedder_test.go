package embedding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vectorNorm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

func TestNewEmbedder(t *testing.T) {
	t.Run("valid model identifier", func(t *testing.T) {
		emb, err := NewEmbedder("hash-v1/256")
		require.NoError(t, err)
		assert.Equal(t, 256, emb.Dimension())
		assert.Equal(t, "hash-v1/256", emb.ModelID())
	})

	t.Run("unknown family", func(t *testing.T) {
		_, err := NewEmbedder("minilm/384")
		assert.ErrorIs(t, err, ErrUnknownModel)
	})

	t.Run("missing dimension", func(t *testing.T) {
		_, err := NewEmbedder("hash-v1")
		assert.ErrorIs(t, err, ErrUnknownModel)
	})

	t.Run("invalid dimension", func(t *testing.T) {
		_, err := NewEmbedder("hash-v1/zero")
		assert.ErrorIs(t, err, ErrUnknownModel)

		_, err = NewEmbedder("hash-v1/1")
		assert.ErrorIs(t, err, ErrUnknownModel)
	})
}

func TestEmbedUnitNorm(t *testing.T) {
	emb, err := NewEmbedder("hash-v1/64")
	require.NoError(t, err)

	texts := []string{
		"chicken, rice, garlic",
		"flour sugar butter eggs vanilla",
		"a",
		"Feijão preto, arroz e couve",
		"", // empty input must still produce a unit vector
	}
	for _, text := range texts {
		vec, err := emb.Embed(text)
		require.NoError(t, err)
		require.Len(t, vec.Slice(), 64)
		assert.InDelta(t, 1.0, vectorNorm(vec.Slice()), 1e-5, "norm of embedding of %q", text)
	}
}

func TestEmbedDeterministic(t *testing.T) {
	emb, err := NewEmbedder("hash-v1/128")
	require.NoError(t, err)

	a, err := emb.Embed("tomato basil mozzarella")
	require.NoError(t, err)
	b, err := emb.Embed("tomato basil mozzarella")
	require.NoError(t, err)

	assert.Equal(t, a.Slice(), b.Slice())
}

func TestEmbedCaseAndPunctuationInsensitive(t *testing.T) {
	emb, err := NewEmbedder("hash-v1/128")
	require.NoError(t, err)

	a, err := emb.Embed("Chicken, Rice; Garlic!")
	require.NoError(t, err)
	b, err := emb.Embed("chicken rice garlic")
	require.NoError(t, err)

	assert.Equal(t, a.Slice(), b.Slice())
}

func TestEmbedDistinctTexts(t *testing.T) {
	emb, err := NewEmbedder("hash-v1/128")
	require.NoError(t, err)

	a, err := emb.Embed("chicken rice garlic")
	require.NoError(t, err)
	b, err := emb.Embed("chocolate cake frosting")
	require.NoError(t, err)

	assert.NotEqual(t, a.Slice(), b.Slice())
}

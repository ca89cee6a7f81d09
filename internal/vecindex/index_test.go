package vecindex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Axis-aligned unit vectors make expected inner products obvious.
func testIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := New(3, [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	})
	require.NoError(t, err)
	return idx
}

func TestNew(t *testing.T) {
	t.Run("rejects mismatched vector dimension", func(t *testing.T) {
		_, err := New(3, [][]float32{{1, 0}})
		assert.ErrorIs(t, err, ErrDimension)
	})

	t.Run("rejects non-positive dimension", func(t *testing.T) {
		_, err := New(0, nil)
		assert.ErrorIs(t, err, ErrDimension)
	})

	t.Run("empty index", func(t *testing.T) {
		idx, err := New(4, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, idx.Size())
		assert.Equal(t, 4, idx.Dimension())

		hits, err := idx.Search([]float32{1, 0, 0, 0}, 5)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})
}

func TestSearchOrdering(t *testing.T) {
	idx := testIndex(t)

	hits, err := idx.Search([]float32{0.8, 0.6, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	assert.Equal(t, 0, hits[0].Position)
	assert.InDelta(t, 0.8, hits[0].Score, 1e-6)
	assert.Equal(t, 1, hits[1].Position)
	assert.InDelta(t, 0.6, hits[1].Score, 1e-6)
	assert.Equal(t, 2, hits[2].Position)

	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score)
	}
}

func TestSearchTieBreak(t *testing.T) {
	// Equal scores must come back in ascending position order.
	idx, err := New(2, [][]float32{
		{0, 1},
		{1, 0},
		{1, 0},
	})
	require.NoError(t, err)

	hits, err := idx.Search([]float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, 1, hits[0].Position)
	assert.Equal(t, 2, hits[1].Position)
	assert.Equal(t, 0, hits[2].Position)
}

func TestSearchBounds(t *testing.T) {
	idx := testIndex(t)

	t.Run("k larger than size returns size", func(t *testing.T) {
		hits, err := idx.Search([]float32{1, 0, 0}, 10)
		require.NoError(t, err)
		assert.Len(t, hits, 3)
		for _, h := range hits {
			assert.GreaterOrEqual(t, h.Position, 0)
			assert.Less(t, h.Position, 3)
		}
	})

	t.Run("k truncates", func(t *testing.T) {
		hits, err := idx.Search([]float32{1, 0, 0}, 1)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, 0, hits[0].Position)
	})

	t.Run("non-positive k", func(t *testing.T) {
		hits, err := idx.Search([]float32{1, 0, 0}, 0)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("query dimension mismatch", func(t *testing.T) {
		_, err := idx.Search([]float32{1, 0}, 1)
		assert.ErrorIs(t, err, ErrDimension)
	})
}

func TestSaveLoadRoundTrip(t *testing.T) {
	idx := testIndex(t)
	path := filepath.Join(t.TempDir(), "recipes.index")

	require.NoError(t, idx.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, idx.Dimension(), loaded.Dimension())
	assert.Equal(t, idx.Size(), loaded.Size())

	hits, err := loaded.Search([]float32{0, 1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 1, hits[0].Position)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-6)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.index"))
		assert.Error(t, err)
	})

	t.Run("bad magic", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.index")
		require.NoError(t, os.WriteFile(path, []byte("not an index file"), 0o644))

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrFormat)
	})

	t.Run("truncated data", func(t *testing.T) {
		idx := testIndex(t)
		path := filepath.Join(t.TempDir(), "trunc.index")
		require.NoError(t, idx.Save(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, data[:len(data)-4], 0o644))

		_, err = Load(path)
		assert.ErrorIs(t, err, ErrFormat)
	})
}

package storage

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseS3URI(t *testing.T) {
	bucket, key, err := parseS3URI("s3://artifacts/recipes/recipes.index")
	require.NoError(t, err)
	assert.Equal(t, "artifacts", bucket)
	assert.Equal(t, "recipes/recipes.index", key)

	_, _, err = parseS3URI("s3://bucket-only")
	assert.Error(t, err)

	_, _, err = parseS3URI("s3:///no-bucket")
	assert.Error(t, err)
}

func TestFetchLocalPathPassThrough(t *testing.T) {
	// Non-S3 locations are used as-is, without touching the network.
	path, err := Fetch(context.Background(), "data/catalog.csv", t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "data/catalog.csv", path)
}

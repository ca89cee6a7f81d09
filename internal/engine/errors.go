package engine

import "errors"

// Startup errors. Any of these leaves the engine unconstructed; the caller
// should report itself not ready rather than crash.
var (
	// ErrModelLoad indicates the embedding model could not be loaded.
	ErrModelLoad = errors.New("embedding model load failed")

	// ErrIndexLoad indicates the vector index could not be loaded.
	ErrIndexLoad = errors.New("vector index load failed")

	// ErrCatalogLoad indicates the recipe catalog could not be loaded.
	ErrCatalogLoad = errors.New("recipe catalog load failed")

	// ErrDimensionMismatch indicates the embedder output dimension differs
	// from the index dimension. The artifacts were built from different
	// models.
	ErrDimensionMismatch = errors.New("embedding dimension does not match index dimension")

	// ErrSizeMismatch indicates the index and catalog hold different
	// numbers of entries. The artifacts were built from different corpora.
	ErrSizeMismatch = errors.New("index size does not match catalog size")
)

// Per-request errors. These propagate to the caller as request failures and
// are distinct from the valid empty result of a query with no matches.
var (
	// ErrQueryEncoding indicates the query text could not be embedded.
	ErrQueryEncoding = errors.New("query encoding failed")

	// ErrSearch indicates an internal index search failure.
	ErrSearch = errors.New("index search failed")
)

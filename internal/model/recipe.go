package model

// Recipe is a single catalog entry. Records are immutable after load and the
// catalog position of a record is its zero-based row number in the source.
type Recipe struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions,omitempty"`
	Link         string `json:"link,omitempty"`
	NER          string `json:"ner,omitempty"`
}

// SearchResult is a recipe enriched with similarity information for one
// query. Results are built per request and never persisted.
type SearchResult struct {
	Recipe

	// SimilarityScore is the inner product between the query vector and the
	// recipe vector, in [-1, 1] for unit vectors.
	SimilarityScore float64 `json:"similarity_score"`

	// MatchPercent maps SimilarityScore onto [0, 100], rounded to two
	// decimal places.
	MatchPercent float64 `json:"match_percent"`
}

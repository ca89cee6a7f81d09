package api

import "github.com/julianacmsantos/recipes-project/internal/model"

// Top-k bounds for recommendation requests.
const (
	DefaultTopK = 10
	MaxTopK     = 50
)

// RecommendRequest is the body of POST /api/v1/recommend.
type RecommendRequest struct {
	// Ingredients is the free-text ingredient query.
	Ingredients string `json:"ingredients" binding:"required"`
	// TopK is the maximum number of results; defaults to DefaultTopK.
	TopK int `json:"top_k"`
	// ExactMatch additionally requires results to share at least one
	// literal query token in their ingredient text.
	ExactMatch bool `json:"exact_match"`
}

// RecommendResponse is the body of a successful recommendation.
type RecommendResponse struct {
	Query   string               `json:"query"`
	Count   int                  `json:"count"`
	Results []model.SearchResult `json:"results"`
}

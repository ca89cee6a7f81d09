// Package engine implements the recipe recommendation core: it turns a
// free-text ingredient query into a vector, searches the index for nearest
// neighbors, joins hits to catalog records and scores each match.
package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/julianacmsantos/recipes-project/internal/catalog"
	"github.com/julianacmsantos/recipes-project/internal/embedding"
	"github.com/julianacmsantos/recipes-project/internal/model"
	"github.com/julianacmsantos/recipes-project/internal/vecindex"
)

// Engine orchestrates embedder, index and catalog. All three are loaded once
// and held read-only for the process lifetime, so an Engine is safe for
// concurrent Recommend calls.
type Engine struct {
	embedder embedding.Embedder
	index    *vecindex.Index
	catalog  *catalog.Catalog
	logger   zerolog.Logger
}

// New builds an engine from already-loaded components, rejecting mismatched
// artifacts: the index and catalog must be the same size, and the embedder
// must produce vectors of the index dimension.
func New(emb embedding.Embedder, idx *vecindex.Index, cat *catalog.Catalog, logger zerolog.Logger) (*Engine, error) {
	if idx.Size() != cat.Size() {
		return nil, fmt.Errorf("%w: index has %d entries, catalog has %d", ErrSizeMismatch, idx.Size(), cat.Size())
	}
	if emb.Dimension() != idx.Dimension() {
		return nil, fmt.Errorf("%w: model %s produces %d, index holds %d", ErrDimensionMismatch, emb.ModelID(), emb.Dimension(), idx.Dimension())
	}

	return &Engine{
		embedder: emb,
		index:    idx,
		catalog:  cat,
		logger:   logger.With().Str("component", "engine").Logger(),
	}, nil
}

// Init loads the embedding model, vector index and recipe catalog from the
// given sources and builds an engine. Load failures are wrapped in the
// matching startup error category.
func Init(indexPath, catalogPath, modelID string, logger zerolog.Logger) (*Engine, error) {
	emb, err := embedding.NewEmbedder(modelID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelLoad, err)
	}
	logger.Info().Str("model", modelID).Int("dimension", emb.Dimension()).Msg("embedding model loaded")

	idx, err := vecindex.Load(indexPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexLoad, err)
	}
	logger.Info().Str("path", indexPath).Int("vectors", idx.Size()).Msg("vector index loaded")

	cat, err := catalog.Load(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogLoad, err)
	}
	logger.Info().Str("path", catalogPath).Int("recipes", cat.Size()).Msg("recipe catalog loaded")

	return New(emb, idx, cat, logger)
}

// ModelID returns the identifier of the loaded embedding model.
func (e *Engine) ModelID() string { return e.embedder.ModelID() }

// Catalog exposes the loaded catalog for read-only lookups.
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// Recommend returns up to topK recipes ranked by similarity to the query
// text. With exactTokenFilter set, only recipes whose ingredient text
// contains at least one literal query token are kept; if that leaves
// nothing, the result is empty rather than falling back to the unfiltered
// list. A blank query and a query with no matches both yield an empty list,
// never an error.
func (e *Engine) Recommend(query string, topK int, exactTokenFilter bool) ([]model.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.SearchResult{}, nil
	}

	vec, err := e.embedder.Embed(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryEncoding, err)
	}

	hits, err := e.index.Search(vec.Slice(), topK)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearch, err)
	}

	results := make([]model.SearchResult, 0, len(hits))
	for _, hit := range hits {
		// Some index implementations pad unfilled slots with a sentinel
		// position; those never surface as results.
		if hit.Position < 0 || hit.Position >= e.catalog.Size() {
			continue
		}

		score := float64(hit.Score)
		results = append(results, model.SearchResult{
			Recipe:          e.catalog.Get(hit.Position),
			SimilarityScore: score,
			MatchPercent:    MatchPercent(score),
		})
	}

	// The index returns at most topK hits and the filter only removes
	// entries, so the result length never exceeds topK.
	if exactTokenFilter {
		results = filterByTokens(results, query)
	}

	e.logger.Debug().Str("query", query).Int("top_k", topK).Bool("exact", exactTokenFilter).Int("results", len(results)).Msg("recommendation computed")
	return results, nil
}

// MatchPercent maps a similarity score in [-1, 1] onto a percentage,
// rounded to two decimal places. Scores below -1 due to floating error clamp
// to zero; there is no upper clamp since unit vectors bound the score at 1.
func MatchPercent(score float64) float64 {
	percent := (score + 1) / 2 * 100
	if percent < 0 {
		percent = 0
	}
	return math.Round(percent*100) / 100
}

// filterByTokens keeps results whose ingredient text contains at least one
// literal token of the lower-cased, whitespace-split query.
func filterByTokens(results []model.SearchResult, query string) []model.SearchResult {
	tokens := strings.Fields(strings.ToLower(query))

	kept := results[:0]
	for _, res := range results {
		ingredients := strings.ToLower(res.Ingredients)
		for _, tok := range tokens {
			if strings.Contains(ingredients, tok) {
				kept = append(kept, res)
				break
			}
		}
	}
	return kept
}

// Package embedding turns free text into fixed-dimension, L2-normalized
// vectors suitable for inner-product similarity search.
package embedding

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
	pgvector "github.com/pgvector/pgvector-go"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnknownModel is returned when the model identifier does not name a
// supported embedding model.
var ErrUnknownModel = errors.New("unknown embedding model")

// Embedder generates a vector embedding for a piece of text. Implementations
// must be deterministic for a fixed model and safe for concurrent use.
type Embedder interface {
	// Embed returns the embedding of text. The result always has unit L2
	// norm and dimension Dimension(). Embed never fails on empty input.
	Embed(text string) (pgvector.Vector, error)

	// Dimension returns the dimensionality of the output vectors.
	Dimension() int

	// ModelID returns the identifier of the loaded model.
	ModelID() string
}

const hashFamily = "hash-v1"

// HashingEmbedder is a signed feature-hashing bag-of-tokens encoder. Each
// token is hashed into one of dim buckets with a hash-derived sign; the
// accumulated vector is L2-normalized. Encoding the same text always yields
// the same vector, and identical texts embed to identical vectors with inner
// product 1.
type HashingEmbedder struct {
	modelID string
	dim     int
}

// NewEmbedder loads the embedder named by modelID. Identifiers have the form
// "family/dimension", e.g. "hash-v1/256". Unsupported families or invalid
// dimensions return ErrUnknownModel.
func NewEmbedder(modelID string) (*HashingEmbedder, error) {
	family, dimStr, ok := strings.Cut(modelID, "/")
	if !ok || family != hashFamily {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, modelID)
	}

	dim, err := strconv.Atoi(dimStr)
	if err != nil || dim < 2 {
		return nil, fmt.Errorf("%w: invalid dimension in %q", ErrUnknownModel, modelID)
	}

	return &HashingEmbedder{modelID: modelID, dim: dim}, nil
}

// Embed encodes text into a unit vector of dimension Dimension().
func (e *HashingEmbedder) Embed(text string) (pgvector.Vector, error) {
	v := make([]float32, e.dim)

	for _, tok := range e.tokenize(text) {
		h := xxhash.Sum64String(tok)
		bucket := int(h % uint64(e.dim))
		if h>>63 == 0 {
			v[bucket]++
		} else {
			v[bucket]--
		}
	}

	normalize(v)
	return pgvector.NewVector(v), nil
}

// Dimension returns the output vector dimension.
func (e *HashingEmbedder) Dimension() int { return e.dim }

// ModelID returns the model identifier the embedder was loaded with.
func (e *HashingEmbedder) ModelID() string { return e.modelID }

// tokenize lower-cases text and splits it on anything that is not a letter
// or digit. Casers are stateful, so each call builds its own.
func (e *HashingEmbedder) tokenize(text string) []string {
	lowered := cases.Lower(language.Und).String(text)
	return strings.FieldsFunc(lowered, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// normalize scales v to unit L2 norm in place. A zero vector (no tokens)
// falls back to a fixed unit vector so the norm invariant holds for every
// embedder output.
func normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		v[0] = 1
		return
	}

	norm := float32(math.Sqrt(sum))
	for i := range v {
		v[i] /= norm
	}
}

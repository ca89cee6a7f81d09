// Package vecindex implements a flat, exact inner-product index over
// unit-normalized vectors with a persistent on-disk format.
package vecindex

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
)

var (
	// ErrDimension is returned when a vector's dimension does not match the
	// index dimension.
	ErrDimension = errors.New("vector dimension mismatch")

	// ErrFormat is returned when an index file is truncated or not a
	// recognized index file.
	ErrFormat = errors.New("invalid index file")
)

// File format: magic, version, dimension, count, then count*dimension
// float32 values in little-endian row-major order.
const (
	magic         = "RCPX"
	formatVersion = 1
)

// Hit is a single search result: the position of a stored vector and its
// inner product with the query.
type Hit struct {
	Position int
	Score    float32
}

// Index holds precomputed recipe vectors and answers top-k queries by inner
// product, which equals cosine similarity when both operands are unit
// vectors. An Index is immutable after construction and safe for concurrent
// searches.
type Index struct {
	dim  int
	data []float32 // count rows of dim values
}

// New builds an index over vectors, all of which must have dimension dim.
func New(dim int, vectors [][]float32) (*Index, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("%w: dimension %d", ErrDimension, dim)
	}

	data := make([]float32, 0, len(vectors)*dim)
	for i, vec := range vectors {
		if len(vec) != dim {
			return nil, fmt.Errorf("%w: vector %d has dimension %d, index has %d", ErrDimension, i, len(vec), dim)
		}
		data = append(data, vec...)
	}

	return &Index{dim: dim, data: data}, nil
}

// Load reads an index from the file at path.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	defer f.Close()

	idx, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("read index %s: %w", path, err)
	}
	return idx, nil
}

func read(r io.Reader) (*Index, error) {
	var hdr struct {
		Magic   [4]byte
		Version uint32
		Dim     uint32
		Count   uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if string(hdr.Magic[:]) != magic {
		return nil, fmt.Errorf("%w: bad magic", ErrFormat)
	}
	if hdr.Version != formatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrFormat, hdr.Version)
	}
	if hdr.Dim == 0 {
		return nil, fmt.Errorf("%w: zero dimension", ErrFormat)
	}

	data := make([]float32, int(hdr.Count)*int(hdr.Dim))
	if err := binary.Read(r, binary.LittleEndian, data); err != nil {
		return nil, fmt.Errorf("%w: truncated vector data: %v", ErrFormat, err)
	}

	return &Index{dim: int(hdr.Dim), data: data}, nil
}

// Save writes the index to the file at path.
func (ix *Index) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	if err := ix.write(f); err != nil {
		f.Close()
		return fmt.Errorf("write index %s: %w", path, err)
	}
	return f.Close()
}

func (ix *Index) write(w io.Writer) error {
	hdr := struct {
		Magic   [4]byte
		Version uint32
		Dim     uint32
		Count   uint32
	}{
		Version: formatVersion,
		Dim:     uint32(ix.dim),
		Count:   uint32(ix.Size()),
	}
	copy(hdr.Magic[:], magic)

	if err := binary.Write(w, binary.LittleEndian, &hdr); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, ix.data)
}

// Size returns the number of stored vectors.
func (ix *Index) Size() int {
	if ix.dim == 0 {
		return 0
	}
	return len(ix.data) / ix.dim
}

// Dimension returns the dimensionality of the stored vectors.
func (ix *Index) Dimension() int { return ix.dim }

// Search returns up to k hits ordered by descending score, ties broken by
// ascending position. Asking for more hits than stored vectors returns every
// vector; no padding entries are produced.
func (ix *Index) Search(query []float32, k int) ([]Hit, error) {
	if len(query) != ix.dim {
		return nil, fmt.Errorf("%w: query has dimension %d, index has %d", ErrDimension, len(query), ix.dim)
	}
	if k <= 0 {
		return []Hit{}, nil
	}

	n := ix.Size()
	hits := make([]Hit, n)
	for pos := 0; pos < n; pos++ {
		row := ix.data[pos*ix.dim : (pos+1)*ix.dim]
		var dot float32
		for i, q := range query {
			dot += q * row[i]
		}
		hits[pos] = Hit{Position: pos, Score: dot}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Position < hits[j].Position
	})

	if k < n {
		hits = hits[:k]
	}
	return hits, nil
}

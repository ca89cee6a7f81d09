// Package catalog loads and serves the ordered recipe corpus. The position
// of a record is its zero-based row number in the source and matches the
// position of its vector in the index.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/julianacmsantos/recipes-project/internal/model"
)

var (
	// ErrMissingColumn is returned when a required column is absent from
	// the source.
	ErrMissingColumn = errors.New("missing required column")

	// ErrBadRecord is returned when a row cannot be parsed into a recipe.
	ErrBadRecord = errors.New("malformed recipe record")
)

// Required columns. Instructions, link and ner are optional and default to
// empty.
var requiredColumns = []string{"id", "title", "ingredients"}

// Catalog is an immutable, position-ordered collection of recipes.
type Catalog struct {
	recipes []model.Recipe
	byID    map[int64]int
}

// Load reads a catalog from path, dispatching on the file extension:
// .csv is parsed as a header-first CSV file, .db/.sqlite/.sqlite3 as a
// SQLite database.
func Load(path string) (*Catalog, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(path)
	default:
		return LoadCSV(path)
	}
}

// LoadCSV reads a catalog from a CSV file with a header row.
func LoadCSV(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	c, err := readCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return c, nil
}

func readCSV(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var recipes []model.Recipe
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrBadRecord, line, err)
		}

		id, err := strconv.ParseInt(field(row, "id"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad id %q", ErrBadRecord, line, field(row, "id"))
		}

		recipes = append(recipes, model.Recipe{
			ID:           id,
			Title:        field(row, "title"),
			Ingredients:  field(row, "ingredients"),
			Instructions: field(row, "instructions"),
			Link:         field(row, "link"),
			NER:          field(row, "ner"),
		})
	}

	return fromRecipes(recipes), nil
}

func fromRecipes(recipes []model.Recipe) *Catalog {
	byID := make(map[int64]int, len(recipes))
	for pos, r := range recipes {
		byID[r.ID] = pos
	}
	return &Catalog{recipes: recipes, byID: byID}
}

// Size returns the number of recipes.
func (c *Catalog) Size() int { return len(c.recipes) }

// Get returns the recipe at position. Positions originate from trusted index
// results; out-of-range access is a programmer error and panics.
func (c *Catalog) Get(position int) model.Recipe {
	return c.recipes[position]
}

// GetByID returns the recipe with the given id, if present.
func (c *Catalog) GetByID(id int64) (model.Recipe, bool) {
	pos, ok := c.byID[id]
	if !ok {
		return model.Recipe{}, false
	}
	return c.recipes[pos], true
}

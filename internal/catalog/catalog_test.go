package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianacmsantos/recipes-project/internal/model"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeCSV(t, `id,title,ingredients,instructions,link,ner
1,Feijoada,"black beans, pork, garlic","Soak beans overnight.",https://example.com/feijoada,"beans,pork"
2,Caprese Salad,"tomato, mozzarella, basil",,,
7,Pancakes,"flour, milk, eggs","Mix and fry.",,
`)

	cat, err := LoadCSV(path)
	require.NoError(t, err)
	require.Equal(t, 3, cat.Size())

	first := cat.Get(0)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "Feijoada", first.Title)
	assert.Equal(t, "black beans, pork, garlic", first.Ingredients)
	assert.Equal(t, "Soak beans overnight.", first.Instructions)
	assert.Equal(t, "https://example.com/feijoada", first.Link)
	assert.Equal(t, "beans,pork", first.NER)

	// Optional columns default to empty.
	second := cat.Get(1)
	assert.Equal(t, int64(2), second.ID)
	assert.Empty(t, second.Instructions)
	assert.Empty(t, second.Link)
	assert.Empty(t, second.NER)

	// Position follows row order, independent of ids.
	assert.Equal(t, int64(7), cat.Get(2).ID)
}

func TestLoadCSVOptionalColumnsAbsent(t *testing.T) {
	path := writeCSV(t, "id,title,ingredients\n3,Toast,bread butter\n")

	cat, err := LoadCSV(path)
	require.NoError(t, err)
	require.Equal(t, 1, cat.Size())
	assert.Equal(t, "Toast", cat.Get(0).Title)
	assert.Empty(t, cat.Get(0).Instructions)
}

func TestLoadCSVErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCSV(filepath.Join(t.TempDir(), "absent.csv"))
		assert.Error(t, err)
	})

	t.Run("missing required column", func(t *testing.T) {
		path := writeCSV(t, "id,title\n1,Toast\n")
		_, err := LoadCSV(path)
		assert.ErrorIs(t, err, ErrMissingColumn)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		path := writeCSV(t, "id,title,ingredients\nabc,Toast,bread\n")
		_, err := LoadCSV(path)
		assert.ErrorIs(t, err, ErrBadRecord)
	})
}

func TestGetByID(t *testing.T) {
	path := writeCSV(t, "id,title,ingredients\n10,Soup,water salt\n20,Stew,beef carrots\n")
	cat, err := LoadCSV(path)
	require.NoError(t, err)

	recipe, ok := cat.GetByID(20)
	require.True(t, ok)
	assert.Equal(t, "Stew", recipe.Title)

	_, ok = cat.GetByID(999)
	assert.False(t, ok)
}

func TestSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	recipes := []model.Recipe{
		{ID: 1, Title: "Feijoada", Ingredients: "black beans, pork", Instructions: "Cook slowly."},
		{ID: 2, Title: "Caprese", Ingredients: "tomato, mozzarella, basil"},
	}
	require.NoError(t, WriteSQLite(path, recipes))

	cat, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, cat.Size())
	assert.Equal(t, recipes[0], cat.Get(0))
	assert.Equal(t, recipes[1], cat.Get(1))

	got, ok := cat.GetByID(2)
	require.True(t, ok)
	assert.Equal(t, "Caprese", got.Title)
}

func TestLoadDispatch(t *testing.T) {
	path := writeCSV(t, "id,title,ingredients\n1,Toast,bread\n")
	cat, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cat.Size())
}

// Command indexer builds the flat vector index consumed by the API from a
// recipe catalog. Each recipe's ingredient text is embedded with the same
// encoder the API uses, so the resulting artifact pair always satisfies the
// engine's size and dimension checks.
package main

import (
	"flag"
	"os"

	"github.com/julianacmsantos/recipes-project/internal/catalog"
	"github.com/julianacmsantos/recipes-project/internal/embedding"
	"github.com/julianacmsantos/recipes-project/internal/logging"
	"github.com/julianacmsantos/recipes-project/internal/vecindex"
)

func main() {
	var (
		catalogPath = flag.String("catalog", "", "path to the recipe catalog (.csv or .db)")
		outPath     = flag.String("out", "recipes.index", "path of the index file to write")
		modelID     = flag.String("model", "hash-v1/256", "embedding model identifier")
	)
	flag.Parse()

	logger := logging.New("info", "console")
	if *catalogPath == "" {
		logger.Error().Msg("-catalog is required")
		flag.Usage()
		os.Exit(2)
	}

	cat, err := catalog.Load(*catalogPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("load catalog")
	}
	logger.Info().Int("recipes", cat.Size()).Msg("catalog loaded")

	emb, err := embedding.NewEmbedder(*modelID)
	if err != nil {
		logger.Fatal().Err(err).Msg("load embedding model")
	}

	vectors := make([][]float32, cat.Size())
	for pos := 0; pos < cat.Size(); pos++ {
		vec, err := emb.Embed(cat.Get(pos).Ingredients)
		if err != nil {
			logger.Fatal().Err(err).Int("position", pos).Msg("embed recipe")
		}
		vectors[pos] = vec.Slice()
	}

	idx, err := vecindex.New(emb.Dimension(), vectors)
	if err != nil {
		logger.Fatal().Err(err).Msg("build index")
	}
	if err := idx.Save(*outPath); err != nil {
		logger.Fatal().Err(err).Msg("write index")
	}

	logger.Info().
		Str("out", *outPath).
		Int("vectors", idx.Size()).
		Int("dimension", idx.Dimension()).
		Msg("index written")
}

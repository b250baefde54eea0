package service

import (
	"hash/fnv"
	"math"
	"strings"

	pgvector "github.com/pgvector/pgvector-go"

	"github.com/pageza/pantrymatch/backend/internal/matching"
	"github.com/pageza/pantrymatch/backend/internal/model"
)

// EmbedIngredients hashes ingredient tokens into a fixed-width bag-of-words
// vector, L2-normalized. Recipes and queries built from overlapping
// ingredients land close together, which is all the pool ordering needs.
func EmbedIngredients(names []string) pgvector.Vector {
	vec := make([]float32, model.EmbeddingDimensions)
	for _, name := range names {
		for _, tok := range strings.Fields(matching.Normalize(name)) {
			h := fnv.New32a()
			h.Write([]byte(tok))
			vec[h.Sum32()%model.EmbeddingDimensions]++
		}
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v * v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return pgvector.NewVector(vec)
}

// EmbedRecipe embeds the recipe's ingredient names
func EmbedRecipe(ingredients []matching.Ingredient) pgvector.Vector {
	names := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		names = append(names, ing.Name)
	}
	return EmbedIngredients(names)
}

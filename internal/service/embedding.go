package service

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	"github.com/pageza/pikasmart/backend/internal/models"
	pgvector "github.com/pgvector/pgvector-go"
)

// EmbeddingService turns recipe text into a fixed-width vector for
// similarity search.
type EmbeddingService struct{}

func NewEmbeddingService() *EmbeddingService {
	return &EmbeddingService{}
}

// GenerateEmbedding hashes each word of text into one of
// models.EmbeddingDimensions buckets and L2-normalizes the counts, so texts
// sharing words land close together.
func (s *EmbeddingService) GenerateEmbedding(text string) (pgvector.Vector, error) {
	vec := make([]float32, models.EmbeddingDimensions)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		h := fnv.New32a()
		_, _ = h.Write([]byte(w))
		vec[h.Sum32()%models.EmbeddingDimensions]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v * v)
	}
	if norm > 0 {
		n := float32(math.Sqrt(norm))
		for i := range vec {
			vec[i] /= n
		}
	}
	return pgvector.NewVector(vec), nil
}

// RecipeEmbedding embeds the parts of a recipe that describe what it is.
func (s *EmbeddingService) RecipeEmbedding(recipe *models.Recipe) (pgvector.Vector, error) {
	var b strings.Builder
	b.WriteString(recipe.Title)
	b.WriteByte(' ')
	b.WriteString(recipe.Description)
	for _, ing := range recipe.Ingredients {
		b.WriteByte(' ')
		b.WriteString(ing.Name)
	}
	return s.GenerateEmbedding(b.String())
}

// euclidean matches pgvector's <-> operator.
func euclidean(a, b pgvector.Vector) float64 {
	av, bv := a.Slice(), b.Slice()
	var sum float64
	for i := range av {
		if i >= len(bv) {
			break
		}
		d := float64(av[i] - bv[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

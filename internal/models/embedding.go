package models

import (
	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
)

// EmbeddingDimensions is the width of the hashed recipe feature vector.
const EmbeddingDimensions = 64

// RecipeEmbedding holds the similarity vector for a recipe. The table only
// exists on postgres, where it is queried with pgvector's distance operator.
type RecipeEmbedding struct {
	RecipeID  uuid.UUID       `gorm:"type:varchar(36);primarykey" json:"recipe_id"`
	Embedding pgvector.Vector `gorm:"type:vector(64)" json:"-"`
}

func (RecipeEmbedding) TableName() string {
	return "recipe_embeddings"
}

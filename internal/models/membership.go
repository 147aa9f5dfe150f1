package models

import (
	"time"

	"github.com/google/uuid"
)

// Collection names one of a user's recipe membership sets.
type Collection string

const (
	CollectionSaved     Collection = "saved"
	CollectionFavourite Collection = "favourite"
	CollectionTrashed   Collection = "trashed"
)

// Valid reports whether c is one of the known collections.
func (c Collection) Valid() bool {
	switch c {
	case CollectionSaved, CollectionFavourite, CollectionTrashed:
		return true
	}
	return false
}

// RecipeMembership places a recipe in one of a user's collections. The
// composite primary key makes each (user, recipe, collection) triple a set
// element, so inserts can be add-if-absent.
type RecipeMembership struct {
	UserID     uuid.UUID  `gorm:"type:varchar(36);primaryKey" json:"user_id"`
	RecipeID   uuid.UUID  `gorm:"type:varchar(36);primaryKey;index" json:"recipe_id"`
	Collection Collection `gorm:"type:varchar(16);primaryKey" json:"collection"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (RecipeMembership) TableName() string {
	return "recipe_memberships"
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pageza/pikasmart/backend/internal/models"
	"github.com/pageza/pikasmart/backend/internal/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CollectionService manages the saved, favourite and trashed sets a user
// keeps recipes in. A recipe may be saved and favourited at once; trashing
// takes it out of both.
type CollectionService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewCollectionService(db *gorm.DB, log *zap.Logger) *CollectionService {
	return &CollectionService{db: db, log: log}
}

// Save adds the recipe to the user's saved set. Saving twice is a no-op.
func (s *CollectionService) Save(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.withChecks(ctx, userID, recipeID, func(tx *gorm.DB) error {
		return addMember(tx, userID, recipeID, models.CollectionSaved)
	})
}

// Favourite adds the recipe to the user's favourites. Favouriting twice is a no-op.
func (s *CollectionService) Favourite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.withChecks(ctx, userID, recipeID, func(tx *gorm.DB) error {
		return addMember(tx, userID, recipeID, models.CollectionFavourite)
	})
}

// Unfavourite removes the recipe from the user's favourites.
func (s *CollectionService) Unfavourite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.withChecks(ctx, userID, recipeID, func(tx *gorm.DB) error {
		removed, err := removeMembers(tx, userID, recipeID, models.CollectionFavourite)
		if err != nil {
			return err
		}
		if removed == 0 {
			return ErrNotInFavourites
		}
		return nil
	})
}

// MoveToTrash takes the recipe out of saved and favourites and puts it in
// the trash, atomically.
func (s *CollectionService) MoveToTrash(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.withChecks(ctx, userID, recipeID, func(tx *gorm.DB) error {
		return tx.Transaction(func(tx *gorm.DB) error {
			if _, err := removeMembers(tx, userID, recipeID, models.CollectionSaved, models.CollectionFavourite); err != nil {
				return err
			}
			return addMember(tx, userID, recipeID, models.CollectionTrashed)
		})
	})
}

// Restore moves a trashed recipe back to the saved set.
func (s *CollectionService) Restore(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.withChecks(ctx, userID, recipeID, func(tx *gorm.DB) error {
		return tx.Transaction(func(tx *gorm.DB) error {
			removed, err := removeMembers(tx, userID, recipeID, models.CollectionTrashed)
			if err != nil {
				return err
			}
			if removed == 0 {
				return ErrNotInTrash
			}
			return addMember(tx, userID, recipeID, models.CollectionSaved)
		})
	})
}

// EmptyTrash clears the user's trash. An empty trash is not an error.
func (s *CollectionService) EmptyTrash(ctx context.Context, userID uuid.UUID) error {
	db := s.db.WithContext(ctx)
	if err := ensureUser(db, userID); err != nil {
		return err
	}

	res := db.Where("user_id = ? AND collection = ?", userID, models.CollectionTrashed).
		Delete(&models.RecipeMembership{})
	if res.Error != nil {
		return fmt.Errorf("failed to empty trash: %w", res.Error)
	}
	s.log.Debug("trash emptied", zap.String("user_id", userID.String()), zap.Int64("removed", res.RowsAffected))
	return nil
}

// ListCollection pages through the recipes in one of the user's sets. With
// no sort key recipes come back in the order they were added.
func (s *CollectionService) ListCollection(ctx context.Context, userID uuid.UUID, collection models.Collection, q types.ListQuery) (*ListResult, error) {
	if !collection.Valid() {
		return nil, fmt.Errorf("unknown collection %q", collection)
	}

	db := s.db.WithContext(ctx)
	if err := ensureUser(db, userID); err != nil {
		return nil, err
	}

	base := db.Model(&models.Recipe{}).
		Joins("JOIN recipe_memberships m ON m.recipe_id = recipes.id AND m.user_id = ? AND m.collection = ?", userID, collection)
	return paginate(base, q, "m.created_at ASC, recipes.id ASC")
}

func (s *CollectionService) withChecks(ctx context.Context, userID, recipeID uuid.UUID, fn func(tx *gorm.DB) error) error {
	db := s.db.WithContext(ctx)
	if err := ensureUser(db, userID); err != nil {
		return err
	}
	if err := ensureRecipe(db, recipeID); err != nil {
		return err
	}
	return fn(db)
}

func ensureUser(db *gorm.DB, userID uuid.UUID) error {
	var user models.User
	if err := db.Select("id").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}
	return nil
}

func ensureRecipe(db *gorm.DB, recipeID uuid.UUID) error {
	var recipe models.Recipe
	if err := db.Select("id").First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return fmt.Errorf("failed to load recipe: %w", err)
	}
	return nil
}

func addMember(tx *gorm.DB, userID, recipeID uuid.UUID, collection models.Collection) error {
	m := models.RecipeMembership{UserID: userID, RecipeID: recipeID, Collection: collection}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&m).Error; err != nil {
		return fmt.Errorf("failed to add recipe to %s: %w", collection, err)
	}
	return nil
}

func removeMembers(tx *gorm.DB, userID, recipeID uuid.UUID, collections ...models.Collection) (int64, error) {
	res := tx.Where("user_id = ? AND recipe_id = ? AND collection IN ?", userID, recipeID, collections).
		Delete(&models.RecipeMembership{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to remove recipe membership: %w", res.Error)
	}
	return res.RowsAffected, nil
}

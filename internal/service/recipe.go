package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/pikasmart/backend/internal/models"
	"github.com/pageza/pikasmart/backend/internal/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultSimilarLimit = 5
	MaxSimilarLimit     = 20
)

// ListResult is one page of a recipe listing.
type ListResult struct {
	Recipes     []models.Recipe
	Total       int64
	TotalPages  int
	CurrentPage int
}

// RecipeService handles recipe operations
type RecipeService struct {
	db               *gorm.DB
	embeddingService EmbeddingServiceInterface
	log              *zap.Logger
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, embeddingService EmbeddingServiceInterface, log *zap.Logger) *RecipeService {
	return &RecipeService{
		db:               db,
		embeddingService: embeddingService,
		log:              log,
	}
}

// CreateRecipe stores a recipe and, on postgres, its similarity embedding.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	recipe.ID = uuid.Nil
	recipe.GeneratedByAI = true

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}
		if tx.Dialector.Name() != "postgres" {
			return nil
		}
		vec, err := s.embeddingService.RecipeEmbedding(recipe)
		if err != nil {
			return fmt.Errorf("failed to embed recipe: %w", err)
		}
		return tx.Create(&models.RecipeEmbedding{RecipeID: recipe.ID, Embedding: vec}).Error
	})
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}
	return &recipe, nil
}

// GetRecipeByRawID parses id before loading; unparseable ids are unknown recipes.
func (s *RecipeService) GetRecipeByRawID(ctx context.Context, id string) (*models.Recipe, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrRecipeNotFound
	}
	return s.GetRecipe(ctx, parsed)
}

// ListRecipes lists every recipe with filtering, sorting and paging applied.
func (s *RecipeService) ListRecipes(ctx context.Context, q types.ListQuery) (*ListResult, error) {
	base := s.db.WithContext(ctx).Model(&models.Recipe{})
	return paginate(base, q, "recipes.created_at ASC, recipes.id ASC")
}

// SimilarRecipes returns up to limit recipes nearest to id by embedding
// distance, excluding the recipe itself.
func (s *RecipeService) SimilarRecipes(ctx context.Context, id uuid.UUID, limit int) ([]models.Recipe, error) {
	if limit < 1 {
		limit = DefaultSimilarLimit
	}
	if limit > MaxSimilarLimit {
		limit = MaxSimilarLimit
	}

	target, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	vec, err := s.embeddingService.RecipeEmbedding(target)
	if err != nil {
		return nil, fmt.Errorf("failed to embed recipe: %w", err)
	}

	db := s.db.WithContext(ctx)
	var recipes []models.Recipe
	if db.Dialector.Name() == "postgres" {
		err := db.Model(&models.Recipe{}).
			Joins("JOIN recipe_embeddings e ON e.recipe_id = recipes.id").
			Where("recipes.id <> ?", id).
			Clauses(clause.OrderBy{Expression: clause.Expr{SQL: "e.embedding <-> ?", Vars: []interface{}{vec}}}).
			Limit(limit).
			Find(&recipes).Error
		if err != nil {
			return nil, fmt.Errorf("failed to query similar recipes: %w", err)
		}
		return recipes, nil
	}

	// Other dialects have no vector operator, so rank in process.
	if err := db.Where("id <> ?", id).Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}
	distances := make(map[uuid.UUID]float64, len(recipes))
	for i := range recipes {
		other, err := s.embeddingService.RecipeEmbedding(&recipes[i])
		if err != nil {
			return nil, fmt.Errorf("failed to embed recipe: %w", err)
		}
		distances[recipes[i].ID] = euclidean(vec, other)
	}
	sort.SliceStable(recipes, func(i, j int) bool {
		return distances[recipes[i].ID] < distances[recipes[j].ID]
	})
	if len(recipes) > limit {
		recipes = recipes[:limit]
	}
	return recipes, nil
}

// likeEscaper escapes LIKE metacharacters so user input matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func titleFilter(title string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(title)) + "%"
}

// paginate applies the title filter, counts, sorts and pages query. The
// default order is used when q carries no sort key.
func paginate(query *gorm.DB, q types.ListQuery, defaultOrder string) (*ListResult, error) {
	q = q.Normalize()

	if q.HasTitle && q.Title != "" {
		query = query.Where(`LOWER(recipes.title) LIKE ? ESCAPE '\'`, titleFilter(q.Title))
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count recipes: %w", err)
	}

	query = query.Select("recipes.*")
	switch q.Sort {
	case types.SortNewest:
		query = query.Order("recipes.created_at DESC")
	case types.SortOldest:
		query = query.Order("recipes.created_at ASC")
	case types.SortTitle:
		query = query.Order("recipes.title ASC")
	default:
		query = query.Order(defaultOrder)
	}

	var recipes []models.Recipe
	if err := query.Offset(q.Offset()).Limit(q.Limit).Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	return &ListResult{
		Recipes:     recipes,
		Total:       total,
		TotalPages:  types.TotalPages(total, q.Limit),
		CurrentPage: q.Page,
	}, nil
}

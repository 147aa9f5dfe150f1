package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/pikasmart/backend/internal/middleware"
	"github.com/pageza/pikasmart/backend/internal/models"
	"github.com/pageza/pikasmart/backend/internal/service"
	"github.com/pageza/pikasmart/backend/internal/types"
	"go.uber.org/zap"
)

// listing describes one of the paginated recipe endpoints.
type listing struct {
	message string
	key     string
}

var (
	allListing         = listing{"All recipes fetched successfully", "recipes"}
	collectionListings = map[models.Collection]listing{
		models.CollectionSaved:     {"User recipes fetched successfully", "saved_recipes"},
		models.CollectionFavourite: {"Favourite recipes fetched successfully", "favourite_recipes"},
		models.CollectionTrashed:   {"Trashed recipes fetched successfully", "trashed_recipes"},
	}
)

// RecipeHandler serves the recipe catalogue, generation and the caller's
// collections.
type RecipeHandler struct {
	recipeService     service.IRecipeService
	collectionService service.ICollectionService
	generationService service.IGenerationService
	generateLimit     gin.HandlerFunc
	log               *zap.Logger
}

// NewRecipeHandler builds the handler. generateLimit guards POST /generate
// and may be nil when no rate limiter is configured.
func NewRecipeHandler(
	recipeService service.IRecipeService,
	collectionService service.ICollectionService,
	generationService service.IGenerationService,
	generateLimit gin.HandlerFunc,
	log *zap.Logger,
) *RecipeHandler {
	return &RecipeHandler{
		recipeService:     recipeService,
		collectionService: collectionService,
		generationService: generationService,
		generateLimit:     generateLimit,
		log:               log,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, requireSession gin.HandlerFunc) {
	recipes := router.Group("/recipe")
	{
		recipes.GET("/all", h.ListRecipes)
		recipes.GET("/recipe-info/:id", h.GetRecipe)
		recipes.GET("/similar/:id", h.SimilarRecipes)

		generate := []gin.HandlerFunc{h.GenerateRecipe}
		if h.generateLimit != nil {
			generate = append([]gin.HandlerFunc{h.generateLimit}, generate...)
		}
		recipes.POST("/generate", generate...)

		mine := recipes.Group("")
		mine.Use(requireSession)
		mine.GET("/my-recipes", h.listCollection(models.CollectionSaved))
		mine.GET("/favourite-recipes", h.listCollection(models.CollectionFavourite))
		mine.GET("/trashed-recipes", h.listCollection(models.CollectionTrashed))
		mine.PATCH("/save/:id", h.transition(h.collectionService.Save, "Recipe saved successfully"))
		mine.PATCH("/favourite/:id", h.transition(h.collectionService.Favourite, "Recipe favourited successfully"))
		mine.PATCH("/unfavourite/:id", h.transition(h.collectionService.Unfavourite, "Recipe removed from favourites successfully"))
		mine.PATCH("/move-to-trash/:id", h.transition(h.collectionService.MoveToTrash, "Recipe moved to trash successfully"))
		mine.PATCH("/restore/:id", h.transition(h.collectionService.Restore, "Recipe restored successfully"))
		mine.DELETE("/delete", h.EmptyTrash)
	}
}

func listQueryFrom(c *gin.Context) types.ListQuery {
	title, hasTitle := c.GetQuery("title")
	return types.NewListQuery(title, hasTitle, c.Query("sortby"), c.Query("page"), c.Query("limit"))
}

func respondList(c *gin.Context, l listing, result *service.ListResult) {
	recipes := result.Recipes
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	respondOK(c, http.StatusOK, l.message, gin.H{
		l.key:          recipes,
		"totalRecipes": result.Total,
		"totalPages":   result.TotalPages,
		"currentPage":  result.CurrentPage,
	})
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	result, err := h.recipeService.ListRecipes(c.Request.Context(), listQueryFrom(c))
	if err != nil {
		respondError(c, h.log, err, nil)
		return
	}
	respondList(c, allListing, result)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipeService.GetRecipeByRawID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, nil)
		return
	}
	respondOK(c, http.StatusOK, "Recipe info fetched successfully", gin.H{"recipe": recipe})
}

func (h *RecipeHandler) SimilarRecipes(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, h.log, service.ErrRecipeNotFound, nil)
		return
	}

	limit := service.DefaultSimilarLimit
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}

	recipes, err := h.recipeService.SimilarRecipes(c.Request.Context(), id, limit)
	if err != nil {
		respondError(c, h.log, err, nil)
		return
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	respondOK(c, http.StatusOK, "Similar recipes fetched successfully", gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GenerateRecipe(c *gin.Context) {
	var req types.GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug("invalid generate request body", zap.Error(err))
		respondError(c, h.log, service.ErrNoIngredients, nil)
		return
	}

	outcome, err := h.generationService.Generate(c.Request.Context(), req.Ingredients)
	if err != nil {
		respondError(c, h.log, err, nil)
		return
	}

	if outcome.Declined() {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "Failed to generate a recipe - invalid ingredients",
			"reason":  outcome.Reason,
		})
		return
	}
	respondOK(c, http.StatusOK, "Recipe generated successfully", gin.H{"recipe": outcome.Recipe})
}

func (h *RecipeHandler) listCollection(collection models.Collection) gin.HandlerFunc {
	l := collectionListings[collection]
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			respondError(c, h.log, service.ErrUserNotFound, nil)
			return
		}

		result, err := h.collectionService.ListCollection(c.Request.Context(), user.ID, collection, listQueryFrom(c))
		if err != nil {
			respondError(c, h.log, err, nil)
			return
		}
		respondList(c, l, result)
	}
}

type transitionFunc func(ctx context.Context, userID, recipeID uuid.UUID) error

// transition adapts a per-recipe lifecycle operation to a handler. A
// malformed id cannot name a recipe, so it is reported as not found.
func (h *RecipeHandler) transition(op transitionFunc, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			respondError(c, h.log, service.ErrUserNotFound, nil)
			return
		}

		recipeID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			respondError(c, h.log, service.ErrRecipeNotFound, nil)
			return
		}

		if err := op(c.Request.Context(), user.ID, recipeID); err != nil {
			respondError(c, h.log, err, nil)
			return
		}
		respondOK(c, http.StatusOK, message, nil)
	}
}

func (h *RecipeHandler) EmptyTrash(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, h.log, service.ErrUserNotFound, nil)
		return
	}

	if err := h.collectionService.EmptyTrash(c.Request.Context(), user.ID); err != nil {
		respondError(c, h.log, err, nil)
		return
	}
	respondOK(c, http.StatusOK, "Recipe deleted successfully", nil)
}

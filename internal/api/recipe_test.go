package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/pikasmart/backend/internal/models"
	"github.com/pageza/pikasmart/backend/internal/testhelpers"
	"github.com/pageza/pikasmart/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const generatedRecipe = "Here you go:\n```json\n" +
	`{"title":"Garlic Rice","description":"Fragrant rice.","ingredients":[{"name":"rice","quantity":2,"unit":"cups"},{"name":"garlic","quantity":"3","unit":"cloves"}],"instructions":["Fry garlic.","Add rice and water."],"prep_time":5,"cook_time":20,"servings":2}` +
	"\n```"

func recipeTitles(t *testing.T, body map[string]interface{}, key string) []string {
	t.Helper()
	items, ok := body[key].([]interface{})
	require.True(t, ok, "missing %q in %v", key, body)
	titles := make([]string, 0, len(items))
	for _, item := range items {
		titles = append(titles, item.(map[string]interface{})["title"].(string))
	}
	return titles
}

func TestListRecipes(t *testing.T) {
	s := newTestServer(t)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, title := range []string{"Banana Bread", "Apple Pie", "Carrot Cake"} {
		testhelpers.NewRecipeBuilder().WithTitle(title).WithCreatedAt(base.Add(time.Duration(i) * time.Hour)).Create(t, s.db)
	}

	t.Run("should page through every recipe", func(t *testing.T) {
		w, body := s.do(t, http.MethodGet, "/api/v1/recipe/all?sortby=title&page=2&limit=2", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "All recipes fetched successfully", body["message"])
		assert.Equal(t, []string{"Carrot Cake"}, recipeTitles(t, body, "recipes"))
		assert.Equal(t, float64(3), body["totalRecipes"])
		assert.Equal(t, float64(2), body["totalPages"])
		assert.Equal(t, float64(2), body["currentPage"])
	})

	t.Run("should sort newest first", func(t *testing.T) {
		_, body := s.do(t, http.MethodGet, "/api/v1/recipe/all?sortby=newest", nil, nil)
		assert.Equal(t, []string{"Carrot Cake", "Apple Pie", "Banana Bread"}, recipeTitles(t, body, "recipes"))
	})

	t.Run("should filter by title without regard to case", func(t *testing.T) {
		_, body := s.do(t, http.MethodGet, "/api/v1/recipe/all?title=CAKE", nil, nil)
		assert.Equal(t, []string{"Carrot Cake"}, recipeTitles(t, body, "recipes"))
		assert.Equal(t, float64(1), body["totalPages"])
	})

	t.Run("should clamp bad paging input", func(t *testing.T) {
		w, body := s.do(t, http.MethodGet, "/api/v1/recipe/all?page=-4&limit=abc", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(1), body["currentPage"])
		assert.Len(t, body["recipes"], 3)
	})

	t.Run("should return an empty page with one total page", func(t *testing.T) {
		_, body := s.do(t, http.MethodGet, "/api/v1/recipe/all?title=zzz", nil, nil)
		assert.Equal(t, []interface{}{}, body["recipes"])
		assert.Equal(t, float64(0), body["totalRecipes"])
		assert.Equal(t, float64(1), body["totalPages"])
	})
}

func TestGetRecipeInfo(t *testing.T) {
	s := newTestServer(t)
	recipe := testhelpers.NewRecipeBuilder().WithTitle("Pho").Create(t, s.db)

	w, body := s.do(t, http.MethodGet, "/api/v1/recipe/recipe-info/"+recipe.ID.String(), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Recipe info fetched successfully", body["message"])
	assert.Equal(t, "Pho", body["recipe"].(map[string]interface{})["title"])

	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		w, body = s.do(t, http.MethodGet, "/api/v1/recipe/recipe-info/"+id, nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Recipe not found", body["message"])
	}
}

func TestSimilarRecipes(t *testing.T) {
	s := newTestServer(t)
	target := testhelpers.NewRecipeBuilder().WithTitle("Tomato Soup").WithDescription("").WithIngredients("tomato", "basil").Create(t, s.db)
	testhelpers.NewRecipeBuilder().WithTitle("Tomato Basil Soup").WithDescription("").WithIngredients("tomato", "basil").Create(t, s.db)
	testhelpers.NewRecipeBuilder().WithTitle("Chocolate Mousse").WithDescription("").WithIngredients("chocolate", "cream").Create(t, s.db)

	w, body := s.do(t, http.MethodGet, "/api/v1/recipe/similar/"+target.ID.String()+"?limit=1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Tomato Basil Soup"}, recipeTitles(t, body, "recipes"))

	w, _ = s.do(t, http.MethodGet, "/api/v1/recipe/similar/"+uuid.NewString(), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateRecipe(t *testing.T) {
	ingredients := types.GenerateRecipeRequest{Ingredients: []types.IngredientInput{
		{Name: "rice", Quantity: "2", Unit: "cups"},
		{Name: "garlic"},
	}}

	t.Run("should store and return the generated recipe", func(t *testing.T) {
		s := newTestServer(t)
		s.generator.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
			return assert.Contains(t, prompt, "- 2 cups of rice") && assert.Contains(t, prompt, "- garlic")
		})).Return(generatedRecipe, nil).Once()

		w, body := s.do(t, http.MethodPost, "/api/v1/recipe/generate", ingredients, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Recipe generated successfully", body["message"])
		recipe := body["recipe"].(map[string]interface{})
		assert.Equal(t, "Garlic Rice", recipe["title"])
		assert.Equal(t, true, recipe["generated_by_AI"])

		var stored models.Recipe
		require.NoError(t, s.db.First(&stored, "id = ?", recipe["id"]).Error)
		assert.Equal(t, "2", stored.Ingredients[0].Quantity)
		s.generator.AssertExpectations(t)
	})

	t.Run("should pass on a declination without storing anything", func(t *testing.T) {
		s := newTestServer(t)
		s.generator.On("Generate", mock.Anything, mock.Anything).
			Return(`{"reason": "Gravel is not food."}`, nil).Once()

		w, body := s.do(t, http.MethodPost, "/api/v1/recipe/generate", ingredients, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Failed to generate a recipe - invalid ingredients", body["message"])
		assert.Equal(t, "Gravel is not food.", body["reason"])

		var count int64
		s.db.Model(&models.Recipe{}).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("should require ingredients", func(t *testing.T) {
		s := newTestServer(t)
		for _, req := range []interface{}{types.GenerateRecipeRequest{}, map[string]interface{}{"ingredients": []interface{}{}}} {
			w, body := s.do(t, http.MethodPost, "/api/v1/recipe/generate", req, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Ingredients are required to generate a recipe", body["message"])
		}
		s.generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("should hide generator failures", func(t *testing.T) {
		s := newTestServer(t)
		s.generator.On("Generate", mock.Anything, mock.Anything).
			Return("", errors.New("upstream said 503 with api key sk-123")).Once()

		w, body := s.do(t, http.MethodPost, "/api/v1/recipe/generate", ingredients, nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to generate recipe", body["message"])
		assert.NotContains(t, w.Body.String(), "sk-123")
	})

	t.Run("should reject responses that are not a recipe", func(t *testing.T) {
		s := newTestServer(t)
		s.generator.On("Generate", mock.Anything, mock.Anything).Return("I cannot help with that.", nil).Once()

		w, body := s.do(t, http.MethodPost, "/api/v1/recipe/generate", ingredients, nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to parse generated recipe", body["message"])
	})
}

func TestRecipeLifecycle(t *testing.T) {
	s := newTestServer(t)
	user := testhelpers.CreateUser(t, s.db)
	session := s.sessionFor(t, user)
	recipe := testhelpers.NewRecipeBuilder().WithTitle("Lentil Stew").Create(t, s.db)
	id := recipe.ID.String()

	patch := func(action string) (int, string) {
		w, body := s.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/recipe/%s/%s", action, id), nil, session)
		return w.Code, body["message"].(string)
	}
	list := func(path, key string) []string {
		w, body := s.do(t, http.MethodGet, "/api/v1/recipe/"+path, nil, session)
		require.Equal(t, http.StatusOK, w.Code)
		return recipeTitles(t, body, key)
	}

	code, msg := patch("save")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Recipe saved successfully", msg)
	code, _ = patch("save")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"Lentil Stew"}, list("my-recipes", "saved_recipes"))

	code, msg = patch("favourite")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Recipe favourited successfully", msg)
	assert.Equal(t, []string{"Lentil Stew"}, list("favourite-recipes", "favourite_recipes"))

	code, msg = patch("unfavourite")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Recipe removed from favourites successfully", msg)
	code, msg = patch("unfavourite")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Recipe not found in favourites", msg)

	_, _ = patch("favourite")
	code, msg = patch("move-to-trash")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Recipe moved to trash successfully", msg)
	assert.Empty(t, list("my-recipes", "saved_recipes"))
	assert.Empty(t, list("favourite-recipes", "favourite_recipes"))
	assert.Equal(t, []string{"Lentil Stew"}, list("trashed-recipes", "trashed_recipes"))

	code, msg = patch("restore")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Recipe restored successfully", msg)
	assert.Equal(t, []string{"Lentil Stew"}, list("my-recipes", "saved_recipes"))
	code, msg = patch("restore")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Recipe not found in trash", msg)

	_, _ = patch("move-to-trash")
	w, body := s.do(t, http.MethodDelete, "/api/v1/recipe/delete", nil, session)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Recipe deleted successfully", body["message"])
	assert.Empty(t, list("trashed-recipes", "trashed_recipes"))

	w, _ = s.do(t, http.MethodDelete, "/api/v1/recipe/delete", nil, session)
	assert.Equal(t, http.StatusOK, w.Code)

	var remaining int64
	s.db.Model(&models.Recipe{}).Where("id = ?", recipe.ID).Count(&remaining)
	assert.Equal(t, int64(1), remaining, "emptying the trash never deletes the recipe itself")
}

func TestRecipeLifecycleFailures(t *testing.T) {
	s := newTestServer(t)
	user := testhelpers.CreateUser(t, s.db)
	recipe := testhelpers.NewRecipeBuilder().Create(t, s.db)

	t.Run("should require a session", func(t *testing.T) {
		for _, path := range []string{"/api/v1/recipe/save/" + recipe.ID.String(), "/api/v1/recipe/restore/" + recipe.ID.String()} {
			w, body := s.do(t, http.MethodPatch, path, nil, nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Authentication token missing", body["message"])
		}
		w, _ := s.do(t, http.MethodGet, "/api/v1/recipe/my-recipes", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("should report unknown recipes", func(t *testing.T) {
		for _, id := range []string{uuid.NewString(), "nope"} {
			w, body := s.do(t, http.MethodPatch, "/api/v1/recipe/save/"+id, nil, s.sessionFor(t, user))
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, "Recipe not found", body["message"])
		}
	})

	t.Run("should report a deleted account", func(t *testing.T) {
		ghost := testhelpers.NewUser()
		ghost.Email = "ghost@example.com"
		w, body := s.do(t, http.MethodPatch, "/api/v1/recipe/save/"+recipe.ID.String(), nil, s.sessionFor(t, ghost))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "User not found", body["message"])
	})
}

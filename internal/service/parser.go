package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pageza/pikasmart/backend/internal/models"
	"github.com/pageza/pikasmart/backend/internal/types"
)

// GenerationOutcome is what the generator produced: either a recipe or the
// reason it declined to make one.
type GenerationOutcome struct {
	Recipe *models.Recipe
	Reason string
}

// Declined reports whether the generator refused to produce a recipe.
func (o *GenerationOutcome) Declined() bool {
	return o.Recipe == nil
}

type generatedIngredient struct {
	Name     string           `json:"name"`
	Quantity types.FlexString `json:"quantity"`
	Unit     string           `json:"unit"`
}

type generatedRecipe struct {
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Ingredients  []generatedIngredient `json:"ingredients"`
	Instructions []string              `json:"instructions"`
	PrepTime     *types.FlexInt        `json:"prep_time"`
	CookTime     *types.FlexInt        `json:"cook_time"`
	Servings     *types.FlexInt        `json:"servings"`
}

// extractJSONObject returns the text from the first '{' to the last '}'.
// This assumes the response holds exactly one top-level object; prose or
// code fences around it are dropped, but two sibling objects would be
// captured together and fail to decode.
func extractJSONObject(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < 0 || end < start {
		return "", ErrNoJSONObject
	}
	return raw[start : end+1], nil
}

// ParseRecipeResponse turns raw generator text into a GenerationOutcome.
// Objects carrying a non-empty "reason" are declinations. Anything else must be a
// complete recipe; incomplete ones are rejected, never patched up.
func ParseRecipeResponse(raw string) (*GenerationOutcome, error) {
	body, err := extractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecipe, err)
	}

	if reason := declineReason(fields["reason"]); reason != "" {
		return &GenerationOutcome{Reason: reason}, nil
	}

	var gen generatedRecipe
	if err := json.Unmarshal([]byte(body), &gen); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncompleteRecipe, err)
	}

	recipe, err := gen.toRecipe()
	if err != nil {
		return nil, err
	}
	return &GenerationOutcome{Recipe: recipe}, nil
}

// declineReason returns the trimmed reason, or "" when the key is absent,
// null, false, zero or blank. Non-string values are kept as their JSON text.
func declineReason(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var reason string
	if err := json.Unmarshal(raw, &reason); err == nil {
		return strings.TrimSpace(reason)
	}
	switch text := strings.TrimSpace(string(raw)); text {
	case "null", "false", "0":
		return ""
	default:
		return text
	}
}

func incomplete(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrIncompleteRecipe, fmt.Sprintf(format, args...))
}

func (g *generatedRecipe) toRecipe() (*models.Recipe, error) {
	title := strings.TrimSpace(g.Title)
	if title == "" {
		return nil, incomplete("missing title")
	}
	if len(g.Ingredients) == 0 {
		return nil, incomplete("no ingredients")
	}

	ingredients := make(models.IngredientList, 0, len(g.Ingredients))
	for i, ing := range g.Ingredients {
		name := strings.TrimSpace(ing.Name)
		if name == "" {
			return nil, incomplete("ingredient %d has no name", i)
		}
		ingredients = append(ingredients, models.Ingredient{
			Name:     name,
			Quantity: string(ing.Quantity),
			Unit:     strings.TrimSpace(ing.Unit),
		})
	}

	instructions := make(models.JSONBStringArray, 0, len(g.Instructions))
	for _, step := range g.Instructions {
		if s := strings.TrimSpace(step); s != "" {
			instructions = append(instructions, s)
		}
	}
	if len(instructions) == 0 {
		return nil, incomplete("no instructions")
	}

	if g.PrepTime == nil || *g.PrepTime < 0 {
		return nil, incomplete("prep_time must be a non-negative number")
	}
	if g.CookTime == nil || *g.CookTime < 0 {
		return nil, incomplete("cook_time must be a non-negative number")
	}
	if g.Servings == nil || *g.Servings < 1 {
		return nil, incomplete("servings must be at least 1")
	}

	return &models.Recipe{
		Title:         title,
		Description:   strings.TrimSpace(g.Description),
		Ingredients:   ingredients,
		Instructions:  instructions,
		PrepTime:      int(*g.PrepTime),
		CookTime:      int(*g.CookTime),
		Servings:      int(*g.Servings),
		GeneratedByAI: true,
	}, nil
}

package service

import (
	"strings"

	"github.com/pageza/pikasmart/backend/internal/types"
)

// SystemInstruction is sent alongside every recipe prompt.
const SystemInstruction = "You are a helpful assistant that generates detailed recipes based on provided ingredients. " +
	"Only use the provided ingredients. Estimate the quantity needed for each ingredient."

const recipeJSONFormat = `{
  "title": "",
  "description": "",
  "ingredients": [
    { "name": "", "quantity": number, "unit": "" }
  ],
  "instructions": [],
  "prep_time": 0,
  "cook_time": 0,
  "servings": 1
}`

const declineJSONFormat = `{ "reason": "<why no recipe can be made>" }`

// ingredientLine renders "- <quantity> <unit> of <name>", or "- <name>"
// when neither quantity nor unit is known.
func ingredientLine(ing types.IngredientInput) string {
	name := strings.TrimSpace(ing.Name)
	amount := strings.TrimSpace(strings.TrimSpace(string(ing.Quantity)) + " " + strings.TrimSpace(ing.Unit))
	if amount == "" {
		return "- " + name
	}
	return "- " + amount + " of " + name
}

// BuildRecipePrompt renders the generation prompt for ingredients. It never
// fails; an empty list yields an empty ingredient section.
func BuildRecipePrompt(ingredients []types.IngredientInput) string {
	lines := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		lines = append(lines, ingredientLine(ing))
	}

	var b strings.Builder
	b.WriteString("You are a professional home chef.\n\n")
	b.WriteString("Create a SIMPLE recipe using ONLY the ingredients listed below. ")
	b.WriteString("You may also assume basic kitchen staples: salt, water and cooking oil.\n\n")
	b.WriteString("Ingredients available:\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\nRules:\n")
	b.WriteString("- Use simple cooking steps\n")
	b.WriteString("- No ingredients beyond the list and the staples above\n")
	b.WriteString("- Never omit a field; title, ingredients and instructions must not be empty\n")
	b.WriteString("- prep_time and cook_time are minutes and may be 0; servings is at least 1\n")
	b.WriteString("- Output STRICT JSON ONLY (no markdown, no explanations)\n\n")
	b.WriteString("JSON format:\n")
	b.WriteString(recipeJSONFormat)
	b.WriteString("\n\nIf no sensible recipe can be made from these ingredients, output only:\n")
	b.WriteString(declineJSONFormat)
	b.WriteString("\n")
	return b.String()
}

package testhelpers

import (
	"strconv"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/pageza/pikasmart/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the plaintext password of users made by CreateUser.
const DefaultPassword = "password123"

var faker = gofakeit.New(time.Now().UnixNano())

// NewUser returns an unsaved user with a unique email and DefaultPassword.
func NewUser() *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return &models.User{
		Email:        faker.UUID() + "@" + faker.DomainName(),
		PasswordHash: string(hash),
	}
}

// CreateUser stores a NewUser.
func CreateUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := NewUser()
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// RecipeBuilder provides a fluent interface for building test recipes
type RecipeBuilder struct {
	recipe models.Recipe
}

// NewRecipeBuilder creates a new recipe builder with random, valid values
func NewRecipeBuilder() *RecipeBuilder {
	ingredients := make(models.IngredientList, 0, 3)
	for i := 0; i < 3; i++ {
		ingredients = append(ingredients, models.Ingredient{
			Name:     faker.Vegetable(),
			Quantity: strconv.Itoa(faker.Number(1, 5)),
			Unit:     faker.RandomString([]string{"cups", "g", "tbsp", "pieces"}),
		})
	}
	return &RecipeBuilder{recipe: models.Recipe{
		Title:         faker.Sentence(3),
		Description:   faker.Sentence(10),
		Ingredients:   ingredients,
		Instructions:  models.JSONBStringArray{faker.Sentence(6), faker.Sentence(6)},
		PrepTime:      faker.Number(0, 30),
		CookTime:      faker.Number(0, 90),
		Servings:      faker.Number(1, 6),
		GeneratedByAI: true,
	}}
}

func (b *RecipeBuilder) WithTitle(title string) *RecipeBuilder {
	b.recipe.Title = title
	return b
}

func (b *RecipeBuilder) WithDescription(description string) *RecipeBuilder {
	b.recipe.Description = description
	return b
}

func (b *RecipeBuilder) WithIngredients(names ...string) *RecipeBuilder {
	b.recipe.Ingredients = make(models.IngredientList, 0, len(names))
	for _, n := range names {
		b.recipe.Ingredients = append(b.recipe.Ingredients, models.Ingredient{Name: n, Quantity: "1", Unit: "cup"})
	}
	return b
}

func (b *RecipeBuilder) WithCreatedAt(at time.Time) *RecipeBuilder {
	b.recipe.CreatedAt = at
	return b
}

func (b *RecipeBuilder) Build() *models.Recipe {
	r := b.recipe
	return &r
}

// Create stores the recipe directly, bypassing the service layer.
func (b *RecipeBuilder) Create(t *testing.T, db *gorm.DB) *models.Recipe {
	t.Helper()
	r := b.Build()
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("failed to create recipe: %v", err)
	}
	return r
}

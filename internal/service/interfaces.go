package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/pikasmart/backend/internal/models"
	"github.com/pageza/pikasmart/backend/internal/types"
	pgvector "github.com/pgvector/pgvector-go"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	SignUp(ctx context.Context, email, password string) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*models.User, error)
	IssueSession(user *models.User) (string, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	GetRecipeByRawID(ctx context.Context, id string) (*models.Recipe, error)
	ListRecipes(ctx context.Context, q types.ListQuery) (*ListResult, error)
	SimilarRecipes(ctx context.Context, id uuid.UUID, limit int) ([]models.Recipe, error)
}

// ICollectionService defines the interface for a user's recipe collections
type ICollectionService interface {
	Save(ctx context.Context, userID, recipeID uuid.UUID) error
	Favourite(ctx context.Context, userID, recipeID uuid.UUID) error
	Unfavourite(ctx context.Context, userID, recipeID uuid.UUID) error
	MoveToTrash(ctx context.Context, userID, recipeID uuid.UUID) error
	Restore(ctx context.Context, userID, recipeID uuid.UUID) error
	EmptyTrash(ctx context.Context, userID uuid.UUID) error
	ListCollection(ctx context.Context, userID uuid.UUID, collection models.Collection, q types.ListQuery) (*ListResult, error)
}

// IGenerationService defines the interface for AI recipe generation
type IGenerationService interface {
	Generate(ctx context.Context, ingredients []types.IngredientInput) (*GenerationOutcome, error)
}

// IEmailService defines the interface for outgoing mail
type IEmailService interface {
	SendPasswordResetEmail(email, link string) error
}

// EmbeddingServiceInterface defines the interface for similarity vectors
type EmbeddingServiceInterface interface {
	GenerateEmbedding(text string) (pgvector.Vector, error)
	RecipeEmbedding(recipe *models.Recipe) (pgvector.Vector, error)
}

var (
	_ IAuthService              = (*AuthService)(nil)
	_ IRecipeService            = (*RecipeService)(nil)
	_ ICollectionService        = (*CollectionService)(nil)
	_ IGenerationService        = (*GenerationService)(nil)
	_ IEmailService             = (*EmailService)(nil)
	_ EmbeddingServiceInterface = (*EmbeddingService)(nil)
	_ Generator                 = (*GeminiClient)(nil)
	_ Generator                 = (*ChatCompletionClient)(nil)
	_ Generator                 = (*ResilientGenerator)(nil)
	_ TranscriptStore           = (*S3TranscriptStore)(nil)
	_ TranscriptStore           = NopTranscriptStore{}
)

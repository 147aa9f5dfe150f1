package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/pikasmart/backend/internal/types"
	"go.uber.org/zap"
)

// GenerationService runs the prompt, generate, parse and store pipeline.
type GenerationService struct {
	generator   Generator
	recipes     IRecipeService
	transcripts TranscriptStore
	metrics     *GenerationMetrics
	log         *zap.Logger
	now         func() time.Time
}

func NewGenerationService(generator Generator, recipes IRecipeService, transcripts TranscriptStore, metrics *GenerationMetrics, log *zap.Logger) *GenerationService {
	if transcripts == nil {
		transcripts = NopTranscriptStore{}
	}
	return &GenerationService{
		generator:   generator,
		recipes:     recipes,
		transcripts: transcripts,
		metrics:     metrics,
		log:         log,
		now:         time.Now,
	}
}

func hasIngredients(ingredients []types.IngredientInput) bool {
	for _, ing := range ingredients {
		if strings.TrimSpace(ing.Name) != "" {
			return true
		}
	}
	return false
}

// Generate asks the generator for a recipe made from ingredients. A created
// recipe is persisted before it is returned; a declination is returned with
// its reason and nothing is stored.
func (s *GenerationService) Generate(ctx context.Context, ingredients []types.IngredientInput) (*GenerationOutcome, error) {
	if !hasIngredients(ingredients) {
		return nil, ErrNoIngredients
	}

	prompt := BuildRecipePrompt(ingredients)
	transcript := &Transcript{
		ID:        uuid.New(),
		Prompt:    prompt,
		CreatedAt: s.now(),
	}
	started := time.Now()

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.finish(ctx, transcript, OutcomeGeneratorError, started, err)
		if errors.Is(err, ErrGenerationFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	transcript.RawResponse = raw

	outcome, err := ParseRecipeResponse(raw)
	if err != nil {
		label := OutcomeParseError
		if errors.Is(err, ErrIncompleteRecipe) {
			label = OutcomeInvalid
		}
		s.finish(ctx, transcript, label, started, err)
		return nil, err
	}

	if outcome.Declined() {
		s.finish(ctx, transcript, OutcomeDeclined, started, nil)
		return outcome, nil
	}

	recipe, err := s.recipes.CreateRecipe(ctx, outcome.Recipe)
	if err != nil {
		s.finish(ctx, transcript, OutcomeStoreError, started, err)
		return nil, fmt.Errorf("failed to store generated recipe: %w", err)
	}
	outcome.Recipe = recipe
	transcript.RecipeID = recipe.ID.String()
	s.finish(ctx, transcript, OutcomeCreated, started, nil)
	return outcome, nil
}

func (s *GenerationService) finish(ctx context.Context, t *Transcript, outcome string, started time.Time, cause error) {
	t.Outcome = outcome
	if cause != nil {
		t.Error = cause.Error()
	}
	s.metrics.observe(outcome, time.Since(started).Seconds())

	fields := []zap.Field{
		zap.String("transcript_id", t.ID.String()),
		zap.String("outcome", outcome),
	}
	if cause != nil {
		s.log.Warn("recipe generation failed", append(fields, zap.Error(cause))...)
	} else {
		s.log.Info("recipe generation finished", fields...)
	}

	if err := s.transcripts.Put(ctx, t); err != nil {
		s.log.Error("failed to store generation transcript", zap.String("transcript_id", t.ID.String()), zap.Error(err))
	}
}

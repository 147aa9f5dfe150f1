package main

import (
	"context"
	"errors"
	"log"

	"github.com/pageza/pikasmart/backend/config"
	"github.com/pageza/pikasmart/backend/internal/app"
	"github.com/pageza/pikasmart/backend/internal/logger"
	"github.com/pageza/pikasmart/backend/internal/models"
	"github.com/pageza/pikasmart/backend/internal/service"
	"github.com/pageza/pikasmart/backend/internal/types"
	"go.uber.org/zap"
)

const testPassword = "testpassword123"

var testEmails = []string{
	"john.doe@example.com",
	"jane.smith@example.com",
	"bob.wilson@example.com",
	"alice.cooper@example.com",
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	zlog := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console", Development: true})
	defer func() { _ = zlog.Sync() }()

	ctx := context.Background()
	application, err := app.New(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to initialise application", zap.Error(err))
	}
	defer application.Close()

	// Give each user a few existing recipes so the collection pages have content.
	page, err := application.Recipes.ListRecipes(ctx, types.ListQuery{Page: 1, Limit: 3})
	if err != nil {
		zlog.Fatal("failed to list recipes", zap.Error(err))
	}

	for _, email := range testEmails {
		user, err := application.Auth.SignUp(ctx, email, testPassword)
		switch {
		case errors.Is(err, service.ErrUserExists):
			zlog.Info("user already exists, skipping", zap.String("email", email))
			continue
		case err != nil:
			zlog.Error("failed to create user", zap.String("email", email), zap.Error(err))
			continue
		}

		seedCollections(ctx, application, user, page.Recipes, zlog)
		zlog.Info("created test user", zap.String("email", email))
	}

	zlog.Info("test users ready", zap.String("password", testPassword))
}

// seedCollections saves every recipe, favourites the first and trashes the last.
func seedCollections(ctx context.Context, a *app.App, user *models.User, recipes []models.Recipe, zlog *zap.Logger) {
	for i, r := range recipes {
		var err error
		switch {
		case i == len(recipes)-1 && i > 0:
			err = a.Collections.MoveToTrash(ctx, user.ID, r.ID)
		case i == 0:
			if err = a.Collections.Save(ctx, user.ID, r.ID); err == nil {
				err = a.Collections.Favourite(ctx, user.ID, r.ID)
			}
		default:
			err = a.Collections.Save(ctx, user.ID, r.ID)
		}
		if err != nil {
			zlog.Warn("failed to seed collection", zap.String("recipe_id", r.ID.String()), zap.Error(err))
		}
	}
}

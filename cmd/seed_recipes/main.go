package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/pageza/pikasmart/backend/config"
	"github.com/pageza/pikasmart/backend/internal/app"
	"github.com/pageza/pikasmart/backend/internal/logger"
	"github.com/pageza/pikasmart/backend/internal/types"
	"go.uber.org/zap"
)

const batchSize = 5 // Number of recipes to generate in each batch

// pantries are ingredient sets fed through the real generation pipeline.
var pantries = [][]types.IngredientInput{
	{{Name: "spaghetti", Quantity: "200", Unit: "g"}, {Name: "garlic", Quantity: "3", Unit: "cloves"}, {Name: "olive oil", Quantity: "3", Unit: "tbsp"}},
	{{Name: "chickpeas", Quantity: "1", Unit: "can"}, {Name: "spinach", Quantity: "2", Unit: "cups"}, {Name: "coconut milk", Quantity: "1", Unit: "can"}},
	{{Name: "eggs", Quantity: "4", Unit: "pieces"}, {Name: "tomato", Quantity: "2", Unit: "pieces"}, {Name: "onion", Quantity: "1", Unit: "piece"}},
	{{Name: "rice", Quantity: "2", Unit: "cups"}, {Name: "beans", Quantity: "1", Unit: "cup"}, {Name: "bell pepper", Quantity: "1", Unit: "piece"}},
	{{Name: "chicken thighs", Quantity: "500", Unit: "g"}, {Name: "lemon", Quantity: "1", Unit: "piece"}, {Name: "thyme"}},
	{{Name: "oats", Quantity: "1", Unit: "cup"}, {Name: "banana", Quantity: "2", Unit: "pieces"}, {Name: "milk", Quantity: "1", Unit: "cup"}},
	{{Name: "potatoes", Quantity: "4", Unit: "pieces"}, {Name: "leeks", Quantity: "2", Unit: "pieces"}, {Name: "butter", Quantity: "2", Unit: "tbsp"}},
	{{Name: "salmon fillet", Quantity: "2", Unit: "pieces"}, {Name: "soy sauce", Quantity: "2", Unit: "tbsp"}, {Name: "ginger"}},
	{{Name: "tofu", Quantity: "400", Unit: "g"}, {Name: "broccoli", Quantity: "1", Unit: "head"}, {Name: "sesame oil", Quantity: "1", Unit: "tbsp"}},
	{{Name: "flour", Quantity: "2", Unit: "cups"}, {Name: "sugar", Quantity: "1", Unit: "cup"}, {Name: "apples", Quantity: "3", Unit: "pieces"}},
}

func main() {
	count := flag.Int("n", len(pantries), "number of recipes to generate")
	flag.Parse()

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

	created := 0
	for i := 0; i < *count; i += batchSize {
		batchEnd := i + batchSize
		if batchEnd > *count {
			batchEnd = *count
		}
		zlog.Info("generating batch", zap.Int("from", i+1), zap.Int("to", batchEnd))

		for j := i; j < batchEnd; j++ {
			outcome, err := application.Generation.Generate(ctx, pantries[j%len(pantries)])
			if err != nil {
				zlog.Warn("failed to generate recipe", zap.Int("index", j), zap.Error(err))
				continue
			}
			if outcome.Declined() {
				zlog.Warn("generator declined", zap.Int("index", j), zap.String("reason", outcome.Reason))
				continue
			}
			created++
			zlog.Info("created recipe", zap.String("title", outcome.Recipe.Title), zap.String("id", outcome.Recipe.ID.String()))
		}

		// Add a small delay between batches to avoid rate limiting
		if batchEnd < *count {
			time.Sleep(2 * time.Second)
		}
	}

	zlog.Info("seeding finished", zap.Int("created", created), zap.Int("requested", *count))
}

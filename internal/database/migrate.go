package database

import (
	"fmt"

	"github.com/pageza/pikasmart/backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RunMigrations brings the schema up to date. The embedding table needs
// the pgvector extension and is only created on PostgreSQL.
func RunMigrations(db *gorm.DB, log *zap.Logger) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.RecipeMembership{},
	); err != nil {
		return fmt.Errorf("failed to migrate core tables: %w", err)
	}

	if !IsPostgres(db) {
		log.Info("skipping embedding table", zap.String("dialect", db.Dialector.Name()))
		return nil
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("failed to install pgvector extension: %w", err)
	}
	if err := db.AutoMigrate(&models.RecipeEmbedding{}); err != nil {
		return fmt.Errorf("failed to migrate embeddings: %w", err)
	}

	log.Info("migrations applied")
	return nil
}

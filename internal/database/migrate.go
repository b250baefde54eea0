package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantrymatch/backend/internal/model"
)

// Migrate creates or updates every table. On Postgres it first enables the
// pgvector extension and afterwards indexes the embedding column.
func Migrate(db *gorm.DB, log *zap.Logger) error {
	postgres := db.Dialector.Name() == "postgres"

	if postgres {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			return fmt.Errorf("failed to enable pgvector: %w", err)
		}
	}

	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}

	if postgres {
		if err := db.Exec(
			"CREATE INDEX IF NOT EXISTS idx_recipes_embedding ON recipes USING hnsw (embedding vector_l2_ops)",
		).Error; err != nil {
			return fmt.Errorf("failed to index embeddings: %w", err)
		}
	}

	log.Info("migrations applied", zap.String("dialect", db.Dialector.Name()))
	return nil
}

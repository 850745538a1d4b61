package database

import (
	"fmt"

	"github.com/pageza/flockfeed/backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RunMigrations creates or updates every flock table.
func RunMigrations(db *gorm.DB, logger *zap.Logger) error {
	if logger != nil {
		logger.Info("running auto-migration", zap.String("dialect", db.Dialector.Name()))
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

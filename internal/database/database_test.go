package database_test

import (
	"context"
	"testing"

	"github.com/pageza/flockfeed/backend/config"
	"github.com/pageza/flockfeed/backend/internal/database"
	"github.com/pageza/flockfeed/backend/internal/models"
	"github.com/pageza/flockfeed/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := database.Open(config.DatabaseConfig{Driver: "mysql"}, nil)
	assert.Error(t, err)
}

func TestMigrationsCreateSchema(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)

	for _, m := range models.All() {
		assert.True(t, db.Migrator().HasTable(m), "missing table for %T", m)
	}
	require.NoError(t, database.HealthCheck(context.Background(), db))

	// running twice is harmless
	require.NoError(t, database.RunMigrations(db, nil))
}

func TestSeedReferenceDataIsIdempotent(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)

	require.NoError(t, database.SeedReferenceData(db, nil))
	require.NoError(t, database.SeedReferenceData(db, nil))

	var stages []models.GrowthStage
	require.NoError(t, db.Order("min_age_days").Find(&stages).Error)
	require.Len(t, stages, 3)
	assert.Equal(t, "Chick", stages[0].Name)
	assert.Equal(t, "Layer", stages[2].Name)

	var templates int64
	require.NoError(t, db.Model(&models.FeedingScheduleTemplate{}).Where("is_active = ?", true).Count(&templates).Error)
	assert.Equal(t, int64(3), templates)

	var foods int64
	require.NoError(t, db.Model(&models.FoodType{}).Count(&foods).Error)
	assert.Equal(t, int64(4), foods)
}

func TestPostgresMigrations(t *testing.T) {
	db := testhelpers.SetupPostgresDatabase(t)

	require.NoError(t, database.SeedReferenceData(db, nil))
	var count int64
	require.NoError(t, db.Model(&models.GrowthStage{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

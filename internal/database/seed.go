package database

import (
	"errors"
	"fmt"

	"github.com/pageza/flockfeed/backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type stageSeed struct {
	stage       models.GrowthStage
	requirement models.StageNutritionRequirement
	template    models.FeedingScheduleTemplate
}

var defaultStages = []stageSeed{
	{
		stage: models.GrowthStage{Name: "Chick", Description: "Brooding period, starter feed", MinAgeDays: 0, MaxAgeDays: 42},
		requirement: models.StageNutritionRequirement{
			ProteinPercent: 20, FatPercent: 4, FiberPercent: 4,
			CalciumPercent: 1, PhosphorusPercent: 0.45, EnergyKcalPerKg: 2900,
		},
		template: models.FeedingScheduleTemplate{FeedPercentage: 10, FeedingFrequency: 4},
	},
	{
		stage: models.GrowthStage{Name: "Grower", Description: "Pullet growth, grower feed", MinAgeDays: 43, MaxAgeDays: 126},
		requirement: models.StageNutritionRequirement{
			ProteinPercent: 16, FatPercent: 3.5, FiberPercent: 5,
			CalciumPercent: 1, PhosphorusPercent: 0.4, EnergyKcalPerKg: 2800,
		},
		template: models.FeedingScheduleTemplate{FeedPercentage: 7, FeedingFrequency: 3},
	},
	{
		stage: models.GrowthStage{Name: "Layer", Description: "Laying hens, layer feed", MinAgeDays: 127, MaxAgeDays: 730},
		requirement: models.StageNutritionRequirement{
			ProteinPercent: 16, FatPercent: 3, FiberPercent: 6,
			CalciumPercent: 4, PhosphorusPercent: 0.35, EnergyKcalPerKg: 2750,
		},
		template: models.FeedingScheduleTemplate{FeedPercentage: 6, FeedingFrequency: 2},
	},
}

var defaultFoodTypes = []models.FoodType{
	{Name: "Corn", Category: "grain", CostPerKg: 0.35, Unit: "kg"},
	{Name: "Soybean meal", Category: "protein", CostPerKg: 0.55, Unit: "kg"},
	{Name: "Wheat bran", Category: "fiber", CostPerKg: 0.25, Unit: "kg"},
	{Name: "Oyster shell", Category: "mineral", CostPerKg: 0.30, Unit: "kg"},
}

// SeedReferenceData inserts the default growth stages, their nutrition
// requirements and feeding templates, and a few common food types. Rows
// that already exist by name are left untouched.
func SeedReferenceData(db *gorm.DB, logger *zap.Logger) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, seed := range defaultStages {
			created, err := seedStage(tx, seed)
			if err != nil {
				return err
			}
			if logger != nil && created {
				logger.Info("seeded growth stage", zap.String("name", seed.stage.Name))
			}
		}
		for _, ft := range defaultFoodTypes {
			var existing models.FoodType
			err := tx.Where("name = ?", ft.Name).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to look up food type %s: %w", ft.Name, err)
			}
			ft.IsActive = true
			if err := tx.Create(&ft).Error; err != nil {
				return fmt.Errorf("failed to seed food type %s: %w", ft.Name, err)
			}
			if logger != nil {
				logger.Info("seeded food type", zap.String("name", ft.Name))
			}
		}
		return nil
	})
}

func seedStage(tx *gorm.DB, seed stageSeed) (bool, error) {
	var existing models.GrowthStage
	err := tx.Where("name = ?", seed.stage.Name).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to look up stage %s: %w", seed.stage.Name, err)
	}

	stage := seed.stage
	stage.IsActive = true
	if err := tx.Create(&stage).Error; err != nil {
		return false, fmt.Errorf("failed to seed stage %s: %w", stage.Name, err)
	}

	req := seed.requirement
	req.GrowthStageID = stage.ID
	if err := tx.Create(&req).Error; err != nil {
		return false, fmt.Errorf("failed to seed requirements for %s: %w", stage.Name, err)
	}

	tmpl := seed.template
	tmpl.GrowthStageID = stage.ID
	tmpl.IsActive = true
	if err := tx.Create(&tmpl).Error; err != nil {
		return false, fmt.Errorf("failed to seed template for %s: %w", stage.Name, err)
	}
	return true, nil
}

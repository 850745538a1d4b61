package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/flockfeed/backend/internal/models"
	"github.com/pageza/flockfeed/backend/internal/types"
	"gorm.io/gorm"
)

// StageService manages growth stages, their nutrition requirements and the
// feeding templates attached to them.
type StageService struct {
	db *gorm.DB
}

func NewStageService(db *gorm.DB) *StageService {
	return &StageService{db: db}
}

func (s *StageService) CreateStage(ctx context.Context, req *types.CreateGrowthStageRequest) (*models.GrowthStage, error) {
	stage := models.GrowthStage{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		MinAgeDays:  req.MinAgeDays,
		MaxAgeDays:  req.MaxAgeDays,
		IsActive:    boolOr(req.IsActive, true),
	}
	if err := s.db.WithContext(ctx).Create(&stage).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, newError(ErrConflict, "Growth stage %q already exists", stage.Name)
		}
		return nil, fmt.Errorf("failed to create growth stage: %w", err)
	}
	return &stage, nil
}

func (s *StageService) GetStage(ctx context.Context, id uuid.UUID) (*models.GrowthStage, error) {
	var stage models.GrowthStage
	if err := s.db.WithContext(ctx).First(&stage, "id = ?", id).Error; err != nil {
		return nil, lookupErr(err, "Growth stage")
	}
	return &stage, nil
}

func (s *StageService) ListStages(ctx context.Context, offset, limit int) ([]models.GrowthStage, error) {
	stages := []models.GrowthStage{}
	err := s.db.WithContext(ctx).Order("min_age_days").Offset(offset).Limit(limit).Find(&stages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list growth stages: %w", err)
	}
	return stages, nil
}

// UpdateStage applies the non-nil fields of req and re-checks the age range.
func (s *StageService) UpdateStage(ctx context.Context, id uuid.UUID, req *types.UpdateGrowthStageRequest) (*models.GrowthStage, error) {
	stage, err := s.GetStage(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		stage.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		stage.Description = *req.Description
	}
	if req.MinAgeDays != nil {
		stage.MinAgeDays = *req.MinAgeDays
	}
	if req.MaxAgeDays != nil {
		stage.MaxAgeDays = *req.MaxAgeDays
	}
	if req.IsActive != nil {
		stage.IsActive = *req.IsActive
	}
	if stage.MaxAgeDays < stage.MinAgeDays {
		return nil, invalid("max_age_days must not be less than min_age_days")
	}

	if err := s.db.WithContext(ctx).Save(stage).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, newError(ErrConflict, "Growth stage %q already exists", stage.Name)
		}
		return nil, fmt.Errorf("failed to update growth stage: %w", err)
	}
	return stage, nil
}

func (s *StageService) AddRequirement(ctx context.Context, stageID uuid.UUID, req *types.CreateNutritionRequirementRequest) (*models.StageNutritionRequirement, error) {
	if _, err := s.GetStage(ctx, stageID); err != nil {
		return nil, err
	}
	requirement := models.StageNutritionRequirement{
		GrowthStageID:     stageID,
		ProteinPercent:    req.ProteinPercent,
		FatPercent:        req.FatPercent,
		FiberPercent:      req.FiberPercent,
		CalciumPercent:    req.CalciumPercent,
		PhosphorusPercent: req.PhosphorusPercent,
		EnergyKcalPerKg:   req.EnergyKcalPerKg,
	}
	if err := s.db.WithContext(ctx).Create(&requirement).Error; err != nil {
		return nil, fmt.Errorf("failed to create nutrition requirement: %w", err)
	}
	return &requirement, nil
}

func (s *StageService) ListRequirements(ctx context.Context, stageID uuid.UUID) ([]models.StageNutritionRequirement, error) {
	if _, err := s.GetStage(ctx, stageID); err != nil {
		return nil, err
	}
	requirements := []models.StageNutritionRequirement{}
	err := s.db.WithContext(ctx).Where("growth_stage_id = ?", stageID).Order("created_at").Find(&requirements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list nutrition requirements: %w", err)
	}
	return requirements, nil
}

// CreateTemplate stores a feeding template for an existing stage. The
// optional formulation must exist too.
func (s *StageService) CreateTemplate(ctx context.Context, req *types.CreateFeedingTemplateRequest) (*models.FeedingScheduleTemplate, error) {
	if _, err := s.GetStage(ctx, req.GrowthStageID); err != nil {
		return nil, err
	}
	if req.FormulationID != nil {
		var formulation models.FeedFormulation
		if err := s.db.WithContext(ctx).First(&formulation, "id = ?", *req.FormulationID).Error; err != nil {
			return nil, lookupErr(err, "Formulation")
		}
	}

	template := models.FeedingScheduleTemplate{
		GrowthStageID:    req.GrowthStageID,
		FormulationID:    req.FormulationID,
		FeedPercentage:   req.FeedPercentage,
		FeedingFrequency: req.FeedingFrequency,
		IsActive:         boolOr(req.IsActive, true),
	}
	if err := s.db.WithContext(ctx).Create(&template).Error; err != nil {
		return nil, fmt.Errorf("failed to create feeding template: %w", err)
	}
	return &template, nil
}

func (s *StageService) ListTemplates(ctx context.Context, offset, limit int) ([]models.FeedingScheduleTemplate, error) {
	templates := []models.FeedingScheduleTemplate{}
	err := s.db.WithContext(ctx).Order("created_at").Offset(offset).Limit(limit).Find(&templates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list feeding templates: %w", err)
	}
	return templates, nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

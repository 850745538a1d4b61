package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/flockfeed/backend/internal/models"
	"github.com/pageza/flockfeed/backend/internal/types"
	"gorm.io/gorm"
)

// PercentTolerance is how far a formulation's ingredient total may drift
// from 100.
const PercentTolerance = 0.01

// IngredientLine is a formulation ingredient joined to its food type.
type IngredientLine struct {
	FoodTypeID   uuid.UUID `json:"food_type_id"`
	FoodTypeName string    `json:"food_type_name"`
	Percentage   float64   `json:"percentage"`
	CostPerKg    float64   `json:"cost_per_kg"`
}

// FormulationDetail is a formulation together with its ingredient lines.
type FormulationDetail struct {
	models.FeedFormulation
	Ingredients []IngredientLine `json:"ingredients"`
}

// FeedService manages food types, their nutrition facts and formulations.
type FeedService struct {
	db *gorm.DB
}

func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{db: db}
}

func (s *FeedService) CreateFoodType(ctx context.Context, req *types.CreateFoodTypeRequest) (*models.FoodType, error) {
	unit := strings.TrimSpace(req.Unit)
	if unit == "" {
		unit = "kg"
	}
	foodType := models.FoodType{
		Name:      strings.TrimSpace(req.Name),
		Category:  req.Category,
		CostPerKg: req.CostPerKg,
		Unit:      unit,
		Supplier:  req.Supplier,
		IsActive:  true,
	}
	if err := s.db.WithContext(ctx).Create(&foodType).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, newError(ErrConflict, "Food type %q already exists", foodType.Name)
		}
		return nil, fmt.Errorf("failed to create food type: %w", err)
	}
	return &foodType, nil
}

func (s *FeedService) GetFoodType(ctx context.Context, id uuid.UUID) (*models.FoodType, error) {
	var foodType models.FoodType
	if err := s.db.WithContext(ctx).First(&foodType, "id = ?", id).Error; err != nil {
		return nil, lookupErr(err, "Food type")
	}
	return &foodType, nil
}

func (s *FeedService) ListFoodTypes(ctx context.Context, offset, limit int) ([]models.FoodType, error) {
	foodTypes := []models.FoodType{}
	if err := s.db.WithContext(ctx).Order("name").Offset(offset).Limit(limit).Find(&foodTypes).Error; err != nil {
		return nil, fmt.Errorf("failed to list food types: %w", err)
	}
	return foodTypes, nil
}

func (s *FeedService) UpdateFoodType(ctx context.Context, id uuid.UUID, req *types.UpdateFoodTypeRequest) (*models.FoodType, error) {
	foodType, err := s.GetFoodType(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		foodType.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		foodType.Category = *req.Category
	}
	if req.CostPerKg != nil {
		foodType.CostPerKg = *req.CostPerKg
	}
	if req.Supplier != nil {
		foodType.Supplier = *req.Supplier
	}
	if req.IsActive != nil {
		foodType.IsActive = *req.IsActive
	}
	if err := s.db.WithContext(ctx).Save(foodType).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, newError(ErrConflict, "Food type %q already exists", foodType.Name)
		}
		return nil, fmt.Errorf("failed to update food type: %w", err)
	}
	return foodType, nil
}

func (s *FeedService) AddNutritionFacts(ctx context.Context, foodTypeID uuid.UUID, req *types.CreateNutritionFactsRequest) (*models.NutritionFacts, error) {
	if _, err := s.GetFoodType(ctx, foodTypeID); err != nil {
		return nil, err
	}
	facts := models.NutritionFacts{
		FoodTypeID:        foodTypeID,
		ProteinPercent:    req.ProteinPercent,
		FatPercent:        req.FatPercent,
		FiberPercent:      req.FiberPercent,
		AshPercent:        req.AshPercent,
		MoisturePercent:   req.MoisturePercent,
		CalciumPercent:    req.CalciumPercent,
		PhosphorusPercent: req.PhosphorusPercent,
		EnergyKcalPerKg:   req.EnergyKcalPerKg,
	}
	if err := s.db.WithContext(ctx).Create(&facts).Error; err != nil {
		return nil, fmt.Errorf("failed to create nutrition facts: %w", err)
	}
	return &facts, nil
}

func (s *FeedService) ListNutritionFacts(ctx context.Context, foodTypeID uuid.UUID) ([]models.NutritionFacts, error) {
	if _, err := s.GetFoodType(ctx, foodTypeID); err != nil {
		return nil, err
	}
	facts := []models.NutritionFacts{}
	err := s.db.WithContext(ctx).Where("food_type_id = ?", foodTypeID).Order("created_at").Find(&facts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list nutrition facts: %w", err)
	}
	return facts, nil
}

// CreateFormulation stores a formulation and its ingredient rows in one
// transaction. Ingredient percentages must total 100 and every food type
// must exist; the cost per kg is derived from the food type prices.
func (s *FeedService) CreateFormulation(ctx context.Context, req *types.CreateFormulationRequest) (*FormulationDetail, error) {
	if len(req.Ingredients) == 0 {
		return nil, invalid("a formulation needs at least one ingredient")
	}
	seen := make(map[uuid.UUID]bool, len(req.Ingredients))
	total := 0.0
	for _, in := range req.Ingredients {
		if in.Percentage <= 0 {
			return nil, invalid("ingredient %s percentage must be positive", in.FoodTypeID)
		}
		if seen[in.FoodTypeID] {
			return nil, invalid("food type %s listed more than once", in.FoodTypeID)
		}
		seen[in.FoodTypeID] = true
		total += in.Percentage
	}
	if math.Abs(total-100) > PercentTolerance {
		return nil, invalid("ingredient percentages must total 100, got %.2f", total)
	}

	var formulation models.FeedFormulation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stage models.GrowthStage
		if err := tx.First(&stage, "id = ?", req.GrowthStageID).Error; err != nil {
			return lookupErr(err, "Growth stage")
		}

		cost := 0.0
		for _, in := range req.Ingredients {
			var foodType models.FoodType
			if err := tx.First(&foodType, "id = ?", in.FoodTypeID).Error; err != nil {
				return lookupErr(err, "Food type")
			}
			cost += in.Percentage / 100 * foodType.CostPerKg
		}

		formulation = models.FeedFormulation{
			Name:           strings.TrimSpace(req.Name),
			GrowthStageID:  req.GrowthStageID,
			Description:    req.Description,
			TotalCostPerKg: cost,
			IsActive:       true,
		}
		if err := tx.Create(&formulation).Error; err != nil {
			return fmt.Errorf("failed to create formulation: %w", err)
		}

		rows := make([]models.FormulationIngredient, 0, len(req.Ingredients))
		for _, in := range req.Ingredients {
			rows = append(rows, models.FormulationIngredient{
				FormulationID: formulation.ID,
				FoodTypeID:    in.FoodTypeID,
				Percentage:    in.Percentage,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to create formulation ingredients: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, &formulation)
}

func (s *FeedService) GetFormulation(ctx context.Context, id uuid.UUID) (*FormulationDetail, error) {
	var formulation models.FeedFormulation
	if err := s.db.WithContext(ctx).First(&formulation, "id = ?", id).Error; err != nil {
		return nil, lookupErr(err, "Formulation")
	}
	return s.detail(ctx, &formulation)
}

func (s *FeedService) ListFormulations(ctx context.Context, offset, limit int) ([]models.FeedFormulation, error) {
	formulations := []models.FeedFormulation{}
	if err := s.db.WithContext(ctx).Order("created_at").Offset(offset).Limit(limit).Find(&formulations).Error; err != nil {
		return nil, fmt.Errorf("failed to list formulations: %w", err)
	}
	return formulations, nil
}

func (s *FeedService) detail(ctx context.Context, formulation *models.FeedFormulation) (*FormulationDetail, error) {
	lines, err := ingredientLines(s.db.WithContext(ctx), formulation.ID)
	if err != nil {
		return nil, err
	}
	return &FormulationDetail{FeedFormulation: *formulation, Ingredients: lines}, nil
}

// ingredientLines joins the ingredient rows of a formulation to their food
// types, largest share first.
func ingredientLines(db *gorm.DB, formulationID uuid.UUID) ([]IngredientLine, error) {
	lines := []IngredientLine{}
	err := db.Table("formulation_ingredients AS fi").
		Select("fi.food_type_id, ft.name AS food_type_name, fi.percentage, ft.cost_per_kg").
		Joins("JOIN food_types AS ft ON ft.id = fi.food_type_id").
		Where("fi.formulation_id = ?", formulationID).
		Order("fi.percentage DESC").
		Scan(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load formulation ingredients: %w", err)
	}
	return lines, nil
}

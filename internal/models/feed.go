package models

import (
	"time"

	"github.com/google/uuid"
)

type FoodType struct {
	Base
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Category  string    `gorm:"size:50" json:"category"`
	CostPerKg float64   `gorm:"not null" json:"cost_per_kg"`
	Unit      string    `gorm:"size:10;not null" json:"unit"`
	Supplier  string    `gorm:"size:100" json:"supplier"`
	IsActive  bool      `gorm:"not null" json:"is_active"`
}

func (FoodType) TableName() string {
	return "food_types"
}

type NutritionFacts struct {
	Base
	FoodTypeID        uuid.UUID `gorm:"type:varchar(36);not null;index" json:"food_type_id"`
	ProteinPercent    float64   `json:"protein_percent"`
	FatPercent        float64   `json:"fat_percent"`
	FiberPercent      float64   `json:"fiber_percent"`
	AshPercent        float64   `json:"ash_percent"`
	MoisturePercent   float64   `json:"moisture_percent"`
	CalciumPercent    float64   `json:"calcium_percent"`
	PhosphorusPercent float64   `json:"phosphorus_percent"`
	EnergyKcalPerKg   float64   `json:"energy_kcal_per_kg"`
}

func (NutritionFacts) TableName() string {
	return "nutrition_facts"
}

// FeedFormulation is a named blend for a growth stage. TotalCostPerKg is
// derived from the ingredient rows when the formulation is created.
type FeedFormulation struct {
	Base
	UpdatedAt      time.Time `json:"updated_at"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	GrowthStageID  uuid.UUID `gorm:"type:varchar(36);not null;index" json:"growth_stage_id"`
	Description    string    `gorm:"type:text" json:"description"`
	TotalCostPerKg float64   `gorm:"not null" json:"total_cost_per_kg"`
	IsActive       bool      `gorm:"not null" json:"is_active"`
}

func (FeedFormulation) TableName() string {
	return "feed_formulations"
}

// FormulationIngredient is the join row between a formulation and a food
// type, carrying the inclusion percentage.
type FormulationIngredient struct {
	FormulationID uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"formulation_id"`
	FoodTypeID    uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"food_type_id"`
	Percentage    float64   `gorm:"not null" json:"percentage"`
	CreatedAt     time.Time `json:"created_at"`
}

func (FormulationIngredient) TableName() string {
	return "formulation_ingredients"
}

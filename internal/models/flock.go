package models

import (
	"time"

	"github.com/google/uuid"
)

// GrowthStage is an age bracket with its own nutrition targets.
type GrowthStage struct {
	Base
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	MinAgeDays  int       `gorm:"not null" json:"min_age_days"`
	MaxAgeDays  int       `gorm:"not null" json:"max_age_days"`
	IsActive    bool      `gorm:"not null" json:"is_active"`
}

func (GrowthStage) TableName() string {
	return "growth_stages"
}

type StageNutritionRequirement struct {
	Base
	GrowthStageID     uuid.UUID `gorm:"type:varchar(36);not null;index" json:"growth_stage_id"`
	ProteinPercent    float64   `json:"protein_percent"`
	FatPercent        float64   `json:"fat_percent"`
	FiberPercent      float64   `json:"fiber_percent"`
	CalciumPercent    float64   `json:"calcium_percent"`
	PhosphorusPercent float64   `json:"phosphorus_percent"`
	EnergyKcalPerKg   float64   `json:"energy_kcal_per_kg"`
}

func (StageNutritionRequirement) TableName() string {
	return "stage_nutrition_requirements"
}

// FeedingScheduleTemplate says how much of its body weight a bird in a stage
// eats per day and over how many meals.
type FeedingScheduleTemplate struct {
	Base
	UpdatedAt        time.Time  `json:"updated_at"`
	GrowthStageID    uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"growth_stage_id"`
	FormulationID    *uuid.UUID `gorm:"type:varchar(36)" json:"formulation_id"`
	FeedPercentage   float64    `gorm:"not null" json:"feed_percentage"`
	FeedingFrequency int        `gorm:"not null" json:"feeding_frequency"`
	IsActive         bool       `gorm:"not null" json:"is_active"`
}

func (FeedingScheduleTemplate) TableName() string {
	return "feeding_schedule_templates"
}

// Flock is a cohort of birds managed as one unit. Rows are deactivated,
// never deleted.
type Flock struct {
	Base
	UpdatedAt       time.Time  `json:"updated_at"`
	UserID          uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"user_id"`
	BatchNumber     string     `gorm:"size:50;not null" json:"batch_number"`
	Breed           string     `gorm:"size:100;not null" json:"breed"`
	Quantity        int        `gorm:"not null" json:"quantity"`
	CurrentQuantity int        `gorm:"not null" json:"current_quantity"`
	AvgWeightKg     float64    `json:"avg_weight_kg"`
	StartDate       time.Time  `gorm:"not null" json:"start_date"`
	CurrentStageID  *uuid.UUID `gorm:"type:varchar(36);index" json:"current_stage_id"`
	IsActive        bool       `gorm:"not null" json:"is_active"`
}

func (Flock) TableName() string {
	return "flocks"
}

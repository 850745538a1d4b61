package types

import (
	"github.com/google/uuid"
)

// Request bodies for the flock service. Dates travel as YYYY-MM-DD strings.

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"max=100"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Message  string    `json:"message"`
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}

type UsernameAvailability struct {
	Username  string `json:"username"`
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

// UpdateSettingsRequest is a partial update; nil fields are left unchanged.
type UpdateSettingsRequest struct {
	Language             *string `json:"language" binding:"omitempty,min=2,max=10"`
	Timezone             *string `json:"timezone" binding:"omitempty,max=50"`
	Currency             *string `json:"currency" binding:"omitempty,len=3"`
	MeasurementUnit      *string `json:"measurement_unit" binding:"omitempty,oneof=metric imperial"`
	NotificationsEnabled *bool   `json:"notifications_enabled"`
	EmailNotifications   *bool   `json:"email_notifications"`
}

type CreateGrowthStageRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Description string `json:"description"`
	MinAgeDays  int    `json:"min_age_days" binding:"gte=0"`
	MaxAgeDays  int    `json:"max_age_days" binding:"gtefield=MinAgeDays"`
	IsActive    *bool  `json:"is_active"`
}

type UpdateGrowthStageRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=50"`
	Description *string `json:"description"`
	MinAgeDays  *int    `json:"min_age_days" binding:"omitempty,gte=0"`
	MaxAgeDays  *int    `json:"max_age_days" binding:"omitempty,gte=0"`
	IsActive    *bool   `json:"is_active"`
}

type CreateNutritionRequirementRequest struct {
	ProteinPercent    float64 `json:"protein_percent" binding:"gte=0,lte=100"`
	FatPercent        float64 `json:"fat_percent" binding:"gte=0,lte=100"`
	FiberPercent      float64 `json:"fiber_percent" binding:"gte=0,lte=100"`
	CalciumPercent    float64 `json:"calcium_percent" binding:"gte=0,lte=100"`
	PhosphorusPercent float64 `json:"phosphorus_percent" binding:"gte=0,lte=100"`
	EnergyKcalPerKg   float64 `json:"energy_kcal_per_kg" binding:"gte=0"`
}

type CreateFeedingTemplateRequest struct {
	GrowthStageID    uuid.UUID  `json:"growth_stage_id" binding:"required"`
	FormulationID    *uuid.UUID `json:"formulation_id"`
	FeedPercentage   float64    `json:"feed_percentage" binding:"required,gt=0,lte=100"`
	FeedingFrequency int        `json:"feeding_frequency" binding:"required,min=1,max=24"`
	IsActive         *bool      `json:"is_active"`
}

type CreateFlockRequest struct {
	UserID         uuid.UUID  `json:"user_id" binding:"required"`
	BatchNumber    string     `json:"batch_number" binding:"required,max=50"`
	Breed          string     `json:"breed" binding:"required,max=100"`
	Quantity       int        `json:"quantity" binding:"required,min=1"`
	AvgWeightKg    float64    `json:"avg_weight_kg" binding:"gte=0"`
	StartDate      string     `json:"start_date" binding:"required,datetime=2006-01-02"`
	CurrentStageID *uuid.UUID `json:"current_stage_id"`
}

type CreateFoodTypeRequest struct {
	Name      string  `json:"name" binding:"required,max=100"`
	Category  string  `json:"category" binding:"max=50"`
	CostPerKg float64 `json:"cost_per_kg" binding:"gte=0"`
	Unit      string  `json:"unit" binding:"max=10"`
	Supplier  string  `json:"supplier" binding:"max=100"`
}

type UpdateFoodTypeRequest struct {
	Name      *string  `json:"name" binding:"omitempty,max=100"`
	Category  *string  `json:"category" binding:"omitempty,max=50"`
	CostPerKg *float64 `json:"cost_per_kg" binding:"omitempty,gte=0"`
	Supplier  *string  `json:"supplier" binding:"omitempty,max=100"`
	IsActive  *bool    `json:"is_active"`
}

type CreateNutritionFactsRequest struct {
	ProteinPercent    float64 `json:"protein_percent" binding:"gte=0,lte=100"`
	FatPercent        float64 `json:"fat_percent" binding:"gte=0,lte=100"`
	FiberPercent      float64 `json:"fiber_percent" binding:"gte=0,lte=100"`
	AshPercent        float64 `json:"ash_percent" binding:"gte=0,lte=100"`
	MoisturePercent   float64 `json:"moisture_percent" binding:"gte=0,lte=100"`
	CalciumPercent    float64 `json:"calcium_percent" binding:"gte=0,lte=100"`
	PhosphorusPercent float64 `json:"phosphorus_percent" binding:"gte=0,lte=100"`
	EnergyKcalPerKg   float64 `json:"energy_kcal_per_kg" binding:"gte=0"`
}

type IngredientInput struct {
	FoodTypeID uuid.UUID `json:"food_type_id" binding:"required"`
	Percentage float64   `json:"percentage" binding:"required,gt=0,lte=100"`
}

type CreateFormulationRequest struct {
	Name          string            `json:"name" binding:"required,max=100"`
	GrowthStageID uuid.UUID         `json:"growth_stage_id" binding:"required"`
	Description   string            `json:"description"`
	Ingredients   []IngredientInput `json:"ingredients" binding:"required,min=1,dive"`
}

type CreateFeedingRecordRequest struct {
	GroupID        uuid.UUID  `json:"group_id" binding:"required"`
	FeedingDate    string     `json:"feeding_date" binding:"required,datetime=2006-01-02"`
	FormulationID  *uuid.UUID `json:"formulation_id"`
	FeedQuantityKg float64    `json:"feed_quantity_kg" binding:"gte=0"`
	TotalCost      float64    `json:"total_cost" binding:"gte=0"`
	Notes          string     `json:"notes"`
}

type CreateGrowthTrackingRequest struct {
	GroupID        uuid.UUID `json:"group_id" binding:"required"`
	TrackingDate   string    `json:"tracking_date" binding:"required,datetime=2006-01-02"`
	AvgWeightKg    float64   `json:"avg_weight_kg" binding:"gte=0"`
	MortalityCount int       `json:"mortality_count" binding:"gte=0"`
	HealthNotes    string    `json:"health_notes"`
}

type CreateConsumptionRequest struct {
	GroupID         uuid.UUID `json:"group_id" binding:"required"`
	FoodTypeID      uuid.UUID `json:"food_type_id" binding:"required"`
	ConsumptionDate string    `json:"consumption_date" binding:"required,datetime=2006-01-02"`
	QuantityKg      float64   `json:"quantity_kg" binding:"gte=0"`
	Cost            float64   `json:"cost" binding:"gte=0"`
}

type CreatePerformanceRequest struct {
	GroupID         uuid.UUID `json:"group_id" binding:"required"`
	CalculationDate string    `json:"calculation_date" binding:"required,datetime=2006-01-02"`
	TotalFeedKg     float64   `json:"total_feed_kg" binding:"gte=0"`
	TotalFeedCost   float64   `json:"total_feed_cost" binding:"gte=0"`
	WeightGainKg    float64   `json:"weight_gain_kg"`
	FCR             float64   `json:"fcr" binding:"gte=0"`
	CostPerKgGain   float64   `json:"cost_per_kg_weight_gain" binding:"gte=0"`
	MortalityRate   float64   `json:"mortality_rate" binding:"gte=0,lte=100"`
	AvgDailyGain    float64   `json:"avg_daily_gain"`
}

// MortalityQuery carries the query parameters of the mortality update.
type MortalityQuery struct {
	NewDeaths *int   `form:"new_deaths" binding:"required,gte=0"`
	DeathDate string `form:"death_date" binding:"required,datetime=2006-01-02"`
}

// PerformanceQuery carries the calculation date; empty means today.
type PerformanceQuery struct {
	CalcDate string `form:"calc_date" binding:"omitempty,datetime=2006-01-02"`
}

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// ListQuery is the paging and filtering query shared by list endpoints.
type ListQuery struct {
	Skip    int    `form:"skip" binding:"gte=0"`
	Limit   int    `form:"limit" binding:"gte=0,lte=1000"`
	UserID  string `form:"user_id" binding:"omitempty,uuid"`
	GroupID string `form:"group_id" binding:"omitempty,uuid"`
}

// Page returns the offset and a limit with the default applied.
func (q ListQuery) Page() (offset, limit int) {
	limit = q.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return q.Skip, limit
}

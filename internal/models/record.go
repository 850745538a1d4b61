package models

import (
	"time"

	"github.com/google/uuid"
)

// The record tables below are append-only. Corrections are new rows.

type FeedingRecord struct {
	Base
	FlockID        uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"group_id"`
	FeedingDate    time.Time  `gorm:"not null;index" json:"feeding_date"`
	FormulationID  *uuid.UUID `gorm:"type:varchar(36)" json:"formulation_id"`
	FeedQuantityKg float64    `gorm:"not null" json:"feed_quantity_kg"`
	TotalCost      float64    `gorm:"not null" json:"total_cost"`
	Notes          string     `gorm:"type:text" json:"notes"`
}

func (FeedingRecord) TableName() string {
	return "feeding_records"
}

type GrowthTrackingRecord struct {
	Base
	FlockID        uuid.UUID `gorm:"type:varchar(36);not null;index" json:"group_id"`
	TrackingDate   time.Time `gorm:"not null;index" json:"tracking_date"`
	AvgWeightKg    float64   `gorm:"not null" json:"avg_weight_kg"`
	MortalityCount int       `gorm:"not null" json:"mortality_count"`
	HealthNotes    string    `gorm:"type:text" json:"health_notes"`
}

func (GrowthTrackingRecord) TableName() string {
	return "growth_tracking_records"
}

type InventoryConsumptionRecord struct {
	Base
	FlockID         uuid.UUID `gorm:"type:varchar(36);not null;index" json:"group_id"`
	FoodTypeID      uuid.UUID `gorm:"type:varchar(36);not null;index" json:"food_type_id"`
	ConsumptionDate time.Time `gorm:"not null;index" json:"consumption_date"`
	QuantityKg      float64   `gorm:"not null" json:"quantity_kg"`
	Cost            float64   `gorm:"not null" json:"cost"`
}

func (InventoryConsumptionRecord) TableName() string {
	return "inventory_consumption_records"
}

// PerformanceMetrics is an immutable snapshot produced by an explicit
// calculation. Older snapshots are kept.
type PerformanceMetrics struct {
	Base
	FlockID         uuid.UUID `gorm:"type:varchar(36);not null;index" json:"group_id"`
	CalculationDate time.Time `gorm:"not null;index" json:"calculation_date"`
	TotalFeedKg     float64   `json:"total_feed_kg"`
	TotalFeedCost   float64   `json:"total_feed_cost"`
	WeightGainKg    float64   `json:"weight_gain_kg"`
	FCR             float64   `gorm:"column:fcr" json:"fcr"`
	CostPerKgGain   float64   `json:"cost_per_kg_weight_gain"`
	MortalityRate   float64   `json:"mortality_rate"`
	AvgDailyGain    float64   `json:"avg_daily_gain"`
}

func (PerformanceMetrics) TableName() string {
	return "performance_metrics"
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the identity and creation time shared by every table.
type Base struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns a fresh UUID unless the caller supplied one.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// All returns every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&UserSettings{},
		&GrowthStage{},
		&StageNutritionRequirement{},
		&FoodType{},
		&NutritionFacts{},
		&FeedFormulation{},
		&FormulationIngredient{},
		&FeedingScheduleTemplate{},
		&Flock{},
		&FeedingRecord{},
		&GrowthTrackingRecord{},
		&InventoryConsumptionRecord{},
		&PerformanceMetrics{},
	}
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Base
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:100;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FullName     string    `gorm:"size:100" json:"full_name"`
	IsActive     bool      `gorm:"not null" json:"is_active"`
	IsAdmin      bool      `gorm:"not null" json:"is_admin"`
}

func (User) TableName() string {
	return "users"
}

// UserSettings holds per-user display and notification preferences. Exactly
// one row exists per user.
type UserSettings struct {
	Base
	UpdatedAt            time.Time `json:"updated_at"`
	UserID               uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Language             string    `gorm:"size:10;not null" json:"language"`
	Timezone             string    `gorm:"size:50;not null" json:"timezone"`
	Currency             string    `gorm:"size:10;not null" json:"currency"`
	MeasurementUnit      string    `gorm:"size:20;not null" json:"measurement_unit"`
	NotificationsEnabled bool      `gorm:"not null" json:"notifications_enabled"`
	EmailNotifications   bool      `gorm:"not null" json:"email_notifications"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}

// DefaultSettings returns the settings created alongside a new user.
func DefaultSettings(userID uuid.UUID) *UserSettings {
	return &UserSettings{
		UserID:               userID,
		Language:             "en",
		Timezone:             "UTC",
		Currency:             "USD",
		MeasurementUnit:      "metric",
		NotificationsEnabled: true,
		EmailNotifications:   true,
	}
}

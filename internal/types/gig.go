package types

import (
	"time"

	"gorm.io/datatypes"
)

const (
	GigOpen      = "open"
	GigFilled    = "filled"
	GigCompleted = "completed"
	GigCancelled = "cancelled"
)

type Gig struct {
	ID              int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Title           string         `gorm:"not null;column:title" json:"title"`
	Description     string         `gorm:"type:text;column:description" json:"description"`
	Category        string         `gorm:"column:category" json:"category"`
	Location        string         `gorm:"column:location" json:"location"`
	LocationLat     float64        `gorm:"column:location_lat" json:"location_lat"`
	LocationLon     float64        `gorm:"column:location_lon" json:"location_lon"`
	DurationHours   int            `gorm:"column:duration_hours" json:"duration_hours"`
	Payment         float64        `gorm:"column:payment" json:"payment"`
	PaymentCurrency string         `gorm:"not null;default:'INR';column:payment_currency" json:"payment_currency"`
	RequiredSkills  datatypes.JSON `gorm:"column:required_skills" json:"required_skills"`
	TimeFlexibility string         `gorm:"column:time_flexibility" json:"time_flexibility"`
	Status          string         `gorm:"not null;default:'open';index;column:status" json:"status"`
	ExpiresAt       *time.Time     `gorm:"column:expires_at" json:"expires_at,omitempty"`
	CreatedAt       time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
}

func (Gig) TableName() string { return "gigs" }

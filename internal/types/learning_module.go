package types

import (
	"time"

	"gorm.io/datatypes"
)

const (
	CategoryFinancialLiteracy = "financial_literacy"
	CategoryDigitalSafety     = "digital_safety"
	CategoryVocationalSkills  = "vocational_skills"
)

// LearningModule is a nano-module: a roughly two-minute audio lesson
// with a credit cost.
type LearningModule struct {
	ID              int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Title           string         `gorm:"not null;column:title" json:"title"`
	Description     string         `gorm:"type:text;column:description" json:"description"`
	Category        string         `gorm:"index;column:category" json:"category"`
	Language        string         `gorm:"not null;index;column:language" json:"language"`
	DurationSeconds int            `gorm:"column:duration_seconds" json:"duration_seconds"`
	AudioPath       string         `gorm:"column:audio_path" json:"audio_path"`
	Transcript      string         `gorm:"type:text;column:transcript" json:"transcript"`
	DifficultyLevel int            `gorm:"not null;default:1;column:difficulty_level" json:"difficulty_level"`
	CreditCost      int64          `gorm:"not null;default:3;column:credit_cost" json:"credit_cost"`
	Tags            datatypes.JSON `gorm:"column:tags" json:"tags"`
	IsActive        bool           `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
}

func (LearningModule) TableName() string { return "learning_modules" }

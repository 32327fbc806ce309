package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProgressNotStarted = "not_started"
	ProgressInProgress = "in_progress"
	ProgressCompleted  = "completed"
)

// LearningProgress tracks one user against one module. The
// (user_id, module_id) pair is unique; completed is terminal.
type LearningProgress struct {
	ID                 int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID             uuid.UUID       `gorm:"type:uuid;not null;index:idx_user_module,unique" json:"user_id"`
	User               *User           `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ModuleID           int64           `gorm:"not null;index:idx_user_module,unique" json:"module_id"`
	Module             *LearningModule `gorm:"constraint:OnDelete:CASCADE;foreignKey:ModuleID;references:ID" json:"module,omitempty"`
	Status             string          `gorm:"not null;default:'not_started';column:status" json:"status"`
	ProgressPercentage float64         `gorm:"not null;default:0;column:progress_percentage" json:"progress_percentage"`
	StartedAt          *time.Time      `gorm:"column:started_at" json:"started_at,omitempty"`
	CompletedAt        *time.Time      `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreditsEarned      int64           `gorm:"not null;default:0;column:credits_earned" json:"credits_earned"`
	CreatedAt          time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"not null" json:"updated_at"`
}

func (LearningProgress) TableName() string { return "learning_progress" }

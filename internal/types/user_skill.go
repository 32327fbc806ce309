package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	SkillTypeTeach = "teach"
	SkillTypeLearn = "learn"

	SkillStatusActive    = "active"
	SkillStatusPaused    = "paused"
	SkillStatusCompleted = "completed"
)

// UserSkill links a user to a skill they teach or want to learn.
type UserSkill struct {
	ID               int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	User             *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	SkillID          int64          `gorm:"not null;index;column:skill_id" json:"skill_id"`
	Skill            *Skill         `gorm:"constraint:OnDelete:CASCADE;foreignKey:SkillID;references:ID" json:"skill,omitempty"`
	SkillType        string         `gorm:"not null;column:skill_type" json:"skill_type"`
	ProficiencyLevel int            `gorm:"not null;default:1;column:proficiency_level" json:"proficiency_level"`
	AvailableHours   datatypes.JSON `gorm:"column:available_hours" json:"available_hours"`
	Location         string         `gorm:"column:location" json:"location"`
	Status           string         `gorm:"not null;default:'active';column:status" json:"status"`
	CreatedAt        time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null" json:"updated_at"`
}

func (UserSkill) TableName() string { return "user_skills" }

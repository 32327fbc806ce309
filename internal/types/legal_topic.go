package types

import (
	"time"

	"gorm.io/datatypes"
)

type LegalTopic struct {
	ID               int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string         `gorm:"not null;column:name" json:"name"`
	Description      string         `gorm:"type:text;column:description" json:"description"`
	Category         string         `gorm:"index;column:category" json:"category"`
	Language         string         `gorm:"not null;default:'hi';index;column:language" json:"language"`
	Content          string         `gorm:"type:text;column:content" json:"content"`
	AudioPath        string         `gorm:"column:audio_path" json:"audio_path"`
	RelatedLaws      datatypes.JSON `gorm:"column:related_laws" json:"related_laws"`
	HelpfulResources datatypes.JSON `gorm:"column:helpful_resources" json:"helpful_resources"`
	IsActive         bool           `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedAt        time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null" json:"updated_at"`
}

func (LegalTopic) TableName() string { return "legal_topics" }

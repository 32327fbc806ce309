package types

import (
	"time"

	"github.com/google/uuid"
)

// LegalQuery is an anonymized audit record. Only the hash of the
// question is stored, never the raw text, and the row is never read
// back to build a response.
type LegalQuery struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	User            *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	QueryHash       string    `gorm:"index;column:query_hash" json:"query_hash"`
	TopicCategory   string    `gorm:"column:topic_category" json:"topic_category"`
	Language        string    `gorm:"column:language" json:"language"`
	ResponseSummary string    `gorm:"type:text;column:response_summary" json:"response_summary"`
	WasHelpful      *bool     `gorm:"column:was_helpful" json:"was_helpful,omitempty"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
}

func (LegalQuery) TableName() string { return "legal_queries" }

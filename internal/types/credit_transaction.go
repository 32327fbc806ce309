package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	TxInitial = "initial"
	TxLearn   = "learn"
	TxTeach   = "teach"
	TxBonus   = "bonus"
)

// CreditTransaction is one row of the append-only time-bank ledger.
// A user's balance is the sum of amounts; rows are never updated or
// deleted.
type CreditTransaction struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	User            *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Amount          int64     `gorm:"not null;column:amount" json:"amount"`
	TransactionType string    `gorm:"not null;column:transaction_type" json:"transaction_type"`
	Description     string    `gorm:"column:description" json:"description"`
	RelatedModuleID *int64    `gorm:"column:related_module_id" json:"related_module_id,omitempty"`
	RelatedSkillID  *int64    `gorm:"column:related_skill_id" json:"related_skill_id,omitempty"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
}

func (CreditTransaction) TableName() string { return "credit_transactions" }

package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	ApplicationPending   = "pending"
	ApplicationAccepted  = "accepted"
	ApplicationRejected  = "rejected"
	ApplicationCompleted = "completed"
)

// GigApplication: one user may hold at most one application per gig,
// enforced by the unique index and re-checked before insert.
type GigApplication struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_gig,unique" json:"user_id"`
	User        *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	GigID       int64      `gorm:"not null;index:idx_user_gig,unique" json:"gig_id"`
	Gig         *Gig       `gorm:"constraint:OnDelete:CASCADE;foreignKey:GigID;references:ID" json:"gig,omitempty"`
	Status      string     `gorm:"not null;default:'pending';column:status" json:"status"`
	AppliedAt   time.Time  `gorm:"not null;column:applied_at" json:"applied_at"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	Rating      *int       `gorm:"column:rating" json:"rating,omitempty"`
	Feedback    string     `gorm:"type:text;column:feedback" json:"feedback"`
}

func (GigApplication) TableName() string { return "gig_applications" }

package types

import (
	"time"

	"github.com/google/uuid"
)

// User is anonymous by construction: the only identity is a SHA-256
// hash of the device fingerprint. No PII columns exist.
type User struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DeviceFingerprint  string    `gorm:"uniqueIndex;not null;column:device_fingerprint" json:"-"`
	LanguagePreference string    `gorm:"not null;default:'hi';column:language_preference" json:"language_preference"`
	IsActive           bool      `gorm:"not null;default:true;column:is_active" json:"is_active"`
	LastActive         time.Time `gorm:"column:last_active" json:"last_active"`
	CreatedAt          time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "users" }

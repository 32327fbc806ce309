package types

import "time"

type Skill struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null;index;column:name" json:"name"`
	Description string    `gorm:"type:text;column:description" json:"description"`
	Category    string    `gorm:"column:category" json:"category"`
	Language    string    `gorm:"not null;default:'hi';column:language" json:"language"`
	IsActive    bool      `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Skill) TableName() string { return "skills" }

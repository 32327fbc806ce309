package types

import (
	"time"

	"gorm.io/datatypes"
)

const MetricVoiceInteraction = "voice_interaction"

// SystemMetric is an anonymized usage counter row; the voice pipeline
// writes exactly one per completed request.
type SystemMetric struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	MetricType  string         `gorm:"not null;index;column:metric_type" json:"metric_type"`
	MetricValue float64        `gorm:"not null;default:1;column:metric_value" json:"metric_value"`
	Language    string         `gorm:"column:language" json:"language"`
	Category    string         `gorm:"column:category" json:"category"`
	Metadata    datatypes.JSON `gorm:"column:metadata" json:"metadata"`
	Timestamp   time.Time      `gorm:"not null;index;column:timestamp" json:"timestamp"`
}

func (SystemMetric) TableName() string { return "system_metrics" }

package repos

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/saktilink/edge-backend/internal/logger"
	"github.com/saktilink/edge-backend/internal/types"
)

type MetricAggregate struct {
	MetricType string  `json:"metric_type"`
	Total      float64 `json:"total"`
	Count      int64   `json:"count"`
}

type SystemMetricRepo interface {
	Create(ctx context.Context, tx *gorm.DB, metric *types.SystemMetric) (*types.SystemMetric, error)
	AggregateSince(ctx context.Context, tx *gorm.DB, since time.Time) ([]MetricAggregate, error)
}

type systemMetricRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSystemMetricRepo(db *gorm.DB, baseLog *logger.Logger) SystemMetricRepo {
	repoLog := baseLog.With("repo", "SystemMetricRepo")
	return &systemMetricRepo{db: db, log: repoLog}
}

func (mr *systemMetricRepo) Create(ctx context.Context, tx *gorm.DB, metric *types.SystemMetric) (*types.SystemMetric, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if err := transaction.WithContext(ctx).Create(metric).Error; err != nil {
		return nil, err
	}
	return metric, nil
}

func (mr *systemMetricRepo) AggregateSince(ctx context.Context, tx *gorm.DB, since time.Time) ([]MetricAggregate, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []MetricAggregate
	if err := transaction.WithContext(ctx).
		Model(&types.SystemMetric{}).
		Select("metric_type, SUM(metric_value) AS total, COUNT(id) AS count").
		Where("timestamp >= ?", since).
		Group("metric_type").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

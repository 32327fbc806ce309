package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saktilink/edge-backend/internal/logger"
	"github.com/saktilink/edge-backend/internal/types"
)

type GigApplicationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, application *types.GigApplication) (*types.GigApplication, error)
	GetByUserGig(ctx context.Context, tx *gorm.DB, userID uuid.UUID, gigID int64) (*types.GigApplication, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.GigApplication, error)
	CountByGig(ctx context.Context, tx *gorm.DB, gigID int64) (int64, error)
}

type gigApplicationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGigApplicationRepo(db *gorm.DB, baseLog *logger.Logger) GigApplicationRepo {
	repoLog := baseLog.With("repo", "GigApplicationRepo")
	return &gigApplicationRepo{db: db, log: repoLog}
}

func (ar *gigApplicationRepo) Create(ctx context.Context, tx *gorm.DB, application *types.GigApplication) (*types.GigApplication, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if err := transaction.WithContext(ctx).Create(application).Error; err != nil {
		return nil, err
	}
	return application, nil
}

func (ar *gigApplicationRepo) GetByUserGig(ctx context.Context, tx *gorm.DB, userID uuid.UUID, gigID int64) (*types.GigApplication, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var result types.GigApplication
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND gig_id = ?", userID, gigID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (ar *gigApplicationRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.GigApplication, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.GigApplication
	q := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("applied_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *gigApplicationRepo) CountByGig(ctx context.Context, tx *gorm.DB, gigID int64) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.GigApplication{}).
		Where("gig_id = ?", gigID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

package repos

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/saktilink/edge-backend/internal/logger"
	"github.com/saktilink/edge-backend/internal/types"
)

type GigRepo interface {
	Create(ctx context.Context, tx *gorm.DB, gigs []*types.Gig) ([]*types.Gig, error)
	GetByID(ctx context.Context, tx *gorm.DB, gigID int64) (*types.Gig, error)
	ListOpen(ctx context.Context, tx *gorm.DB, now time.Time, limit int) ([]*types.Gig, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type gigRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGigRepo(db *gorm.DB, baseLog *logger.Logger) GigRepo {
	repoLog := baseLog.With("repo", "GigRepo")
	return &gigRepo{db: db, log: repoLog}
}

func (gr *gigRepo) Create(ctx context.Context, tx *gorm.DB, gigs []*types.Gig) ([]*types.Gig, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}
	if len(gigs) == 0 {
		return []*types.Gig{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&gigs).Error; err != nil {
		return nil, err
	}
	return gigs, nil
}

func (gr *gigRepo) GetByID(ctx context.Context, tx *gorm.DB, gigID int64) (*types.Gig, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}
	var result types.Gig
	err := transaction.WithContext(ctx).
		Where("id = ?", gigID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListOpen returns open, non-expired gigs, newest first.
func (gr *gigRepo) ListOpen(ctx context.Context, tx *gorm.DB, now time.Time, limit int) ([]*types.Gig, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}
	var results []*types.Gig
	q := transaction.WithContext(ctx).
		Where("status = ?", types.GigOpen).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (gr *gigRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Gig{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

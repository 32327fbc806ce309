package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/saktilink/edge-backend/internal/logger"
	"github.com/saktilink/edge-backend/internal/types"
)

type LegalTopicRepo interface {
	Create(ctx context.Context, tx *gorm.DB, topics []*types.LegalTopic) ([]*types.LegalTopic, error)
	GetByCategoryLanguage(ctx context.Context, tx *gorm.DB, category, language string) (*types.LegalTopic, error)
	ListActive(ctx context.Context, tx *gorm.DB, language string) ([]*types.LegalTopic, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type legalTopicRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLegalTopicRepo(db *gorm.DB, baseLog *logger.Logger) LegalTopicRepo {
	repoLog := baseLog.With("repo", "LegalTopicRepo")
	return &legalTopicRepo{db: db, log: repoLog}
}

func (lr *legalTopicRepo) Create(ctx context.Context, tx *gorm.DB, topics []*types.LegalTopic) ([]*types.LegalTopic, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	if len(topics) == 0 {
		return []*types.LegalTopic{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

func (lr *legalTopicRepo) GetByCategoryLanguage(ctx context.Context, tx *gorm.DB, category, language string) (*types.LegalTopic, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var result types.LegalTopic
	err := transaction.WithContext(ctx).
		Where("category = ? AND language = ? AND is_active = ?", category, language, true).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (lr *legalTopicRepo) ListActive(ctx context.Context, tx *gorm.DB, language string) ([]*types.LegalTopic, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var results []*types.LegalTopic
	q := transaction.WithContext(ctx).Where("is_active = ?", true)
	if language != "" {
		q = q.Where("language = ?", language)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *legalTopicRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.LegalTopic{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/saktilink/edge-backend/internal/logger"
	"github.com/saktilink/edge-backend/internal/types"
)

type LearningModuleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, modules []*types.LearningModule) ([]*types.LearningModule, error)
	GetByID(ctx context.Context, tx *gorm.DB, moduleID int64) (*types.LearningModule, error)
	ListActive(ctx context.Context, tx *gorm.DB, category, language string, limit int) ([]*types.LearningModule, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type learningModuleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningModuleRepo(db *gorm.DB, baseLog *logger.Logger) LearningModuleRepo {
	repoLog := baseLog.With("repo", "LearningModuleRepo")
	return &learningModuleRepo{db: db, log: repoLog}
}

func (mr *learningModuleRepo) Create(ctx context.Context, tx *gorm.DB, modules []*types.LearningModule) ([]*types.LearningModule, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(modules) == 0 {
		return []*types.LearningModule{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&modules).Error; err != nil {
		return nil, err
	}
	return modules, nil
}

func (mr *learningModuleRepo) GetByID(ctx context.Context, tx *gorm.DB, moduleID int64) (*types.LearningModule, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var result types.LearningModule
	err := transaction.WithContext(ctx).
		Where("id = ?", moduleID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (mr *learningModuleRepo) ListActive(ctx context.Context, tx *gorm.DB, category, language string, limit int) ([]*types.LearningModule, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.LearningModule
	q := transaction.WithContext(ctx).
		Where("language = ? AND is_active = ?", language, true)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *learningModuleRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.LearningModule{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saktilink/edge-backend/internal/logger"
	"github.com/saktilink/edge-backend/internal/types"
)

type LearningProgressRepo interface {
	Create(ctx context.Context, tx *gorm.DB, progress *types.LearningProgress) (*types.LearningProgress, error)
	Save(ctx context.Context, tx *gorm.DB, progress *types.LearningProgress) error
	GetByUserModule(ctx context.Context, tx *gorm.DB, userID uuid.UUID, moduleID int64) (*types.LearningProgress, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.LearningProgress, error)
	ListByUserModules(ctx context.Context, tx *gorm.DB, userID uuid.UUID, moduleIDs []int64) ([]*types.LearningProgress, error)
}

type learningProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningProgressRepo(db *gorm.DB, baseLog *logger.Logger) LearningProgressRepo {
	repoLog := baseLog.With("repo", "LearningProgressRepo")
	return &learningProgressRepo{db: db, log: repoLog}
}

func (pr *learningProgressRepo) Create(ctx context.Context, tx *gorm.DB, progress *types.LearningProgress) (*types.LearningProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if err := transaction.WithContext(ctx).Create(progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}

func (pr *learningProgressRepo) Save(ctx context.Context, tx *gorm.DB, progress *types.LearningProgress) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).Save(progress).Error
}

func (pr *learningProgressRepo) GetByUserModule(ctx context.Context, tx *gorm.DB, userID uuid.UUID, moduleID int64) (*types.LearningProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var result types.LearningProgress
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND module_id = ?", userID, moduleID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *learningProgressRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.LearningProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.LearningProgress
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *learningProgressRepo) ListByUserModules(ctx context.Context, tx *gorm.DB, userID uuid.UUID, moduleIDs []int64) ([]*types.LearningProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.LearningProgress
	if len(moduleIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND module_id IN ?", userID, moduleIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

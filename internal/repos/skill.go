package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/saktilink/edge-backend/internal/logger"
	"github.com/saktilink/edge-backend/internal/types"
)

type SkillRepo interface {
	Create(ctx context.Context, tx *gorm.DB, skill *types.Skill) (*types.Skill, error)
	CreateBatch(ctx context.Context, tx *gorm.DB, skills []*types.Skill) ([]*types.Skill, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Skill, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, skillIDs []int64) ([]*types.Skill, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type skillRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSkillRepo(db *gorm.DB, baseLog *logger.Logger) SkillRepo {
	repoLog := baseLog.With("repo", "SkillRepo")
	return &skillRepo{db: db, log: repoLog}
}

func (sr *skillRepo) Create(ctx context.Context, tx *gorm.DB, skill *types.Skill) (*types.Skill, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if err := transaction.WithContext(ctx).Create(skill).Error; err != nil {
		return nil, err
	}
	return skill, nil
}

func (sr *skillRepo) CreateBatch(ctx context.Context, tx *gorm.DB, skills []*types.Skill) ([]*types.Skill, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(skills) == 0 {
		return []*types.Skill{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}

func (sr *skillRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Skill, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var result types.Skill
	err := transaction.WithContext(ctx).
		Where("name = ?", name).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *skillRepo) GetByIDs(ctx context.Context, tx *gorm.DB, skillIDs []int64) ([]*types.Skill, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.Skill
	if len(skillIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", skillIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *skillRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Skill{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

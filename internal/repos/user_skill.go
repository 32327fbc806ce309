package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/saktilink/edge-backend/internal/logger"
	"github.com/saktilink/edge-backend/internal/types"
)

type UserSkillRepo interface {
	Create(ctx context.Context, tx *gorm.DB, userSkill *types.UserSkill) (*types.UserSkill, error)
	ListActiveTeaching(ctx context.Context, tx *gorm.DB, limit int) ([]*types.UserSkill, error)
}

type userSkillRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserSkillRepo(db *gorm.DB, baseLog *logger.Logger) UserSkillRepo {
	repoLog := baseLog.With("repo", "UserSkillRepo")
	return &userSkillRepo{db: db, log: repoLog}
}

func (ur *userSkillRepo) Create(ctx context.Context, tx *gorm.DB, userSkill *types.UserSkill) (*types.UserSkill, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	if err := transaction.WithContext(ctx).Create(userSkill).Error; err != nil {
		return nil, err
	}
	return userSkill, nil
}

func (ur *userSkillRepo) ListActiveTeaching(ctx context.Context, tx *gorm.DB, limit int) ([]*types.UserSkill, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var results []*types.UserSkill
	q := transaction.WithContext(ctx).
		Where("skill_type = ? AND status = ?", types.SkillTypeTeach, types.SkillStatusActive)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

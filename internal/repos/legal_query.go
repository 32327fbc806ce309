package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/saktilink/edge-backend/internal/logger"
	"github.com/saktilink/edge-backend/internal/types"
)

type LegalQueryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, query *types.LegalQuery) (*types.LegalQuery, error)
}

type legalQueryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLegalQueryRepo(db *gorm.DB, baseLog *logger.Logger) LegalQueryRepo {
	repoLog := baseLog.With("repo", "LegalQueryRepo")
	return &legalQueryRepo{db: db, log: repoLog}
}

func (qr *legalQueryRepo) Create(ctx context.Context, tx *gorm.DB, query *types.LegalQuery) (*types.LegalQuery, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	if err := transaction.WithContext(ctx).Create(query).Error; err != nil {
		return nil, err
	}
	return query, nil
}

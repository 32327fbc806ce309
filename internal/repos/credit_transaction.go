package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saktilink/edge-backend/internal/logger"
	"github.com/saktilink/edge-backend/internal/types"
)

// CreditTransactionRepo is append-only: there is deliberately no
// update or delete method.
type CreditTransactionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, txn *types.CreditTransaction) (*types.CreditTransaction, error)
	SumByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CreditTransaction, error)
	CountByUserAndType(ctx context.Context, tx *gorm.DB, userID uuid.UUID, txType string) (int64, error)
}

type creditTransactionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCreditTransactionRepo(db *gorm.DB, baseLog *logger.Logger) CreditTransactionRepo {
	repoLog := baseLog.With("repo", "CreditTransactionRepo")
	return &creditTransactionRepo{db: db, log: repoLog}
}

func (cr *creditTransactionRepo) Create(ctx context.Context, tx *gorm.DB, txn *types.CreditTransaction) (*types.CreditTransaction, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if err := transaction.WithContext(ctx).Create(txn).Error; err != nil {
		return nil, err
	}
	return txn, nil
}

func (cr *creditTransactionRepo) SumByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var total *int64
	err := transaction.WithContext(ctx).
		Model(&types.CreditTransaction{}).
		Where("user_id = ?", userID).
		Select("SUM(amount)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

func (cr *creditTransactionRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CreditTransaction, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.CreditTransaction
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *creditTransactionRepo) CountByUserAndType(ctx context.Context, tx *gorm.DB, userID uuid.UUID, txType string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.CreditTransaction{}).
		Where("user_id = ? AND transaction_type = ?", userID, txType).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

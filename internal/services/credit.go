package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saktilink/edge-backend/internal/logger"
	"github.com/saktilink/edge-backend/internal/repos"
	"github.com/saktilink/edge-backend/internal/types"
)

// CreditService fronts the append-only time-bank ledger. Balance is
// always computed as the sum of transaction amounts; there is no
// cached balance column to drift.
type CreditService interface {
	GetBalance(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	History(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CreditTransaction, error)
	Record(ctx context.Context, tx *gorm.DB, txn *types.CreditTransaction) error
	// LockUser serializes check-then-debit sequences for one user.
	// Callers must invoke the returned unlock.
	LockUser(userID uuid.UUID) func()
}

type creditService struct {
	db         *gorm.DB
	log        *logger.Logger
	creditRepo repos.CreditTransactionRepo
	userLocks  sync.Map
}

func NewCreditService(
	db *gorm.DB,
	baseLog *logger.Logger,
	creditRepo repos.CreditTransactionRepo,
) CreditService {
	serviceLog := baseLog.With("service", "CreditService")
	return &creditService{
		db:         db,
		log:        serviceLog,
		creditRepo: creditRepo,
	}
}

func (cs *creditService) GetBalance(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	balance, err := cs.creditRepo.SumByUser(ctx, tx, userID)
	if err != nil {
		return 0, fmt.Errorf("sum credits: %w", err)
	}
	return balance, nil
}

func (cs *creditService) History(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CreditTransaction, error) {
	return cs.creditRepo.ListByUser(ctx, tx, userID)
}

func (cs *creditService) Record(ctx context.Context, tx *gorm.DB, txn *types.CreditTransaction) error {
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now()
	}
	if _, err := cs.creditRepo.Create(ctx, tx, txn); err != nil {
		return fmt.Errorf("record credit transaction: %w", err)
	}
	return nil
}

func (cs *creditService) LockUser(userID uuid.UUID) func() {
	val, _ := cs.userLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := val.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saktilink/edge-backend/internal/logger"
	"github.com/saktilink/edge-backend/internal/repos"
	"github.com/saktilink/edge-backend/internal/types"
	"github.com/saktilink/edge-backend/internal/utils"
)

type UserService interface {
	// GetOrCreateByFingerprint resolves the caller's anonymous account.
	// First contact creates the user and grants welcome credits in the
	// same transaction. The bool reports whether a user was created.
	GetOrCreateByFingerprint(ctx context.Context, deviceFingerprint, language string) (*types.User, bool, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error)
	TouchLastActive(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type userService struct {
	db             *gorm.DB
	log            *logger.Logger
	userRepo       repos.UserRepo
	creditSvc      CreditService
	initialCredits int64
}

func NewUserService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	creditSvc CreditService,
) UserService {
	serviceLog := baseLog.With("service", "UserService")
	return &userService{
		db:             db,
		log:            serviceLog,
		userRepo:       userRepo,
		creditSvc:      creditSvc,
		initialCredits: int64(utils.GetEnvAsInt("INITIAL_CREDITS", 10, serviceLog)),
	}
}

// FingerprintHash is the only identity the store ever sees; the raw
// device fingerprint is never persisted.
func FingerprintHash(deviceFingerprint string) string {
	sum := sha256.Sum256([]byte(deviceFingerprint))
	return hex.EncodeToString(sum[:])
}

func (us *userService) GetOrCreateByFingerprint(ctx context.Context, deviceFingerprint, language string) (*types.User, bool, error) {
	if deviceFingerprint == "" {
		return nil, false, errors.New("device fingerprint required")
	}
	hash := FingerprintHash(deviceFingerprint)

	existing, err := us.userRepo.GetByFingerprint(ctx, nil, hash)
	if err != nil {
		return nil, false, fmt.Errorf("lookup user: %w", err)
	}
	if existing != nil {
		return existing, false, nil
	}

	if language == "" {
		language = fallbackLanguage
	}
	now := time.Now()
	user := &types.User{
		ID:                 uuid.New(),
		DeviceFingerprint:  hash,
		LanguagePreference: language,
		IsActive:           true,
		LastActive:         now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err = us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := us.userRepo.Create(ctx, tx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return us.creditSvc.Record(ctx, tx, &types.CreditTransaction{
			UserID:          user.ID,
			Amount:          us.initialCredits,
			TransactionType: types.TxInitial,
			Description:     "Welcome credits",
		})
	})
	if err != nil {
		// A concurrent first contact may have won the unique-index race.
		if again, lookupErr := us.userRepo.GetByFingerprint(ctx, nil, hash); lookupErr == nil && again != nil {
			return again, false, nil
		}
		return nil, false, err
	}

	us.log.Info("Created new user", "user_id", user.ID.String())
	return user, true, nil
}

func (us *userService) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	user, err := us.userRepo.GetByID(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (us *userService) TouchLastActive(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	return us.userRepo.UpdateLastActive(ctx, tx, userID, time.Now())
}

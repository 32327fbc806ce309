package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saktilink/edge-backend/internal/logger"
	"github.com/saktilink/edge-backend/internal/repos"
	"github.com/saktilink/edge-backend/internal/types"
	"github.com/saktilink/edge-backend/internal/utils"
)

const suggestLimit = 3

type ModuleStatus struct {
	Module   *types.LearningModule `json:"module"`
	Status   string                `json:"status"`
	Progress float64               `json:"progress_percentage"`
}

type StartModuleResult struct {
	Module         *types.LearningModule `json:"module"`
	CreditsCharged int64                 `json:"credits_charged"`
}

type CompleteModuleResult struct {
	CreditsEarned    int64 `json:"credits_earned"`
	AlreadyCompleted bool  `json:"already_completed"`
}

type LearningService interface {
	HandleIntent(ctx context.Context, userID uuid.UUID, transcript, language string) (string, error)
	ListModules(ctx context.Context, userID uuid.UUID, category, language string) ([]ModuleStatus, error)
	StartModule(ctx context.Context, userID uuid.UUID, moduleID int64) (*StartModuleResult, error)
	CompleteModule(ctx context.Context, userID uuid.UUID, moduleID int64) (*CompleteModuleResult, error)
}

type learningService struct {
	db              *gorm.DB
	log             *logger.Logger
	moduleRepo      repos.LearningModuleRepo
	progressRepo    repos.LearningProgressRepo
	creditSvc       CreditService
	completionBonus int64
}

func NewLearningService(
	db *gorm.DB,
	baseLog *logger.Logger,
	moduleRepo repos.LearningModuleRepo,
	progressRepo repos.LearningProgressRepo,
	creditSvc CreditService,
) LearningService {
	serviceLog := baseLog.With("service", "LearningService")
	return &learningService{
		db:              db,
		log:             serviceLog,
		moduleRepo:      moduleRepo,
		progressRepo:    progressRepo,
		creditSvc:       creditSvc,
		completionBonus: int64(utils.GetEnvAsInt("COMPLETION_BONUS", 2, serviceLog)),
	}
}

func (ls *learningService) HandleIntent(ctx context.Context, userID uuid.UUID, transcript, language string) (string, error) {
	category := detectLearningCategory(transcript)
	if category != "" {
		return ls.suggestModules(ctx, userID, category, language)
	}
	return ls.overview(ctx, userID, language)
}

func detectLearningCategory(transcript string) string {
	lower := strings.ToLower(transcript)
	switch {
	case strings.Contains(lower, "financial") || strings.Contains(transcript, "वित्तीय") || strings.Contains(transcript, "पैसा"):
		return types.CategoryFinancialLiteracy
	case strings.Contains(lower, "digital") || strings.Contains(transcript, "डिजिटल"):
		return types.CategoryDigitalSafety
	case strings.Contains(lower, "skill") || strings.Contains(transcript, "कौशल"):
		return types.CategoryVocationalSkills
	default:
		return ""
	}
}

func (ls *learningService) suggestModules(ctx context.Context, userID uuid.UUID, category, language string) (string, error) {
	statuses, err := ls.ListModules(ctx, userID, category, language)
	if err != nil {
		return "", err
	}

	parts := []string{categoryIntro(category, language)}
	listed := 0
	for _, st := range statuses {
		if st.Status == types.ProgressCompleted {
			continue
		}
		info := st.Module.Title
		if st.Module.DurationSeconds > 0 {
			info += fmt.Sprintf(" - %d मिनट", st.Module.DurationSeconds/60)
		}
		if st.Module.CreditCost > 0 {
			info += fmt.Sprintf(" - %d क्रेडिट", st.Module.CreditCost)
		}
		parts = append(parts, info)
		listed++
	}
	if listed == 0 {
		return localize(noModulesTemplates, language), nil
	}
	parts = append(parts, "कौनसा मॉड्यूल शुरू करना चाहेंगी?")
	return strings.Join(parts, " । "), nil
}

func (ls *learningService) overview(ctx context.Context, userID uuid.UUID, language string) (string, error) {
	credits, err := ls.creditSvc.GetBalance(ctx, nil, userID)
	if err != nil {
		return "", err
	}
	allProgress, err := ls.progressRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return "", err
	}
	completed, inProgress := 0, 0
	for _, p := range allProgress {
		switch p.Status {
		case types.ProgressCompleted:
			completed++
		case types.ProgressInProgress:
			inProgress++
		}
	}
	return fmt.Sprintf(
		"आपके पास %d क्रेडिट हैं। आपने %d मॉड्यूल पूरे किए हैं और %d चल रहे हैं। आप वित्तीय साक्षरता, डिजिटल सुरक्षा, या व्यावसायिक कौशल के बारे में सीख सकती हैं। आप क्या सीखना चाहेंगी?",
		credits, completed, inProgress,
	), nil
}

func (ls *learningService) ListModules(ctx context.Context, userID uuid.UUID, category, language string) ([]ModuleStatus, error) {
	if language == "" {
		language = fallbackLanguage
	}
	modules, err := ls.moduleRepo.ListActive(ctx, nil, category, language, suggestLimit)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	moduleIDs := make([]int64, 0, len(modules))
	for _, m := range modules {
		moduleIDs = append(moduleIDs, m.ID)
	}
	progress, err := ls.progressRepo.ListByUserModules(ctx, nil, userID, moduleIDs)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	progressByModule := make(map[int64]*types.LearningProgress, len(progress))
	for _, p := range progress {
		progressByModule[p.ModuleID] = p
	}

	statuses := make([]ModuleStatus, 0, len(modules))
	for _, m := range modules {
		st := ModuleStatus{Module: m, Status: types.ProgressNotStarted}
		if p, ok := progressByModule[m.ID]; ok {
			st.Status = p.Status
			st.Progress = p.ProgressPercentage
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}

// StartModule charges the module cost and marks progress in one
// transaction. The per-user lock keeps concurrent starts from both
// passing the balance check.
func (ls *learningService) StartModule(ctx context.Context, userID uuid.UUID, moduleID int64) (*StartModuleResult, error) {
	module, err := ls.moduleRepo.GetByID(ctx, nil, moduleID)
	if err != nil {
		return nil, fmt.Errorf("load module: %w", err)
	}
	if module == nil {
		return nil, ErrModuleNotFound
	}

	unlock := ls.creditSvc.LockUser(userID)
	defer unlock()

	err = ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		balance, err := ls.creditSvc.GetBalance(ctx, tx, userID)
		if err != nil {
			return err
		}
		if balance < module.CreditCost {
			return &ErrInsufficientCredits{Required: module.CreditCost, Available: balance}
		}

		if err := ls.creditSvc.Record(ctx, tx, &types.CreditTransaction{
			UserID:          userID,
			Amount:          -module.CreditCost,
			TransactionType: types.TxLearn,
			Description:     fmt.Sprintf("Started module: %s", module.Title),
			RelatedModuleID: &module.ID,
		}); err != nil {
			return err
		}

		progress, err := ls.progressRepo.GetByUserModule(ctx, tx, userID, moduleID)
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}
		now := time.Now()
		if progress == nil {
			progress = &types.LearningProgress{
				UserID:    userID,
				ModuleID:  moduleID,
				Status:    types.ProgressInProgress,
				StartedAt: &now,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if _, err := ls.progressRepo.Create(ctx, tx, progress); err != nil {
				return fmt.Errorf("create progress: %w", err)
			}
			return nil
		}
		progress.Status = types.ProgressInProgress
		progress.StartedAt = &now
		progress.UpdatedAt = now
		if err := ls.progressRepo.Save(ctx, tx, progress); err != nil {
			return fmt.Errorf("save progress: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &StartModuleResult{Module: module, CreditsCharged: module.CreditCost}, nil
}

// CompleteModule is idempotent: re-completing an already completed
// module never awards a second bonus.
func (ls *learningService) CompleteModule(ctx context.Context, userID uuid.UUID, moduleID int64) (*CompleteModuleResult, error) {
	unlock := ls.creditSvc.LockUser(userID)
	defer unlock()

	var result CompleteModuleResult
	err := ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		progress, err := ls.progressRepo.GetByUserModule(ctx, tx, userID, moduleID)
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}
		if progress == nil {
			return ErrProgressNotFound
		}
		if progress.Status == types.ProgressCompleted {
			result.AlreadyCompleted = true
			result.CreditsEarned = progress.CreditsEarned
			return nil
		}

		now := time.Now()
		progress.Status = types.ProgressCompleted
		progress.CompletedAt = &now
		progress.ProgressPercentage = 100
		progress.CreditsEarned = ls.completionBonus
		progress.UpdatedAt = now
		if err := ls.progressRepo.Save(ctx, tx, progress); err != nil {
			return fmt.Errorf("save progress: %w", err)
		}

		if ls.completionBonus > 0 {
			if err := ls.creditSvc.Record(ctx, tx, &types.CreditTransaction{
				UserID:          userID,
				Amount:          ls.completionBonus,
				TransactionType: types.TxBonus,
				Description:     fmt.Sprintf("Completed module: %d", moduleID),
				RelatedModuleID: &moduleID,
			}); err != nil {
				return err
			}
		}
		result.CreditsEarned = ls.completionBonus
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

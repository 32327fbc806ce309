package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/saktilink/edge-backend/internal/logger"
	"github.com/saktilink/edge-backend/internal/repos"
	"github.com/saktilink/edge-backend/internal/types"
	"github.com/saktilink/edge-backend/internal/utils"
)

const (
	skillListLimit      = 5
	skillVoiceListLimit = 3
)

type RegisterSkillResult struct {
	SkillID     int64 `json:"skill_id"`
	UserSkillID int64 `json:"user_skill_id"`
}

type TeachingSessionResult struct {
	TeacherCredits int64 `json:"teacher_credits"`
	LearnerCredits int64 `json:"learner_credits"`
}

type MarketplaceEntry struct {
	SkillID        int64          `json:"skill_id"`
	SkillName      string         `json:"skill_name"`
	Category       string         `json:"category"`
	Proficiency    int            `json:"proficiency"`
	AvailableHours datatypes.JSON `json:"available_hours"`
}

type SkillService interface {
	HandleIntent(ctx context.Context, userID uuid.UUID, transcript, language string) (string, error)
	RegisterTeachSkill(ctx context.Context, userID uuid.UUID, skillName string, proficiency int) (*RegisterSkillResult, error)
	RegisterLearnSkill(ctx context.Context, userID uuid.UUID, skillID int64) (*RegisterSkillResult, error)
	CompleteTeachingSession(ctx context.Context, teacherID, learnerID uuid.UUID, skillID int64) (*TeachingSessionResult, error)
	Marketplace(ctx context.Context, language string) ([]MarketplaceEntry, error)
}

type skillService struct {
	db            *gorm.DB
	log           *logger.Logger
	skillRepo     repos.SkillRepo
	userSkillRepo repos.UserSkillRepo
	creditSvc     CreditService
	teachCredits  int64
	learnCredits  int64
}

func NewSkillService(
	db *gorm.DB,
	baseLog *logger.Logger,
	skillRepo repos.SkillRepo,
	userSkillRepo repos.UserSkillRepo,
	creditSvc CreditService,
) SkillService {
	serviceLog := baseLog.With("service", "SkillService")
	return &skillService{
		db:            db,
		log:           serviceLog,
		skillRepo:     skillRepo,
		userSkillRepo: userSkillRepo,
		creditSvc:     creditSvc,
		teachCredits:  int64(utils.GetEnvAsInt("TEACH_CREDITS", 5, serviceLog)),
		learnCredits:  int64(utils.GetEnvAsInt("LEARN_CREDITS", -3, serviceLog)),
	}
}

var (
	teachWords = []string{"teach", "सिखाना", "सिखा"}
	learnWords = []string{"learn", "सीखना", "सीख"}
)

func (ss *skillService) HandleIntent(ctx context.Context, userID uuid.UUID, transcript, language string) (string, error) {
	lower := strings.ToLower(transcript)

	if containsAny(lower, teachWords) {
		return localize(teachPromptTemplates, language), nil
	}
	if containsAny(lower, learnWords) {
		return ss.listTeachableSkills(ctx, language)
	}
	return localize(skillSwapIntroTemplates, language), nil
}

func (ss *skillService) listTeachableSkills(ctx context.Context, language string) (string, error) {
	teaching, err := ss.userSkillRepo.ListActiveTeaching(ctx, nil, skillListLimit)
	if err != nil {
		return "", fmt.Errorf("list teaching skills: %w", err)
	}
	if len(teaching) == 0 {
		return localize(noTeachingSkillsTemplates, language), nil
	}

	skillIDs := make([]int64, 0, len(teaching))
	seen := map[int64]bool{}
	for _, ts := range teaching {
		if !seen[ts.SkillID] {
			seen[ts.SkillID] = true
			skillIDs = append(skillIDs, ts.SkillID)
		}
	}
	skills, err := ss.skillRepo.GetByIDs(ctx, nil, skillIDs)
	if err != nil {
		return "", fmt.Errorf("load skills: %w", err)
	}
	byID := make(map[int64]*types.Skill, len(skills))
	for _, s := range skills {
		byID[s.ID] = s
	}

	names := make([]string, 0, skillVoiceListLimit)
	for _, ts := range teaching {
		if len(names) == skillVoiceListLimit {
			break
		}
		if s, ok := byID[ts.SkillID]; ok {
			names = append(names, s.Name)
		}
	}
	return fmt.Sprintf("ये कौशल सीखने के लिए उपलब्ध हैं: %s। कौनसा सीखना चाहेंगी?", strings.Join(names, ", ")), nil
}

// RegisterTeachSkill finds the skill by exact name or creates it as
// user contributed, then links the teacher.
func (ss *skillService) RegisterTeachSkill(ctx context.Context, userID uuid.UUID, skillName string, proficiency int) (*RegisterSkillResult, error) {
	skillName = strings.TrimSpace(skillName)
	if skillName == "" {
		return nil, fmt.Errorf("skill name required")
	}
	if proficiency < 1 {
		proficiency = 1
	}

	var result RegisterSkillResult
	err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		skill, err := ss.skillRepo.GetByName(ctx, tx, skillName)
		if err != nil {
			return fmt.Errorf("lookup skill: %w", err)
		}
		now := time.Now()
		if skill == nil {
			skill = &types.Skill{
				Name:      skillName,
				Category:  "user_contributed",
				Language:  fallbackLanguage,
				IsActive:  true,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if _, err := ss.skillRepo.Create(ctx, tx, skill); err != nil {
				return fmt.Errorf("create skill: %w", err)
			}
		}

		userSkill := &types.UserSkill{
			UserID:           userID,
			SkillID:          skill.ID,
			SkillType:        types.SkillTypeTeach,
			ProficiencyLevel: proficiency,
			Status:           types.SkillStatusActive,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if _, err := ss.userSkillRepo.Create(ctx, tx, userSkill); err != nil {
			return fmt.Errorf("create user skill: %w", err)
		}
		result = RegisterSkillResult{SkillID: skill.ID, UserSkillID: userSkill.ID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (ss *skillService) RegisterLearnSkill(ctx context.Context, userID uuid.UUID, skillID int64) (*RegisterSkillResult, error) {
	skills, err := ss.skillRepo.GetByIDs(ctx, nil, []int64{skillID})
	if err != nil {
		return nil, fmt.Errorf("lookup skill: %w", err)
	}
	if len(skills) == 0 {
		return nil, fmt.Errorf("skill %d not found", skillID)
	}

	now := time.Now()
	userSkill := &types.UserSkill{
		UserID:    userID,
		SkillID:   skillID,
		SkillType: types.SkillTypeLearn,
		Status:    types.SkillStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := ss.userSkillRepo.Create(ctx, nil, userSkill); err != nil {
		return nil, fmt.Errorf("create user skill: %w", err)
	}
	return &RegisterSkillResult{SkillID: skillID, UserSkillID: userSkill.ID}, nil
}

// CompleteTeachingSession settles both sides of the session in one
// transaction: credit the teacher, debit the learner.
func (ss *skillService) CompleteTeachingSession(ctx context.Context, teacherID, learnerID uuid.UUID, skillID int64) (*TeachingSessionResult, error) {
	unlock := ss.creditSvc.LockUser(learnerID)
	defer unlock()

	err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ss.creditSvc.Record(ctx, tx, &types.CreditTransaction{
			UserID:          teacherID,
			Amount:          ss.teachCredits,
			TransactionType: types.TxTeach,
			Description:     fmt.Sprintf("Taught skill: %d", skillID),
			RelatedSkillID:  &skillID,
		}); err != nil {
			return err
		}
		return ss.creditSvc.Record(ctx, tx, &types.CreditTransaction{
			UserID:          learnerID,
			Amount:          ss.learnCredits,
			TransactionType: types.TxLearn,
			Description:     fmt.Sprintf("Learned skill: %d", skillID),
			RelatedSkillID:  &skillID,
		})
	})
	if err != nil {
		return nil, err
	}
	return &TeachingSessionResult{
		TeacherCredits: ss.teachCredits,
		LearnerCredits: ss.learnCredits,
	}, nil
}

func (ss *skillService) Marketplace(ctx context.Context, language string) ([]MarketplaceEntry, error) {
	teaching, err := ss.userSkillRepo.ListActiveTeaching(ctx, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list teaching skills: %w", err)
	}
	skillIDs := make([]int64, 0, len(teaching))
	for _, ts := range teaching {
		skillIDs = append(skillIDs, ts.SkillID)
	}
	skills, err := ss.skillRepo.GetByIDs(ctx, nil, skillIDs)
	if err != nil {
		return nil, fmt.Errorf("load skills: %w", err)
	}
	byID := make(map[int64]*types.Skill, len(skills))
	for _, s := range skills {
		byID[s.ID] = s
	}

	entries := make([]MarketplaceEntry, 0, len(teaching))
	for _, ts := range teaching {
		skill, ok := byID[ts.SkillID]
		if !ok {
			continue
		}
		entries = append(entries, MarketplaceEntry{
			SkillID:        skill.ID,
			SkillName:      skill.Name,
			Category:       skill.Category,
			Proficiency:    ts.ProficiencyLevel,
			AvailableHours: ts.AvailableHours,
		})
	}
	return entries, nil
}

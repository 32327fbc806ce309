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
)

const (
	gigListLimit         = 5
	gigVoiceListLimit    = 3
	applicationListLimit = 10
)

type ApplyResult struct {
	ApplicationID int64 `json:"application_id"`
}

type GigService interface {
	HandleIntent(ctx context.Context, userID uuid.UUID, transcript, language string) (string, error)
	// ListAvailable returns open, unexpired gigs the user has not
	// already applied to, newest first.
	ListAvailable(ctx context.Context, userID uuid.UUID) ([]*types.Gig, error)
	Apply(ctx context.Context, userID uuid.UUID, gigID int64) (*ApplyResult, error)
	ListApplications(ctx context.Context, userID uuid.UUID) ([]*types.GigApplication, error)
}

type gigService struct {
	db              *gorm.DB
	log             *logger.Logger
	gigRepo         repos.GigRepo
	applicationRepo repos.GigApplicationRepo
}

func NewGigService(
	db *gorm.DB,
	baseLog *logger.Logger,
	gigRepo repos.GigRepo,
	applicationRepo repos.GigApplicationRepo,
) GigService {
	serviceLog := baseLog.With("service", "GigService")
	return &gigService{
		db:              db,
		log:             serviceLog,
		gigRepo:         gigRepo,
		applicationRepo: applicationRepo,
	}
}

var (
	gigFindWords   = []string{"find", "खोजना", "ढूंढना", "काम"}
	gigStatusWords = []string{"my", "mera", "मेरा", "status"}
)

func (gs *gigService) HandleIntent(ctx context.Context, userID uuid.UUID, transcript, language string) (string, error) {
	lower := strings.ToLower(transcript)

	if containsAny(lower, gigFindWords) {
		gigs, err := gs.ListAvailable(ctx, userID)
		if err != nil {
			return "", err
		}
		if len(gigs) == 0 {
			return localize(noGigsTemplates, language), nil
		}
		return formatGigList(gigs, language), nil
	}

	if containsAny(lower, gigStatusWords) {
		apps, err := gs.ListApplications(ctx, userID)
		if err != nil {
			return "", err
		}
		return formatApplicationStatus(apps, language), nil
	}

	return localize(gigIntroTemplates, language), nil
}

func (gs *gigService) ListAvailable(ctx context.Context, userID uuid.UUID) ([]*types.Gig, error) {
	gigs, err := gs.gigRepo.ListOpen(ctx, nil, time.Now(), gigListLimit)
	if err != nil {
		return nil, fmt.Errorf("list gigs: %w", err)
	}
	available := make([]*types.Gig, 0, len(gigs))
	for _, gig := range gigs {
		applied, err := gs.applicationRepo.GetByUserGig(ctx, nil, userID, gig.ID)
		if err != nil {
			return nil, fmt.Errorf("check application: %w", err)
		}
		if applied != nil {
			continue
		}
		available = append(available, gig)
	}
	return available, nil
}

func (gs *gigService) Apply(ctx context.Context, userID uuid.UUID, gigID int64) (*ApplyResult, error) {
	gig, err := gs.gigRepo.GetByID(ctx, nil, gigID)
	if err != nil {
		return nil, fmt.Errorf("load gig: %w", err)
	}
	if gig == nil {
		return nil, ErrGigNotFound
	}

	existing, err := gs.applicationRepo.GetByUserGig(ctx, nil, userID, gigID)
	if err != nil {
		return nil, fmt.Errorf("check application: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyApplied
	}

	application := &types.GigApplication{
		UserID:    userID,
		GigID:     gigID,
		Status:    types.ApplicationPending,
		AppliedAt: time.Now(),
	}
	if _, err := gs.applicationRepo.Create(ctx, nil, application); err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}
	return &ApplyResult{ApplicationID: application.ID}, nil
}

func (gs *gigService) ListApplications(ctx context.Context, userID uuid.UUID) ([]*types.GigApplication, error) {
	return gs.applicationRepo.ListByUser(ctx, nil, userID, applicationListLimit)
}

func formatGigList(gigs []*types.Gig, language string) string {
	intro := map[string]string{"hi": "ये काम उपलब्ध हैं: "}
	items := make([]string, 0, gigVoiceListLimit)
	for _, g := range gigs {
		if len(items) == gigVoiceListLimit {
			break
		}
		items = append(items, fmt.Sprintf("%s - %.0f रुपये", g.Title, g.Payment))
	}
	return localize(intro, language) + strings.Join(items, ", ") + ". कौनसे काम में रुचि है?"
}

func formatApplicationStatus(apps []*types.GigApplication, language string) string {
	if len(apps) == 0 {
		return localize(noApplicationsTemplates, language)
	}
	pending, accepted := 0, 0
	for _, a := range apps {
		switch a.Status {
		case types.ApplicationPending:
			pending++
		case types.ApplicationAccepted:
			accepted++
		}
	}
	return fmt.Sprintf("आपके %d आवेदन लंबित हैं और %d स्वीकार किए गए हैं।", pending, accepted)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

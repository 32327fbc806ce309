package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/saktilink/edge-backend/internal/logger"
	"github.com/saktilink/edge-backend/internal/repos"
	"github.com/saktilink/edge-backend/internal/types"
)

// SeedService loads the bundled starter content (modules, skills,
// gigs, legal topics) from YAML files. Each table is seeded only when
// empty, so repeated boots never duplicate rows.
type SeedService interface {
	Run(ctx context.Context, dir string) error
}

type seedService struct {
	db         *gorm.DB
	log        *logger.Logger
	moduleRepo repos.LearningModuleRepo
	skillRepo  repos.SkillRepo
	gigRepo    repos.GigRepo
	topicRepo  repos.LegalTopicRepo
}

func NewSeedService(
	db *gorm.DB,
	baseLog *logger.Logger,
	moduleRepo repos.LearningModuleRepo,
	skillRepo repos.SkillRepo,
	gigRepo repos.GigRepo,
	topicRepo repos.LegalTopicRepo,
) SeedService {
	serviceLog := baseLog.With("service", "SeedService")
	return &seedService{
		db:         db,
		log:        serviceLog,
		moduleRepo: moduleRepo,
		skillRepo:  skillRepo,
		gigRepo:    gigRepo,
		topicRepo:  topicRepo,
	}
}

type moduleSeed struct {
	Title           string   `yaml:"title"`
	Description     string   `yaml:"description"`
	Category        string   `yaml:"category"`
	Language        string   `yaml:"language"`
	DurationSeconds int      `yaml:"duration_seconds"`
	AudioPath       string   `yaml:"audio_path"`
	Transcript      string   `yaml:"transcript"`
	DifficultyLevel int      `yaml:"difficulty_level"`
	CreditCost      int64    `yaml:"credit_cost"`
	Tags            []string `yaml:"tags"`
}

type skillSeed struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	Language    string `yaml:"language"`
}

type gigSeed struct {
	Title           string   `yaml:"title"`
	Description     string   `yaml:"description"`
	Category        string   `yaml:"category"`
	Location        string   `yaml:"location"`
	DurationHours   int      `yaml:"duration_hours"`
	Payment         float64  `yaml:"payment"`
	RequiredSkills  []string `yaml:"required_skills"`
	TimeFlexibility string   `yaml:"time_flexibility"`
	ExpiresInDays   int      `yaml:"expires_in_days"`
}

type topicSeed struct {
	Name             string   `yaml:"name"`
	Description      string   `yaml:"description"`
	Category         string   `yaml:"category"`
	Language         string   `yaml:"language"`
	Content          string   `yaml:"content"`
	RelatedLaws      []string `yaml:"related_laws"`
	HelpfulResources []string `yaml:"helpful_resources"`
}

func (ss *seedService) Run(ctx context.Context, dir string) error {
	if dir == "" {
		ss.log.Debug("No seed directory configured, skipping seeding")
		return nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		ss.log.Warn("Seed directory not found, skipping seeding", "dir", dir)
		return nil
	}

	if err := ss.seedModules(ctx, filepath.Join(dir, "learning_modules.yaml")); err != nil {
		return err
	}
	if err := ss.seedSkills(ctx, filepath.Join(dir, "skills.yaml")); err != nil {
		return err
	}
	if err := ss.seedGigs(ctx, filepath.Join(dir, "gigs.yaml")); err != nil {
		return err
	}
	if err := ss.seedTopics(ctx, filepath.Join(dir, "legal_topics.yaml")); err != nil {
		return err
	}
	return nil
}

func (ss *seedService) seedModules(ctx context.Context, path string) error {
	var seeds []moduleSeed
	ok, err := loadSeedFile(path, &seeds)
	if err != nil || !ok {
		return err
	}
	count, err := ss.moduleRepo.Count(ctx, nil)
	if err != nil {
		return fmt.Errorf("count modules: %w", err)
	}
	if count > 0 {
		ss.log.Debug("Learning modules already seeded", "count", count)
		return nil
	}

	now := time.Now()
	modules := make([]*types.LearningModule, 0, len(seeds))
	for _, s := range seeds {
		modules = append(modules, &types.LearningModule{
			Title:           s.Title,
			Description:     s.Description,
			Category:        s.Category,
			Language:        defaultLang(s.Language),
			DurationSeconds: s.DurationSeconds,
			AudioPath:       s.AudioPath,
			Transcript:      s.Transcript,
			DifficultyLevel: maxInt(s.DifficultyLevel, 1),
			CreditCost:      s.CreditCost,
			Tags:            toJSON(s.Tags),
			IsActive:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}
	if _, err := ss.moduleRepo.Create(ctx, nil, modules); err != nil {
		return fmt.Errorf("seed modules: %w", err)
	}
	ss.log.Info("Seeded learning modules", "count", len(modules))
	return nil
}

func (ss *seedService) seedSkills(ctx context.Context, path string) error {
	var seeds []skillSeed
	ok, err := loadSeedFile(path, &seeds)
	if err != nil || !ok {
		return err
	}
	count, err := ss.skillRepo.Count(ctx, nil)
	if err != nil {
		return fmt.Errorf("count skills: %w", err)
	}
	if count > 0 {
		ss.log.Debug("Skills already seeded", "count", count)
		return nil
	}

	now := time.Now()
	skills := make([]*types.Skill, 0, len(seeds))
	for _, s := range seeds {
		skills = append(skills, &types.Skill{
			Name:        s.Name,
			Description: s.Description,
			Category:    s.Category,
			Language:    defaultLang(s.Language),
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	if _, err := ss.skillRepo.CreateBatch(ctx, nil, skills); err != nil {
		return fmt.Errorf("seed skills: %w", err)
	}
	ss.log.Info("Seeded skills", "count", len(skills))
	return nil
}

func (ss *seedService) seedGigs(ctx context.Context, path string) error {
	var seeds []gigSeed
	ok, err := loadSeedFile(path, &seeds)
	if err != nil || !ok {
		return err
	}
	count, err := ss.gigRepo.Count(ctx, nil)
	if err != nil {
		return fmt.Errorf("count gigs: %w", err)
	}
	if count > 0 {
		ss.log.Debug("Gigs already seeded", "count", count)
		return nil
	}

	now := time.Now()
	gigs := make([]*types.Gig, 0, len(seeds))
	for _, s := range seeds {
		gig := &types.Gig{
			Title:           s.Title,
			Description:     s.Description,
			Category:        s.Category,
			Location:        s.Location,
			DurationHours:   s.DurationHours,
			Payment:         s.Payment,
			PaymentCurrency: "INR",
			RequiredSkills:  toJSON(s.RequiredSkills),
			TimeFlexibility: s.TimeFlexibility,
			Status:          types.GigOpen,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if s.ExpiresInDays > 0 {
			expiry := now.Add(time.Duration(s.ExpiresInDays) * 24 * time.Hour)
			gig.ExpiresAt = &expiry
		}
		gigs = append(gigs, gig)
	}
	if _, err := ss.gigRepo.Create(ctx, nil, gigs); err != nil {
		return fmt.Errorf("seed gigs: %w", err)
	}
	ss.log.Info("Seeded gigs", "count", len(gigs))
	return nil
}

func (ss *seedService) seedTopics(ctx context.Context, path string) error {
	var seeds []topicSeed
	ok, err := loadSeedFile(path, &seeds)
	if err != nil || !ok {
		return err
	}
	count, err := ss.topicRepo.Count(ctx, nil)
	if err != nil {
		return fmt.Errorf("count legal topics: %w", err)
	}
	if count > 0 {
		ss.log.Debug("Legal topics already seeded", "count", count)
		return nil
	}

	now := time.Now()
	topics := make([]*types.LegalTopic, 0, len(seeds))
	for _, s := range seeds {
		topics = append(topics, &types.LegalTopic{
			Name:             s.Name,
			Description:      s.Description,
			Category:         s.Category,
			Language:         defaultLang(s.Language),
			Content:          s.Content,
			RelatedLaws:      toJSON(s.RelatedLaws),
			HelpfulResources: toJSON(s.HelpfulResources),
			IsActive:         true,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	}
	if _, err := ss.topicRepo.Create(ctx, nil, topics); err != nil {
		return fmt.Errorf("seed legal topics: %w", err)
	}
	ss.log.Info("Seeded legal topics", "count", len(topics))
	return nil
}

// loadSeedFile reports (false, nil) when the file is absent so missing
// seed files are not an error.
func loadSeedFile(path string, out interface{}) (bool, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read seed file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return true, nil
}

func toJSON(values []string) datatypes.JSON {
	if len(values) == 0 {
		return datatypes.JSON([]byte("[]"))
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}

func defaultLang(lang string) string {
	if lang == "" {
		return fallbackLanguage
	}
	return lang
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

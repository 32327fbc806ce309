package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/saktilink/edge-backend/internal/repos"
	"github.com/saktilink/edge-backend/internal/types"
)

const moduleSeedYAML = `
- title: "बेसिक बैंकिंग और बचत"
  description: "बैंक खाता कैसे खोलें और पैसे बचाएं"
  category: financial_literacy
  language: hi
  duration_seconds: 120
  credit_cost: 3
  tags: [banking, savings, financial]
- title: "डिजिटल भुगतान की सुरक्षा"
  category: digital_safety
  language: hi
  duration_seconds: 120
  credit_cost: 3
`

const skillSeedYAML = `
- name: "सिलाई"
  description: "कपड़े सिलना"
  category: crafts
  language: hi
- name: "खाना बनाना"
  category: cooking
  language: hi
`

const gigSeedYAML = `
- title: "कपड़े सिलने का काम"
  description: "10 सूट सिलने हैं"
  category: artisan
  location: "रायबरेली"
  duration_hours: 8
  payment: 500
  required_skills: ["सिलाई"]
  time_flexibility: flexible
  expires_in_days: 7
`

const topicSeedYAML = `
- name: "न्यूनतम मजदूरी"
  category: labor_rights
  language: hi
  content: "हर काम करने वाली महिला को न्यूनतम मजदूरी पाने का अधिकार है।"
  related_laws: ["Minimum Wages Act, 1948"]
  helpful_resources: ["Labour Department Helpline: 1800-123-4567"]
`

func newSeedFixture(t *testing.T) (*gorm.DB, SeedService) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger()
	svc := NewSeedService(
		db, log,
		repos.NewLearningModuleRepo(db, log),
		repos.NewSkillRepo(db, log),
		repos.NewGigRepo(db, log),
		repos.NewLegalTopicRepo(db, log),
	)
	return db, svc
}

func writeSeedDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"learning_modules.yaml": moduleSeedYAML,
		"skills.yaml":           skillSeedYAML,
		"gigs.yaml":             gigSeedYAML,
		"legal_topics.yaml":     topicSeedYAML,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write seed file %s: %v", name, err)
		}
	}
	return dir
}

func TestSeedLoadsAllTables(t *testing.T) {
	db, svc := newSeedFixture(t)
	dir := writeSeedDir(t)

	if err := svc.Run(context.Background(), dir); err != nil {
		t.Fatalf("Run: %v", err)
	}

	counts := map[string]int64{}
	for name, model := range map[string]interface{}{
		"modules": &types.LearningModule{},
		"skills":  &types.Skill{},
		"gigs":    &types.Gig{},
		"topics":  &types.LegalTopic{},
	} {
		var c int64
		if err := db.Model(model).Count(&c).Error; err != nil {
			t.Fatalf("count %s: %v", name, err)
		}
		counts[name] = c
	}
	if counts["modules"] != 2 || counts["skills"] != 2 || counts["gigs"] != 1 || counts["topics"] != 1 {
		t.Fatalf("seed counts=%v", counts)
	}

	var gig types.Gig
	if err := db.First(&gig).Error; err != nil {
		t.Fatalf("load gig: %v", err)
	}
	if gig.Status != types.GigOpen {
		t.Fatalf("gig status=%q, want open", gig.Status)
	}
	if gig.ExpiresAt == nil {
		t.Fatal("gig expiry not set")
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	db, svc := newSeedFixture(t)
	dir := writeSeedDir(t)
	ctx := context.Background()

	if err := svc.Run(ctx, dir); err != nil {
		t.Fatalf("Run (first): %v", err)
	}
	if err := svc.Run(ctx, dir); err != nil {
		t.Fatalf("Run (second): %v", err)
	}

	var count int64
	if err := db.Model(&types.LearningModule{}).Count(&count).Error; err != nil {
		t.Fatalf("count modules: %v", err)
	}
	if count != 2 {
		t.Fatalf("modules after reseed=%d, want 2", count)
	}
}

func TestSeedSkipsMissingDirAndFiles(t *testing.T) {
	_, svc := newSeedFixture(t)
	ctx := context.Background()

	if err := svc.Run(ctx, ""); err != nil {
		t.Fatalf("Run with empty dir: %v", err)
	}
	if err := svc.Run(ctx, "/nonexistent/seed/dir"); err != nil {
		t.Fatalf("Run with missing dir: %v", err)
	}

	// A directory with no seed files is also fine.
	if err := svc.Run(ctx, t.TempDir()); err != nil {
		t.Fatalf("Run with empty seed dir: %v", err)
	}
}

package services

import (
	"context"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/saktilink/edge-backend/internal/repos"
	"github.com/saktilink/edge-backend/internal/types"
)

func newSkillFixture(t *testing.T) (*gorm.DB, SkillService, CreditService) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger()
	creditSvc := NewCreditService(db, log, repos.NewCreditTransactionRepo(db, log))
	svc := NewSkillService(
		db, log,
		repos.NewSkillRepo(db, log),
		repos.NewUserSkillRepo(db, log),
		creditSvc,
	)
	return db, svc, creditSvc
}

func TestRegisterTeachSkillCreatesThenReuses(t *testing.T) {
	db, svc, _ := newSkillFixture(t)
	teacherA := createTestUser(t, db)
	teacherB := createTestUser(t, db)
	ctx := context.Background()

	first, err := svc.RegisterTeachSkill(ctx, teacherA.ID, "सिलाई", 3)
	if err != nil {
		t.Fatalf("RegisterTeachSkill: %v", err)
	}
	second, err := svc.RegisterTeachSkill(ctx, teacherB.ID, "सिलाई", 2)
	if err != nil {
		t.Fatalf("RegisterTeachSkill (reuse): %v", err)
	}
	if first.SkillID != second.SkillID {
		t.Fatalf("skill recreated: %d vs %d", first.SkillID, second.SkillID)
	}

	var skillCount int64
	if err := db.Model(&types.Skill{}).Where("name = ?", "सिलाई").Count(&skillCount).Error; err != nil {
		t.Fatalf("count skills: %v", err)
	}
	if skillCount != 1 {
		t.Fatalf("skill rows=%d, want 1", skillCount)
	}

	var userSkillCount int64
	if err := db.Model(&types.UserSkill{}).Where("skill_id = ?", first.SkillID).Count(&userSkillCount).Error; err != nil {
		t.Fatalf("count user skills: %v", err)
	}
	if userSkillCount != 2 {
		t.Fatalf("user skill rows=%d, want 2", userSkillCount)
	}
}

func TestRegisterLearnSkillRequiresExistingSkill(t *testing.T) {
	db, svc, _ := newSkillFixture(t)
	user := createTestUser(t, db)

	if _, err := svc.RegisterLearnSkill(context.Background(), user.ID, 777); err == nil {
		t.Fatal("RegisterLearnSkill with unknown skill succeeded")
	}
}

func TestCompleteTeachingSessionMovesCredits(t *testing.T) {
	db, svc, creditSvc := newSkillFixture(t)
	teacher := createTestUser(t, db)
	learner := createTestUser(t, db)
	ctx := context.Background()

	grantCredits(t, creditSvc, learner, 10)

	reg, err := svc.RegisterTeachSkill(ctx, teacher.ID, "खाना बनाना", 4)
	if err != nil {
		t.Fatalf("RegisterTeachSkill: %v", err)
	}

	result, err := svc.CompleteTeachingSession(ctx, teacher.ID, learner.ID, reg.SkillID)
	if err != nil {
		t.Fatalf("CompleteTeachingSession: %v", err)
	}
	if result.TeacherCredits != 5 {
		t.Fatalf("TeacherCredits=%d, want 5", result.TeacherCredits)
	}
	if result.LearnerCredits != -3 {
		t.Fatalf("LearnerCredits=%d, want -3", result.LearnerCredits)
	}

	teacherBalance, err := creditSvc.GetBalance(ctx, nil, teacher.ID)
	if err != nil {
		t.Fatalf("GetBalance(teacher): %v", err)
	}
	if teacherBalance != 5 {
		t.Fatalf("teacher balance=%d, want 5", teacherBalance)
	}
	learnerBalance, err := creditSvc.GetBalance(ctx, nil, learner.ID)
	if err != nil {
		t.Fatalf("GetBalance(learner): %v", err)
	}
	if learnerBalance != 7 {
		t.Fatalf("learner balance=%d, want 7", learnerBalance)
	}
}

func TestSkillIntentRouting(t *testing.T) {
	db, svc, _ := newSkillFixture(t)
	user := createTestUser(t, db)
	ctx := context.Background()

	text, err := svc.HandleIntent(ctx, user.ID, "मैं सिलाई सिखाना चाहती हूँ", "hi")
	if err != nil {
		t.Fatalf("HandleIntent(teach): %v", err)
	}
	if text != teachPromptTemplates["hi"] {
		t.Fatalf("teach intent got %q", text)
	}

	text, err = svc.HandleIntent(ctx, user.ID, "मुझे कुछ सीखना है", "hi")
	if err != nil {
		t.Fatalf("HandleIntent(learn): %v", err)
	}
	if text != noTeachingSkillsTemplates["hi"] {
		t.Fatalf("learn intent with empty marketplace got %q", text)
	}

	text, err = svc.HandleIntent(ctx, user.ID, "हुनर", "hi")
	if err != nil {
		t.Fatalf("HandleIntent(intro): %v", err)
	}
	if text != skillSwapIntroTemplates["hi"] {
		t.Fatalf("intro intent got %q", text)
	}
}

func TestSkillIntentListsTeachableSkills(t *testing.T) {
	db, svc, _ := newSkillFixture(t)
	teacher := createTestUser(t, db)
	learner := createTestUser(t, db)
	ctx := context.Background()

	if _, err := svc.RegisterTeachSkill(ctx, teacher.ID, "कढ़ाई", 3); err != nil {
		t.Fatalf("RegisterTeachSkill: %v", err)
	}

	text, err := svc.HandleIntent(ctx, learner.ID, "मुझे सीखना है", "hi")
	if err != nil {
		t.Fatalf("HandleIntent: %v", err)
	}
	if !strings.Contains(text, "कढ़ाई") {
		t.Fatalf("skill list missing registered skill: %q", text)
	}
}

func TestMarketplaceListsActiveTeaching(t *testing.T) {
	db, svc, _ := newSkillFixture(t)
	teacher := createTestUser(t, db)
	ctx := context.Background()

	reg, err := svc.RegisterTeachSkill(ctx, teacher.ID, "बुनाई", 2)
	if err != nil {
		t.Fatalf("RegisterTeachSkill: %v", err)
	}

	entries, err := svc.Marketplace(ctx, "hi")
	if err != nil {
		t.Fatalf("Marketplace: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries=%d, want 1", len(entries))
	}
	if entries[0].SkillID != reg.SkillID || entries[0].SkillName != "बुनाई" || entries[0].Proficiency != 2 {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
}

package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/saktilink/edge-backend/internal/repos"
	"github.com/saktilink/edge-backend/internal/types"
)

func newLearningFixture(t *testing.T) (*gorm.DB, LearningService, CreditService) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger()
	creditSvc := NewCreditService(db, log, repos.NewCreditTransactionRepo(db, log))
	learningSvc := NewLearningService(
		db, log,
		repos.NewLearningModuleRepo(db, log),
		repos.NewLearningProgressRepo(db, log),
		creditSvc,
	)
	return db, learningSvc, creditSvc
}

func createTestModule(t *testing.T, db *gorm.DB, cost int64) *types.LearningModule {
	t.Helper()
	now := time.Now()
	module := &types.LearningModule{
		Title:           "बचत की शुरुआत",
		Category:        types.CategoryFinancialLiteracy,
		Language:        "hi",
		DurationSeconds: 120,
		CreditCost:      cost,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := db.Create(module).Error; err != nil {
		t.Fatalf("create test module: %v", err)
	}
	return module
}

func grantCredits(t *testing.T, svc CreditService, user *types.User, amount int64) {
	t.Helper()
	if err := svc.Record(context.Background(), nil, &types.CreditTransaction{
		UserID:          user.ID,
		Amount:          amount,
		TransactionType: types.TxInitial,
	}); err != nil {
		t.Fatalf("grant credits: %v", err)
	}
}

func TestStartModuleDebitsAndTracksProgress(t *testing.T) {
	db, svc, creditSvc := newLearningFixture(t)
	user := createTestUser(t, db)
	module := createTestModule(t, db, 3)
	grantCredits(t, creditSvc, user, 10)
	ctx := context.Background()

	result, err := svc.StartModule(ctx, user.ID, module.ID)
	if err != nil {
		t.Fatalf("StartModule: %v", err)
	}
	if result.CreditsCharged != 3 {
		t.Fatalf("CreditsCharged=%d, want 3", result.CreditsCharged)
	}

	balance, err := creditSvc.GetBalance(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	if balance != 7 {
		t.Fatalf("balance after start=%d, want 7", balance)
	}

	var progress types.LearningProgress
	if err := db.Where("user_id = ? AND module_id = ?", user.ID, module.ID).First(&progress).Error; err != nil {
		t.Fatalf("load progress: %v", err)
	}
	if progress.Status != types.ProgressInProgress {
		t.Fatalf("progress status=%q, want %q", progress.Status, types.ProgressInProgress)
	}
	if progress.StartedAt == nil {
		t.Fatal("StartedAt not set")
	}
}

func TestStartModuleInsufficientCredits(t *testing.T) {
	db, svc, creditSvc := newLearningFixture(t)
	user := createTestUser(t, db)
	module := createTestModule(t, db, 5)
	grantCredits(t, creditSvc, user, 2)
	ctx := context.Background()

	_, err := svc.StartModule(ctx, user.ID, module.ID)
	ice, ok := IsInsufficientCredits(err)
	if !ok {
		t.Fatalf("StartModule error=%v, want ErrInsufficientCredits", err)
	}
	if ice.Required != 5 || ice.Available != 2 {
		t.Fatalf("ErrInsufficientCredits{%d,%d}, want {5,2}", ice.Required, ice.Available)
	}

	// The failed start must leave the ledger untouched.
	balance, err := creditSvc.GetBalance(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	if balance != 2 {
		t.Fatalf("balance after failed start=%d, want 2", balance)
	}
}

func TestStartModuleUnknownModule(t *testing.T) {
	db, svc, _ := newLearningFixture(t)
	user := createTestUser(t, db)

	_, err := svc.StartModule(context.Background(), user.ID, 9999)
	if !errors.Is(err, ErrModuleNotFound) {
		t.Fatalf("StartModule error=%v, want ErrModuleNotFound", err)
	}
}

func TestConcurrentStartsNeverOverdraw(t *testing.T) {
	db, svc, creditSvc := newLearningFixture(t)
	user := createTestUser(t, db)
	module := createTestModule(t, db, 4)
	grantCredits(t, creditSvc, user, 10)
	ctx := context.Background()

	const attempts = 6
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.StartModule(ctx, user.ID, module.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else if _, ok := IsInsufficientCredits(err); !ok {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 2 {
		t.Fatalf("succeeded=%d, want 2 (10 credits / cost 4)", succeeded)
	}

	balance, err := creditSvc.GetBalance(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	if balance < 0 {
		t.Fatalf("balance went negative: %d", balance)
	}
	if balance != 2 {
		t.Fatalf("balance=%d, want 2", balance)
	}
}

func TestCompleteModuleIdempotent(t *testing.T) {
	db, svc, creditSvc := newLearningFixture(t)
	user := createTestUser(t, db)
	module := createTestModule(t, db, 3)
	grantCredits(t, creditSvc, user, 10)
	ctx := context.Background()

	if _, err := svc.StartModule(ctx, user.ID, module.ID); err != nil {
		t.Fatalf("StartModule: %v", err)
	}

	first, err := svc.CompleteModule(ctx, user.ID, module.ID)
	if err != nil {
		t.Fatalf("CompleteModule: %v", err)
	}
	if first.AlreadyCompleted {
		t.Fatal("first completion reported AlreadyCompleted")
	}
	if first.CreditsEarned != 2 {
		t.Fatalf("CreditsEarned=%d, want 2", first.CreditsEarned)
	}

	second, err := svc.CompleteModule(ctx, user.ID, module.ID)
	if err != nil {
		t.Fatalf("CompleteModule (repeat): %v", err)
	}
	if !second.AlreadyCompleted {
		t.Fatal("repeat completion not reported AlreadyCompleted")
	}

	// 10 - 3 + 2, and no second bonus.
	balance, err := creditSvc.GetBalance(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	if balance != 9 {
		t.Fatalf("balance=%d, want 9", balance)
	}
}

func TestCompleteModuleWithoutProgress(t *testing.T) {
	db, svc, _ := newLearningFixture(t)
	user := createTestUser(t, db)
	module := createTestModule(t, db, 3)

	_, err := svc.CompleteModule(context.Background(), user.ID, module.ID)
	if !errors.Is(err, ErrProgressNotFound) {
		t.Fatalf("CompleteModule error=%v, want ErrProgressNotFound", err)
	}
}

func TestSuggestModulesSkipsCompleted(t *testing.T) {
	db, svc, creditSvc := newLearningFixture(t)
	user := createTestUser(t, db)
	module := createTestModule(t, db, 3)
	grantCredits(t, creditSvc, user, 10)
	ctx := context.Background()

	if _, err := svc.StartModule(ctx, user.ID, module.ID); err != nil {
		t.Fatalf("StartModule: %v", err)
	}
	if _, err := svc.CompleteModule(ctx, user.ID, module.ID); err != nil {
		t.Fatalf("CompleteModule: %v", err)
	}

	text, err := svc.HandleIntent(ctx, user.ID, "मुझे वित्तीय जानकारी चाहिए", "hi")
	if err != nil {
		t.Fatalf("HandleIntent: %v", err)
	}
	if strings.Contains(text, module.Title) {
		t.Fatalf("completed module still suggested: %q", text)
	}
}

func TestHandleIntentOverview(t *testing.T) {
	db, svc, creditSvc := newLearningFixture(t)
	user := createTestUser(t, db)
	grantCredits(t, creditSvc, user, 10)

	text, err := svc.HandleIntent(context.Background(), user.ID, "मुझे कुछ सीखना है", "hi")
	if err != nil {
		t.Fatalf("HandleIntent: %v", err)
	}
	if !strings.Contains(text, "10 क्रेडिट") {
		t.Fatalf("overview missing credit balance: %q", text)
	}
}

func TestDetectLearningCategory(t *testing.T) {
	cases := []struct {
		transcript string
		want       string
	}{
		{"financial planning basics", types.CategoryFinancialLiteracy},
		{"पैसा कैसे बचाएं", types.CategoryFinancialLiteracy},
		{"डिजिटल सुरक्षा के बारे में", types.CategoryDigitalSafety},
		{"कौशल सीखना है", types.CategoryVocationalSkills},
		{"कुछ भी", ""},
	}
	for _, tc := range cases {
		if got := detectLearningCategory(tc.transcript); got != tc.want {
			t.Errorf("detectLearningCategory(%q)=%q, want %q", tc.transcript, got, tc.want)
		}
	}
}

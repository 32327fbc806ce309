package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/saktilink/edge-backend/internal/repos"
	"github.com/saktilink/edge-backend/internal/types"
)

func newGigFixture(t *testing.T) (*gorm.DB, GigService) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger()
	svc := NewGigService(
		db, log,
		repos.NewGigRepo(db, log),
		repos.NewGigApplicationRepo(db, log),
	)
	return db, svc
}

func createTestGig(t *testing.T, db *gorm.DB, title, status string, expiresAt *time.Time, createdAt time.Time) *types.Gig {
	t.Helper()
	gig := &types.Gig{
		Title:           title,
		Payment:         500,
		PaymentCurrency: "INR",
		Status:          status,
		ExpiresAt:       expiresAt,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}
	if err := db.Create(gig).Error; err != nil {
		t.Fatalf("create test gig: %v", err)
	}
	return gig
}

func TestListAvailableFiltersAndOrders(t *testing.T) {
	db, svc := newGigFixture(t)
	user := createTestUser(t, db)
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(24 * time.Hour)

	createTestGig(t, db, "expired", types.GigOpen, &past, now.Add(-5*time.Hour))
	createTestGig(t, db, "filled", types.GigFilled, nil, now.Add(-4*time.Hour))
	older := createTestGig(t, db, "older open", types.GigOpen, &future, now.Add(-3*time.Hour))
	noExpiry := createTestGig(t, db, "no expiry", types.GigOpen, nil, now.Add(-2*time.Hour))
	newest := createTestGig(t, db, "newest open", types.GigOpen, &future, now.Add(-time.Hour))

	gigs, err := svc.ListAvailable(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListAvailable: %v", err)
	}
	if len(gigs) != 3 {
		t.Fatalf("got %d gigs, want 3", len(gigs))
	}
	wantOrder := []int64{newest.ID, noExpiry.ID, older.ID}
	for i, g := range gigs {
		if g.ID != wantOrder[i] {
			t.Fatalf("gig[%d].ID=%d, want %d", i, g.ID, wantOrder[i])
		}
	}
}

func TestListAvailableCapsAtFive(t *testing.T) {
	db, svc := newGigFixture(t)
	user := createTestUser(t, db)
	now := time.Now()
	for i := 0; i < 7; i++ {
		createTestGig(t, db, "gig", types.GigOpen, nil, now.Add(time.Duration(-i)*time.Minute))
	}

	gigs, err := svc.ListAvailable(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListAvailable: %v", err)
	}
	if len(gigs) != 5 {
		t.Fatalf("got %d gigs, want 5", len(gigs))
	}
}

func TestListAvailableExcludesAppliedGigs(t *testing.T) {
	db, svc := newGigFixture(t)
	user := createTestUser(t, db)
	other := createTestUser(t, db)
	now := time.Now()

	applied := createTestGig(t, db, "tailoring batch", types.GigOpen, nil, now.Add(-2*time.Minute))
	open := createTestGig(t, db, "data entry", types.GigOpen, nil, now.Add(-time.Minute))
	ctx := context.Background()

	if _, err := svc.Apply(ctx, user.ID, applied.ID); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	gigs, err := svc.ListAvailable(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListAvailable: %v", err)
	}
	if len(gigs) != 1 || gigs[0].ID != open.ID {
		t.Fatalf("got %d gigs, want only the unapplied gig %d", len(gigs), open.ID)
	}

	// Another user's listing is unaffected.
	otherGigs, err := svc.ListAvailable(ctx, other.ID)
	if err != nil {
		t.Fatalf("ListAvailable: %v", err)
	}
	if len(otherGigs) != 2 {
		t.Fatalf("other user got %d gigs, want 2", len(otherGigs))
	}
}

func TestApplyRejectsDuplicates(t *testing.T) {
	db, svc := newGigFixture(t)
	user := createTestUser(t, db)
	gig := createTestGig(t, db, "harvest help", types.GigOpen, nil, time.Now())
	ctx := context.Background()

	first, err := svc.Apply(ctx, user.ID, gig.ID)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if first.ApplicationID == 0 {
		t.Fatal("ApplicationID not set")
	}

	_, err = svc.Apply(ctx, user.ID, gig.ID)
	if !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("second Apply error=%v, want ErrAlreadyApplied", err)
	}

	var count int64
	if err := db.Model(&types.GigApplication{}).
		Where("user_id = ? AND gig_id = ?", user.ID, gig.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("count applications: %v", err)
	}
	if count != 1 {
		t.Fatalf("application rows=%d, want 1", count)
	}
}

func TestApplyUnknownGig(t *testing.T) {
	db, svc := newGigFixture(t)
	user := createTestUser(t, db)

	_, err := svc.Apply(context.Background(), user.ID, 404)
	if !errors.Is(err, ErrGigNotFound) {
		t.Fatalf("Apply error=%v, want ErrGigNotFound", err)
	}
}

func TestGigIntentFindAndStatus(t *testing.T) {
	db, svc := newGigFixture(t)
	user := createTestUser(t, db)
	gig := createTestGig(t, db, "बाजार में मदद", types.GigOpen, nil, time.Now())
	ctx := context.Background()

	text, err := svc.HandleIntent(ctx, user.ID, "मुझे काम चाहिए", "hi")
	if err != nil {
		t.Fatalf("HandleIntent(find): %v", err)
	}
	if !strings.Contains(text, gig.Title) {
		t.Fatalf("find response missing gig title: %q", text)
	}

	if _, err := svc.Apply(ctx, user.ID, gig.ID); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	text, err = svc.HandleIntent(ctx, user.ID, "मेरा status", "hi")
	if err != nil {
		t.Fatalf("HandleIntent(status): %v", err)
	}
	if !strings.Contains(text, "1 आवेदन") {
		t.Fatalf("status response missing pending count: %q", text)
	}
}

func TestGigIntentFallsBackToIntro(t *testing.T) {
	db, svc := newGigFixture(t)
	user := createTestUser(t, db)

	text, err := svc.HandleIntent(context.Background(), user.ID, "earn", "hi")
	if err != nil {
		t.Fatalf("HandleIntent: %v", err)
	}
	if text != gigIntroTemplates["hi"] {
		t.Fatalf("got %q, want gig intro", text)
	}
}

func TestApplicationStatusWhenEmpty(t *testing.T) {
	db, svc := newGigFixture(t)
	user := createTestUser(t, db)

	text, err := svc.HandleIntent(context.Background(), user.ID, "मेरा status", "hi")
	if err != nil {
		t.Fatalf("HandleIntent: %v", err)
	}
	if text != noApplicationsTemplates["hi"] {
		t.Fatalf("got %q, want no-applications message", text)
	}
}

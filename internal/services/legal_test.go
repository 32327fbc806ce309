package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/saktilink/edge-backend/internal/ai"
	"github.com/saktilink/edge-backend/internal/repos"
	"github.com/saktilink/edge-backend/internal/types"
)

func newLegalFixture(t *testing.T) (*gorm.DB, LegalService) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger()
	registry := ai.NewRegistry(log, ai.Loaders{})
	svc := NewLegalService(
		db, log,
		repos.NewLegalTopicRepo(db, log),
		repos.NewLegalQueryRepo(db, log),
		registry,
	)
	return db, svc
}

func createTestTopic(t *testing.T, db *gorm.DB, category, content string) *types.LegalTopic {
	t.Helper()
	now := time.Now()
	topic := &types.LegalTopic{
		Name:      category,
		Category:  category,
		Language:  "hi",
		Content:   content,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Create(topic).Error; err != nil {
		t.Fatalf("create test topic: %v", err)
	}
	return topic
}

func TestDetectLegalTopic(t *testing.T) {
	cases := []struct {
		transcript string
		want       string
	}{
		{"मेरी मजदूरी नहीं मिली", "labor_rights"},
		{"minimum wage law", "labor_rights"},
		{"workplace safety rules", "safety_laws"}, // "safety" checks before "workplace"
		{"हिंसा से सुरक्षा", "safety_laws"},
		{"घरेलू समस्या", "domestic_violence"},
		{"जमीन का हक", "property_rights"},
		{"bank loan problem", "financial_rights"},
		{"harassment at office", "workplace_harassment"},
		{"कुछ और", "general"},
	}
	for _, tc := range cases {
		if got := detectLegalTopic(tc.transcript); got != tc.want {
			t.Errorf("detectLegalTopic(%q)=%q, want %q", tc.transcript, got, tc.want)
		}
	}
}

func TestLegalIntentUsesStoredTopic(t *testing.T) {
	db, svc := newLegalFixture(t)
	user := createTestUser(t, db)
	topic := createTestTopic(t, db, "labor_rights", "न्यूनतम मजदूरी आपका अधिकार है।")
	ctx := context.Background()

	text, err := svc.HandleIntent(ctx, user.ID, "मेरी मजदूरी नहीं मिली", "hi")
	if err != nil {
		t.Fatalf("HandleIntent: %v", err)
	}
	if text != topic.Content {
		t.Fatalf("got %q, want stored topic content", text)
	}
}

func TestLegalIntentFallsBackWithDisclaimer(t *testing.T) {
	db, svc := newLegalFixture(t)
	user := createTestUser(t, db)

	text, err := svc.HandleIntent(context.Background(), user.ID, "कुछ अनजान सवाल", "hi")
	if err != nil {
		t.Fatalf("HandleIntent: %v", err)
	}
	if !strings.Contains(text, legalDisclaimerTemplates["hi"]) {
		t.Fatalf("fallback response missing disclaimer: %q", text)
	}
}

func TestLegalIntentLogsHashedQueryOnly(t *testing.T) {
	db, svc := newLegalFixture(t)
	user := createTestUser(t, db)
	transcript := "मेरी मजदूरी नहीं मिली"

	if _, err := svc.HandleIntent(context.Background(), user.ID, transcript, "hi"); err != nil {
		t.Fatalf("HandleIntent: %v", err)
	}

	var record types.LegalQuery
	if err := db.Where("user_id = ?", user.ID).First(&record).Error; err != nil {
		t.Fatalf("load query record: %v", err)
	}
	if record.QueryHash == "" || len(record.QueryHash) != 16 {
		t.Fatalf("QueryHash=%q, want 16-char hash prefix", record.QueryHash)
	}
	if strings.Contains(record.QueryHash, "मजदूरी") {
		t.Fatal("raw query text leaked into hash column")
	}
	if record.TopicCategory != "labor_rights" {
		t.Fatalf("TopicCategory=%q, want labor_rights", record.TopicCategory)
	}
	if len([]rune(record.ResponseSummary)) > legalSummaryMaxRunes {
		t.Fatalf("ResponseSummary too long: %d runes", len([]rune(record.ResponseSummary)))
	}
}

func TestOverlapSearchRanksByWordOverlap(t *testing.T) {
	db, svc := newLegalFixture(t)
	createTestTopic(t, db, "labor_rights", "wage payment rules for daily labor")
	best := createTestTopic(t, db, "financial_rights", "bank loan interest rules and loan recovery")
	createTestTopic(t, db, "property_rights", "inheritance of land")

	matches, err := svc.SearchTopics(context.Background(), "bank loan rules", "hi")
	if err != nil {
		t.Fatalf("SearchTopics: %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("no matches")
	}
	if matches[0].Topic.ID != best.ID {
		t.Fatalf("top match=%q, want %q", matches[0].Topic.Category, best.Category)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Fatal("matches not sorted by score")
		}
	}
}

func TestCosineSimilarity(t *testing.T) {
	cases := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 0}, []float64{1, 0}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"mismatched_len", []float64{1, 0}, []float64{1}, 0},
		{"zero_vector", []float64{0, 0}, []float64{1, 1}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := cosineSimilarity(tc.a, tc.b)
			if diff := got - tc.want; diff > 1e-9 || diff < -1e-9 {
				t.Fatalf("cosineSimilarity=%v, want %v", got, tc.want)
			}
		})
	}
}

package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saktilink/edge-backend/internal/ai"
	"github.com/saktilink/edge-backend/internal/logger"
	"github.com/saktilink/edge-backend/internal/repos"
	"github.com/saktilink/edge-backend/internal/types"
)

const (
	legalTopicGeneral    = "general"
	legalSummaryMaxRunes = 200
	topicSearchLimit     = 5
)

type TopicMatch struct {
	Topic *types.LegalTopic `json:"topic"`
	Score float64           `json:"score"`
}

type LegalService interface {
	HandleIntent(ctx context.Context, userID uuid.UUID, transcript, language string) (string, error)
	ListTopics(ctx context.Context, language string) ([]*types.LegalTopic, error)
	// SearchTopics ranks active topics against the query, by embedding
	// cosine similarity when the capability is loaded, by word overlap
	// otherwise.
	SearchTopics(ctx context.Context, query, language string) ([]TopicMatch, error)
}

type legalService struct {
	db        *gorm.DB
	log       *logger.Logger
	topicRepo repos.LegalTopicRepo
	queryRepo repos.LegalQueryRepo
	registry  *ai.Registry
}

func NewLegalService(
	db *gorm.DB,
	baseLog *logger.Logger,
	topicRepo repos.LegalTopicRepo,
	queryRepo repos.LegalQueryRepo,
	registry *ai.Registry,
) LegalService {
	serviceLog := baseLog.With("service", "LegalService")
	return &legalService{
		db:        db,
		log:       serviceLog,
		topicRepo: topicRepo,
		queryRepo: queryRepo,
		registry:  registry,
	}
}

// Topic keyword sets are checked in this order; the first hit wins.
var legalTopicKeywords = []struct {
	category string
	words    []string
}{
	{"labor_rights", []string{"मजदूरी", "wage", "labor", "काम", "नौकरी"}},
	{"safety_laws", []string{"सुरक्षा", "safety", "हिंसा", "violence"}},
	{"domestic_violence", []string{"घरेलू", "domestic", "मारपीट"}},
	{"property_rights", []string{"संपत्ति", "property", "जमीन", "land"}},
	{"financial_rights", []string{"पैसा", "money", "बैंक", "bank", "loan"}},
	{"workplace_harassment", []string{"उत्पीड़न", "harassment", "workplace"}},
}

func detectLegalTopic(transcript string) string {
	lower := strings.ToLower(transcript)
	for _, set := range legalTopicKeywords {
		for _, w := range set.words {
			if strings.Contains(lower, w) {
				return set.category
			}
		}
	}
	return legalTopicGeneral
}

func (ls *legalService) HandleIntent(ctx context.Context, userID uuid.UUID, transcript, language string) (string, error) {
	if language == "" {
		language = fallbackLanguage
	}
	topic := detectLegalTopic(transcript)

	var responseText string
	info, err := ls.topicRepo.GetByCategoryLanguage(ctx, nil, topic, language)
	if err != nil {
		return "", fmt.Errorf("load legal topic: %w", err)
	}
	if info != nil {
		responseText = info.Content
	} else {
		responseText = ls.generateAnswer(ctx, transcript, language)
	}

	// Only the query hash is persisted; the spoken question never
	// touches the store.
	record := &types.LegalQuery{
		UserID:          userID,
		QueryHash:       queryHash(transcript),
		TopicCategory:   topic,
		Language:        language,
		ResponseSummary: truncateRunes(responseText, legalSummaryMaxRunes),
		CreatedAt:       time.Now(),
	}
	if _, err := ls.queryRepo.Create(ctx, nil, record); err != nil {
		ls.log.Warn("Failed to log legal query", "error", err)
	}

	return responseText, nil
}

func (ls *legalService) generateAnswer(ctx context.Context, transcript, language string) string {
	disclaimer := localize(legalDisclaimerTemplates, language)
	gen := ls.registry.Generator()
	if gen == nil {
		return localize(legalFallbackTemplates, language) + " " + disclaimer
	}

	system := "You are a friendly AI assistant for Sakti-Link, helping women with legal awareness. " +
		"Provide general legal information in " + language + ". Be warm, concise, and encouraging. " +
		"This is general information, not legal advice."
	answer, err := gen.GenerateText(ctx, system, transcript)
	if err != nil {
		ls.log.Warn("Legal answer generation failed, using template", "error", err)
		return localize(legalFallbackTemplates, language) + " " + disclaimer
	}
	return answer + " " + disclaimer
}

func (ls *legalService) ListTopics(ctx context.Context, language string) ([]*types.LegalTopic, error) {
	return ls.topicRepo.ListActive(ctx, nil, language)
}

func (ls *legalService) SearchTopics(ctx context.Context, query, language string) ([]TopicMatch, error) {
	topics, err := ls.topicRepo.ListActive(ctx, nil, language)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	if len(topics) == 0 {
		return nil, nil
	}

	if emb := ls.registry.Embedder(); emb != nil {
		matches, err := ls.embeddingSearch(ctx, emb, query, topics)
		if err == nil {
			return matches, nil
		}
		ls.log.Warn("Embedding search failed, using overlap fallback", "error", err)
	}
	return overlapSearch(query, topics), nil
}

func (ls *legalService) embeddingSearch(ctx context.Context, emb ai.Embedder, query string, topics []*types.LegalTopic) ([]TopicMatch, error) {
	inputs := make([]string, 0, len(topics)+1)
	inputs = append(inputs, query)
	for _, t := range topics {
		inputs = append(inputs, t.Name+" "+t.Content)
	}
	vectors, err := emb.Embed(ctx, inputs)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(inputs) {
		return nil, fmt.Errorf("embedding count mismatch")
	}

	queryVec := vectors[0]
	matches := make([]TopicMatch, 0, len(topics))
	for i, t := range topics {
		matches = append(matches, TopicMatch{Topic: t, Score: cosineSimilarity(queryVec, vectors[i+1])})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > topicSearchLimit {
		matches = matches[:topicSearchLimit]
	}
	return matches, nil
}

func overlapSearch(query string, topics []*types.LegalTopic) []TopicMatch {
	queryWords := wordSet(query)
	if len(queryWords) == 0 {
		return nil
	}
	var matches []TopicMatch
	for _, t := range topics {
		docWords := wordSet(t.Name + " " + t.Content)
		overlap := 0
		for w := range queryWords {
			if docWords[w] {
				overlap++
			}
		}
		if overlap > 0 {
			matches = append(matches, TopicMatch{
				Topic: t,
				Score: float64(overlap) / float64(len(queryWords)),
			})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > topicSearchLimit {
		matches = matches[:topicSearchLimit]
	}
	return matches
}

func wordSet(s string) map[string]bool {
	out := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(s)) {
		out[w] = true
	}
	return out
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func queryHash(transcript string) string {
	sum := sha256.Sum256([]byte(transcript))
	return hex.EncodeToString(sum[:])[:16]
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/saktilink/edge-backend/internal/ai"
	"github.com/saktilink/edge-backend/internal/logger"
)

const (
	IntentLearn     = "learn"
	IntentEarn      = "earn"
	IntentLegal     = "legal"
	IntentSkillSwap = "skill_swap"
	IntentGreeting  = "greeting"
	IntentUnknown   = "unknown"
)

const (
	ClassifierLLM      = "llm"
	ClassifierFallback = "fallback"
)

type IntentResult struct {
	Intent     string            `json:"intent"`
	Confidence float64           `json:"confidence"`
	Entities   map[string]string `json:"entities"`
	Classifier string            `json:"classifier"`
}

type IntentService interface {
	Classify(ctx context.Context, transcript, language string) IntentResult
}

type intentService struct {
	log      *logger.Logger
	registry *ai.Registry
}

func NewIntentService(baseLog *logger.Logger, registry *ai.Registry) IntentService {
	serviceLog := baseLog.With("service", "IntentService")
	return &intentService{
		log:      serviceLog,
		registry: registry,
	}
}

const intentSystemPrompt = `You are a helpful assistant for Sakti-Link, a platform for women's empowerment.
Classify the user's intent into one of these categories:
- learn: User wants to learn something
- earn: User wants to find work/gigs
- legal: User has legal questions
- skill_swap: User wants to teach or learn skills
- greeting: User is greeting or making small talk
- unknown: Intent cannot be determined

Respond with ONLY a JSON object: {"intent": "...", "confidence": 0.0-1.0, "entities": {}}`

// Keyword sets checked in priority order. Matching stops at the first
// set that hits.
var (
	learnKeywords = []string{"सीखना", "learn", "पढ़ना", "study", "कोर्स", "course"}
	earnKeywords  = []string{"काम", "work", "नौकरी", "job", "earn", "पैसा", "money"}
	legalKeywords = []string{"कानून", "law", "legal", "अधिकार", "rights", "न्याय", "justice"}
	skillKeywords = []string{"skill", "सिखाना", "teach", "हुनर", "talent"}
)

// Classify never fails: any error on the model path degrades silently
// to keyword matching.
func (is *intentService) Classify(ctx context.Context, transcript, language string) IntentResult {
	if gen := is.registry.Generator(); gen != nil {
		if result, err := is.classifyWithModel(ctx, gen, transcript); err == nil {
			return result
		} else {
			is.log.Debug("Model classification failed, using keyword fallback", "error", err)
		}
	}
	return keywordIntent(transcript)
}

func (is *intentService) classifyWithModel(ctx context.Context, gen ai.Generator, transcript string) (IntentResult, error) {
	raw, err := gen.GenerateText(ctx, intentSystemPrompt, transcript)
	if err != nil {
		return IntentResult{}, err
	}
	parsed, err := parseIntentJSON(raw)
	if err != nil {
		return IntentResult{}, err
	}
	parsed.Classifier = ClassifierLLM
	return parsed, nil
}

func parseIntentJSON(raw string) (IntentResult, error) {
	// Models sometimes wrap the JSON in prose or fences; take the
	// outermost braces.
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return IntentResult{}, &intentParseError{raw: raw}
	}
	var out IntentResult
	if err := json.Unmarshal([]byte(raw[start:end+1]), &out); err != nil {
		return IntentResult{}, err
	}
	if !validIntent(out.Intent) {
		return IntentResult{}, &intentParseError{raw: out.Intent}
	}
	if out.Entities == nil {
		out.Entities = map[string]string{}
	}
	return out, nil
}

type intentParseError struct{ raw string }

func (e *intentParseError) Error() string { return "unparseable intent response" }

func validIntent(intent string) bool {
	switch intent {
	case IntentLearn, IntentEarn, IntentLegal, IntentSkillSwap, IntentGreeting, IntentUnknown:
		return true
	default:
		return false
	}
}

func keywordIntent(transcript string) IntentResult {
	lower := strings.ToLower(transcript)

	for _, set := range []struct {
		intent   string
		keywords []string
	}{
		{IntentLearn, learnKeywords},
		{IntentEarn, earnKeywords},
		{IntentLegal, legalKeywords},
		{IntentSkillSwap, skillKeywords},
	} {
		for _, kw := range set.keywords {
			if strings.Contains(lower, kw) {
				return IntentResult{
					Intent:     set.intent,
					Confidence: 0.8,
					Entities:   map[string]string{},
					Classifier: ClassifierFallback,
				}
			}
		}
	}
	return IntentResult{
		Intent:     IntentUnknown,
		Confidence: 0.5,
		Entities:   map[string]string{},
		Classifier: ClassifierFallback,
	}
}

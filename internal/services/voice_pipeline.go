package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/saktilink/edge-backend/internal/ai"
	"github.com/saktilink/edge-backend/internal/logger"
	"github.com/saktilink/edge-backend/internal/repos"
	"github.com/saktilink/edge-backend/internal/types"
)

type PipelineStage string

const (
	StageReceived          PipelineStage = "received"
	StageDecoded           PipelineStage = "decoded"
	StageTranscribed       PipelineStage = "transcribed"
	StageIntentClassified  PipelineStage = "intent_classified"
	StageResponseGenerated PipelineStage = "response_generated"
	StageSynthesized       PipelineStage = "synthesized"
	StageCompleted         PipelineStage = "completed"
	StageError             PipelineStage = "error"
)

type StageOutcome string

const (
	OutcomeSuccess  StageOutcome = "success"
	OutcomeFallback StageOutcome = "fallback"
	OutcomeFailure  StageOutcome = "failure"
)

type StageResult struct {
	Stage   PipelineStage `json:"stage"`
	Outcome StageOutcome  `json:"outcome"`
}

type VoiceRequest struct {
	AudioBase64       string `json:"audio_base64"`
	Language          string `json:"language"`
	DeviceFingerprint string `json:"device_fingerprint"`
}

type VoiceResponse struct {
	Success             bool          `json:"success"`
	Transcript          string        `json:"transcript,omitempty"`
	Intent              *IntentResult `json:"intent,omitempty"`
	ResponseText        string        `json:"response_text"`
	ResponseAudioBase64 string        `json:"response_audio_base64,omitempty"`
	NextAction          string        `json:"next_action,omitempty"`
	Stages              []StageResult `json:"stages"`
	Confidence          float64       `json:"confidence"`
	Provider            string        `json:"provider,omitempty"`
}

type LanguageInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type VoicePipelineService interface {
	Process(ctx context.Context, req VoiceRequest) (*VoiceResponse, error)
	Synthesize(ctx context.Context, text, language string) ([]byte, error)
	SupportedLanguages() []LanguageInfo
}

type voicePipelineService struct {
	db          *gorm.DB
	log         *logger.Logger
	registry    *ai.Registry
	userSvc     UserService
	intentSvc   IntentService
	learningSvc LearningService
	gigSvc      GigService
	legalSvc    LegalService
	skillSvc    SkillService
	metricRepo  repos.SystemMetricRepo
}

func NewVoicePipelineService(
	db *gorm.DB,
	baseLog *logger.Logger,
	registry *ai.Registry,
	userSvc UserService,
	intentSvc IntentService,
	learningSvc LearningService,
	gigSvc GigService,
	legalSvc LegalService,
	skillSvc SkillService,
	metricRepo repos.SystemMetricRepo,
) VoicePipelineService {
	serviceLog := baseLog.With("service", "VoicePipelineService")
	return &voicePipelineService{
		db:          db,
		log:         serviceLog,
		registry:    registry,
		userSvc:     userSvc,
		intentSvc:   intentSvc,
		learningSvc: learningSvc,
		gigSvc:      gigSvc,
		legalSvc:    legalSvc,
		skillSvc:    skillSvc,
		metricRepo:  metricRepo,
	}
}

// Process runs one voice interaction end to end. Handler failures are
// absorbed into a localized apology so the caller still hears a voice
// response; decode, transcription, and synthesis failures are terminal.
func (vs *voicePipelineService) Process(ctx context.Context, req VoiceRequest) (*VoiceResponse, error) {
	language := req.Language
	if language == "" {
		language = fallbackLanguage
	}
	stages := []StageResult{{Stage: StageReceived, Outcome: OutcomeSuccess}}

	user, created, err := vs.userSvc.GetOrCreateByFingerprint(ctx, req.DeviceFingerprint, language)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	if created {
		vs.log.Info("First contact from device", "user_id", user.ID.String())
	}

	if req.AudioBase64 == "" {
		return nil, errors.New("no audio data provided")
	}
	audio, err := base64.StdEncoding.DecodeString(req.AudioBase64)
	if err != nil {
		return nil, fmt.Errorf("decode audio: %w", err)
	}
	stages = append(stages, StageResult{Stage: StageDecoded, Outcome: OutcomeSuccess})

	transcriber := vs.registry.Transcriber()
	if transcriber == nil {
		return nil, errors.New("speech recognition unavailable")
	}
	transcription, err := transcriber.Transcribe(ctx, audio, language)
	if err != nil {
		return nil, fmt.Errorf("speech recognition failed: %w", err)
	}
	stages = append(stages, StageResult{Stage: StageTranscribed, Outcome: OutcomeSuccess})
	vs.log.Info("Transcribed voice input", "transcript", transcription.Transcript, "provider", transcription.Provider)

	intent := vs.intentSvc.Classify(ctx, transcription.Transcript, language)
	intentOutcome := OutcomeSuccess
	if intent.Classifier == ClassifierFallback {
		intentOutcome = OutcomeFallback
	}
	stages = append(stages, StageResult{Stage: StageIntentClassified, Outcome: intentOutcome})

	responseText, handlerErr := vs.routeIntent(ctx, user, intent.Intent, transcription.Transcript, language)
	if handlerErr != nil {
		vs.log.Error("Intent handler failed", "intent", intent.Intent, "error", handlerErr)
		responseText = localize(errorTemplates, language)
		stages = append(stages, StageResult{Stage: StageResponseGenerated, Outcome: OutcomeFallback})
	} else {
		stages = append(stages, StageResult{Stage: StageResponseGenerated, Outcome: OutcomeSuccess})
	}

	var audioB64 string
	if synth := vs.registry.Synthesizer(); synth != nil {
		spoken, err := synth.Synthesize(ctx, responseText, language)
		if err != nil {
			return nil, fmt.Errorf("speech synthesis failed: %w", err)
		}
		audioB64 = base64.StdEncoding.EncodeToString(spoken)
		stages = append(stages, StageResult{Stage: StageSynthesized, Outcome: OutcomeSuccess})
	} else {
		// Text-only response when no synthesis backend is configured.
		stages = append(stages, StageResult{Stage: StageSynthesized, Outcome: OutcomeFallback})
	}

	vs.recordInteraction(ctx, user, intent.Intent, language)
	stages = append(stages, StageResult{Stage: StageCompleted, Outcome: OutcomeSuccess})

	return &VoiceResponse{
		Success:             true,
		Transcript:          transcription.Transcript,
		Intent:              &intent,
		ResponseText:        responseText,
		ResponseAudioBase64: audioB64,
		NextAction:          intent.Intent,
		Stages:              stages,
		Confidence:          intent.Confidence,
		Provider:            transcription.Provider,
	}, nil
}

func (vs *voicePipelineService) routeIntent(ctx context.Context, user *types.User, intent, transcript, language string) (string, error) {
	switch intent {
	case IntentLearn:
		return vs.learningSvc.HandleIntent(ctx, user.ID, transcript, language)
	case IntentEarn:
		return vs.gigSvc.HandleIntent(ctx, user.ID, transcript, language)
	case IntentLegal:
		return vs.legalSvc.HandleIntent(ctx, user.ID, transcript, language)
	case IntentSkillSwap:
		return vs.skillSvc.HandleIntent(ctx, user.ID, transcript, language)
	case IntentGreeting:
		return localize(greetingTemplates, language), nil
	default:
		return localize(unknownIntentTemplates, language), nil
	}
}

// recordInteraction writes exactly one metric row per completed
// request and refreshes the user's last_active. Neither write is worth
// failing the interaction over.
func (vs *voicePipelineService) recordInteraction(ctx context.Context, user *types.User, intent, language string) {
	meta := datatypes.JSON([]byte(fmt.Sprintf(`{"intent":%q}`, intent)))
	if _, err := vs.metricRepo.Create(ctx, nil, &types.SystemMetric{
		MetricType:  types.MetricVoiceInteraction,
		MetricValue: 1,
		Language:    language,
		Category:    intent,
		Metadata:    meta,
		Timestamp:   time.Now(),
	}); err != nil {
		vs.log.Warn("Failed to record interaction metric", "error", err)
	}
	if err := vs.userSvc.TouchLastActive(ctx, nil, user.ID); err != nil {
		vs.log.Warn("Failed to update last active", "error", err)
	}
}

func (vs *voicePipelineService) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	synth := vs.registry.Synthesizer()
	if synth == nil {
		return nil, errors.New("speech synthesis unavailable")
	}
	return synth.Synthesize(ctx, text, language)
}

var supportedLanguages = []LanguageInfo{
	{Code: "hi", Name: "हिंदी (Hindi)"},
	{Code: "bn", Name: "বাংলা (Bengali)"},
	{Code: "ta", Name: "தமிழ் (Tamil)"},
	{Code: "te", Name: "తెలుగు (Telugu)"},
	{Code: "mr", Name: "मराठी (Marathi)"},
	{Code: "gu", Name: "ગુજરાતી (Gujarati)"},
	{Code: "kn", Name: "ಕನ್ನಡ (Kannada)"},
	{Code: "ml", Name: "മലയാളം (Malayalam)"},
	{Code: "pa", Name: "ਪੰਜਾਬੀ (Punjabi)"},
	{Code: "or", Name: "ଓଡ଼ିଆ (Odia)"},
}

func (vs *voicePipelineService) SupportedLanguages() []LanguageInfo {
	return supportedLanguages
}

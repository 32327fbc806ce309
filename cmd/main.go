package main

import (
	"context"
	"fmt"
	"os"

	"github.com/saktilink/edge-backend/internal/ai"
	"github.com/saktilink/edge-backend/internal/db"
	"github.com/saktilink/edge-backend/internal/handlers"
	"github.com/saktilink/edge-backend/internal/logger"
	"github.com/saktilink/edge-backend/internal/repos"
	"github.com/saktilink/edge-backend/internal/server"
	"github.com/saktilink/edge-backend/internal/services"
	"github.com/saktilink/edge-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	whisperModelPath := utils.GetEnv("WHISPER_MODEL_PATH", "", log)
	llmBaseURL := utils.GetEnv("LLM_BASE_URL", "", log)
	llmAPIKey := utils.GetEnv("LLM_API_KEY", "", log)
	llmModel := utils.GetEnv("LLM_MODEL", "", log)
	embedModel := utils.GetEnv("EMBED_MODEL", "", log)
	seedDir := utils.GetEnv("SEED_DIR", "data/seeds", log)

	// Database
	dbService, err := db.NewService(log)
	if err != nil {
		log.Error("Database init failed", "error", err)
		os.Exit(1)
	}
	if err = dbService.AutoMigrateAll(); err != nil {
		log.Error("Auto migration failed", "error", err)
		os.Exit(1)
	}
	theDB := dbService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(theDB, log)
	moduleRepo := repos.NewLearningModuleRepo(theDB, log)
	progressRepo := repos.NewLearningProgressRepo(theDB, log)
	creditRepo := repos.NewCreditTransactionRepo(theDB, log)
	skillRepo := repos.NewSkillRepo(theDB, log)
	userSkillRepo := repos.NewUserSkillRepo(theDB, log)
	gigRepo := repos.NewGigRepo(theDB, log)
	applicationRepo := repos.NewGigApplicationRepo(theDB, log)
	topicRepo := repos.NewLegalTopicRepo(theDB, log)
	queryRepo := repos.NewLegalQueryRepo(theDB, log)
	metricRepo := repos.NewSystemMetricRepo(theDB, log)

	// AI capabilities. The local whisper model is tried first when
	// configured; transcription falls back to the cloud speech API when
	// the model is absent or fails to load.
	log.Info("Setting up AI capability registry from main...")
	loaders := ai.Loaders{
		Synthesis: func(ctx context.Context) (ai.Synthesizer, error) {
			return ai.NewTTSSynthesizer(log)
		},
	}
	sttCandidates := make([]func(ctx context.Context) (ai.Transcriber, error), 0, 2)
	if whisperModelPath != "" {
		sttCandidates = append(sttCandidates, func(ctx context.Context) (ai.Transcriber, error) {
			return ai.NewWhisperTranscriber(log, whisperModelPath)
		})
	}
	sttCandidates = append(sttCandidates, func(ctx context.Context) (ai.Transcriber, error) {
		return ai.NewSpeechTranscriber(ctx, log)
	})
	loaders.Transcription = ai.TranscriptionChain(log, sttCandidates...)
	if llmBaseURL != "" {
		llmCfg := ai.LLMConfig{
			BaseURL:    llmBaseURL,
			APIKey:     llmAPIKey,
			ChatModel:  llmModel,
			EmbedModel: embedModel,
		}
		loaders.Generation = func(ctx context.Context) (ai.Generator, error) {
			return ai.NewGenerator(log, llmCfg)
		}
		loaders.Embedding = func(ctx context.Context) (ai.Embedder, error) {
			return ai.NewEmbedder(log, llmCfg)
		}
	}
	registry := ai.NewRegistry(log, loaders)
	registry.Initialize(context.Background())
	defer registry.Cleanup()

	// Services
	log.Info("Setting up Services from main...")
	creditService := services.NewCreditService(theDB, log, creditRepo)
	userService := services.NewUserService(theDB, log, userRepo, creditService)
	intentService := services.NewIntentService(log, registry)
	learningService := services.NewLearningService(theDB, log, moduleRepo, progressRepo, creditService)
	gigService := services.NewGigService(theDB, log, gigRepo, applicationRepo)
	legalService := services.NewLegalService(theDB, log, topicRepo, queryRepo, registry)
	skillService := services.NewSkillService(theDB, log, skillRepo, userSkillRepo, creditService)
	pipelineService := services.NewVoicePipelineService(
		theDB,
		log,
		registry,
		userService,
		intentService,
		learningService,
		gigService,
		legalService,
		skillService,
		metricRepo,
	)
	systemService := services.NewSystemService(theDB, log, metricRepo)
	seedService := services.NewSeedService(theDB, log, moduleRepo, skillRepo, gigRepo, topicRepo)
	if err := seedService.Run(context.Background(), seedDir); err != nil {
		log.Warn("Seed data load failed", "error", err)
	}

	// Handlers
	log.Info("Setting up handlers from main...")
	voiceHandler := handlers.NewVoiceHandler(pipelineService)
	learningHandler := handlers.NewLearningHandler(learningService, creditService)
	gigHandler := handlers.NewGigHandler(gigService)
	legalHandler := handlers.NewLegalHandler(legalService)
	skillHandler := handlers.NewSkillHandler(skillService)
	systemHandler := handlers.NewSystemHandler(systemService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		VoiceHandler:    voiceHandler,
		LearningHandler: learningHandler,
		GigHandler:      gigHandler,
		LegalHandler:    legalHandler,
		SkillHandler:    skillHandler,
		SystemHandler:   systemHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}

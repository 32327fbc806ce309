package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/saktilink/edge-backend/internal/handlers"
)

type RouterConfig struct {
	VoiceHandler    *handlers.VoiceHandler
	LearningHandler *handlers.LearningHandler
	GigHandler      *handlers.GigHandler
	LegalHandler    *handlers.LegalHandler
	SkillHandler    *handlers.SkillHandler
	SystemHandler   *handlers.SystemHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:8080",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/health", handlers.HealthCheck)
	router.GET("/", handlers.ServiceBanner)

	api := router.Group("/api/v1")
	{
		// Voice
		api.POST("/voice/process", cfg.VoiceHandler.Process)
		api.POST("/voice/synthesize", cfg.VoiceHandler.Synthesize)
		api.GET("/voice/languages", cfg.VoiceHandler.Languages)
		// Learning
		api.POST("/learning/modules/list", cfg.LearningHandler.ListModules)
		api.POST("/learning/modules/:id/start", cfg.LearningHandler.StartModule)
		api.POST("/learning/modules/:id/complete", cfg.LearningHandler.CompleteModule)
		api.GET("/learning/credits/:user_id", cfg.LearningHandler.GetCredits)
		// Gigs
		api.GET("/gigs/available", cfg.GigHandler.ListAvailable)
		api.POST("/gigs/:id/apply", cfg.GigHandler.Apply)
		api.GET("/gigs/user/:user_id", cfg.GigHandler.ListApplications)
		// Legal
		api.POST("/legal/query", cfg.LegalHandler.Query)
		api.GET("/legal/topics", cfg.LegalHandler.ListTopics)
		// Skills
		api.POST("/skills/teach", cfg.SkillHandler.RegisterTeach)
		api.POST("/skills/learn", cfg.SkillHandler.RegisterLearn)
		api.POST("/skills/sessions/complete", cfg.SkillHandler.CompleteSession)
		api.GET("/skills/marketplace", cfg.SkillHandler.Marketplace)
		// System
		api.GET("/system/status", cfg.SystemHandler.Status)
		api.GET("/system/metrics", cfg.SystemHandler.Metrics)
		api.GET("/system/sync/status", cfg.SystemHandler.SyncStatus)
		api.POST("/system/sync/trigger", cfg.SystemHandler.TriggerSync)
	}

	return router
}

package api

import (
	"net/http"

	"uleary/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up the API routes
func SetupRoutes(router *gin.Engine, handler *handlers.Handler) {
	// Apply CORS middleware
	router.Use(CORSMiddleware())

	router.GET("/health", handler.HandleHealth)

	api := router.Group("/api")
	{
		api.GET("/ai-status", handler.HandleAIStatus)
		api.GET("/elevenlabs-status", handler.HandleElevenLabsStatus)

		// --- Materials & summaries ---
		api.POST("/upload-material", handler.HandleUploadMaterial)
		api.GET("/materials", handler.HandleListMaterials)
		api.POST("/materials/:materialId/summary", handler.HandleGenerateSummary)
		api.GET("/materials/:materialId/summary", handler.HandleGetSummary)
		api.DELETE("/materials/:materialId/summary", handler.HandleDeleteSummary)

		// --- One-shot processing ---
		api.POST("/process-file", handler.HandleProcessFile)
		api.POST("/process-text", handler.HandleProcessText)

		// --- Quiz sessions ---
		api.POST("/start-quiz", handler.HandleStartQuiz)
		quizRoutes := api.Group("/quiz/:sessionId")
		{
			quizRoutes.POST("/next-question", handler.HandleNextQuestion)
			quizRoutes.POST("/answer", handler.HandleAnswer)
			quizRoutes.POST("/end", handler.HandleEndQuiz)
		}

		// --- Text-to-speech ---
		api.GET("/voices", handler.HandleVoices)
		api.GET("/download-audio/:sessionId", handler.HandleDownloadAudio)
		elevenlabs := api.Group("/elevenlabs")
		{
			elevenlabs.GET("/voices", handler.HandleVoices)
			elevenlabs.POST("/set-voice", handler.HandleSetVoice)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint nie został znaleziony"})
	})
}

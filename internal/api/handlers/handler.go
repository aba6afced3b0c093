// Package handlers contains the Gin handlers for the ULeary API.
package handlers

import (
	"io"
	"mime/multipart"
	"net/http"

	"uleary/internal/ai"
	"uleary/internal/material"
	"uleary/internal/models"
	"uleary/internal/quiz"
	"uleary/internal/speech"

	"github.com/gin-gonic/gin"
)

// MaxUploadSize is the upload limit for material files (50MB).
const MaxUploadSize = 50 * 1024 * 1024

// Handler bundles the services the API depends on.
type Handler struct {
	AI        *ai.Service
	Speech    *speech.Client
	Materials *material.Service
	Quiz      *quiz.Manager
}

// NewHandler creates a Handler with its service dependencies.
func NewHandler(aiService *ai.Service, speechClient *speech.Client, materials *material.Service, quizManager *quiz.Manager) *Handler {
	return &Handler{
		AI:        aiService,
		Speech:    speechClient,
		Materials: materials,
		Quiz:      quizManager,
	}
}

// HandleHealth reports overall API health with per-service detail. Degraded
// services are reported but never fail the endpoint.
func (h *Handler) HandleHealth(c *gin.Context) {
	aiHealth := make(chan models.ServiceHealth, 1)
	ttsHealth := make(chan models.ServiceHealth, 1)
	go func() { aiHealth <- h.AI.HealthCheck(c.Request.Context()) }()
	go func() { ttsHealth <- h.Speech.HealthCheck(c.Request.Context()) }()

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"message": "ULeary Backend API is running",
		"services": gin.H{
			"ai":           <-aiHealth,
			"textToSpeech": <-ttsHealth,
		},
	})
}

// HandleAIStatus reports the AI provider's health.
func (h *Handler) HandleAIStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.AI.HealthCheck(c.Request.Context()))
}

// HandleElevenLabsStatus reports the text-to-speech service's health.
func (h *Handler) HandleElevenLabsStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.Speech.HealthCheck(c.Request.Context()))
}

// readUpload validates and reads an uploaded multipart file. A nil header
// or oversized file aborts the request with a 400; the caller should return
// immediately when ok is false.
func readUpload(c *gin.Context, header *multipart.FileHeader, missingMsg string) (data []byte, mimeType string, ok bool) {
	if header == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": missingMsg})
		return nil, "", false
	}
	if header.Size > MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Plik jest za duży. Maksymalny rozmiar: 50MB"})
		return nil, "", false
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": missingMsg})
		return nil, "", false
	}
	defer file.Close()

	data, err = io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": missingMsg})
		return nil, "", false
	}

	return data, header.Header.Get("Content-Type"), true
}

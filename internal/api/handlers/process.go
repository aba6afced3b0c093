package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"uleary/internal/extract"
	"uleary/internal/models"

	"github.com/gin-gonic/gin"
)

// HandleProcessFile extracts text from an uploaded document and runs one
// generation pass over it without storing a material.
func (h *Handler) HandleProcessFile(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Brak pliku do przetworzenia"})
		return
	}

	kind := models.ProcessingType(c.PostForm("processingType"))
	if kind == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Brak typu przetwarzania"})
		return
	}
	if !kind.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nieznany typ przetwarzania: " + string(kind)})
		return
	}

	data, mimeType, ok := readUpload(c, header, "Brak pliku do przetworzenia")
	if !ok {
		return
	}

	log.Printf("INFO: Processing file: %s, type: %s", header.Filename, kind)
	text, err := extract.Text(mimeType, data)
	if err != nil || strings.TrimSpace(text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nie udało się wyodrębnić tekstu z pliku"})
		return
	}

	result, err := h.generate(c.Request.Context(), text, kind)
	if err != nil {
		log.Printf("ERROR: Error processing file: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Błąd podczas przetwarzania pliku", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"processingType": kind,
		"fileName":       header.Filename,
		"result":         result,
	})
}

type processTextRequest struct {
	Text           string `json:"text"`
	ProcessingType string `json:"processingType"`
}

// HandleProcessText runs one generation pass over raw text.
func (h *Handler) HandleProcessText(c *gin.Context) {
	var req processTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Brak tekstu do przetworzenia"})
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Brak tekstu do przetworzenia"})
		return
	}
	kind := models.ProcessingType(req.ProcessingType)
	if kind == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Brak typu przetwarzania"})
		return
	}
	if !kind.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nieznany typ przetwarzania: " + string(kind)})
		return
	}

	log.Printf("INFO: Processing text, type: %s", kind)
	result, err := h.generate(c.Request.Context(), req.Text, kind)
	if err != nil {
		log.Printf("ERROR: Error processing text: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Błąd podczas przetwarzania tekstu", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"processingType": kind,
		"result":         result,
	})
}

// generate runs content generation and, for lectures, augments the result
// with synthesized audio. Audio failures degrade to a text-only lecture.
func (h *Handler) generate(ctx context.Context, text string, kind models.ProcessingType) (*models.GeneratedContent, error) {
	result, err := h.AI.GenerateContent(ctx, text, kind)
	if err != nil {
		return nil, err
	}

	if kind == models.ProcessingLecture && result.Data != nil {
		var lecture models.LectureContent
		if err := models.Remarshal(result.Data, &lecture); err != nil {
			log.Printf("WARN: Lecture result has unexpected shape, skipping audio: %v", err)
			return result, nil
		}
		result.Data = h.Speech.GenerateLecture(ctx, lecture)
	}

	return result, nil
}

package handlers

import (
	"errors"
	"log"
	"net/http"

	"uleary/internal/extract"
	"uleary/internal/material"

	"github.com/gin-gonic/gin"
)

// HandleUploadMaterial accepts a multipart document upload, extracts its text
// and stores it as a material.
func (h *Handler) HandleUploadMaterial(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Brak pliku do wgrania"})
		return
	}

	data, mimeType, ok := readUpload(c, header, "Brak pliku do wgrania")
	if !ok {
		return
	}
	if !extract.Supported(mimeType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nieprawidłowy typ pliku. Dozwolone: PDF, DOCX, PPTX"})
		return
	}

	log.Printf("INFO: Uploading material: %s", header.Filename)
	m, err := h.Materials.Upload(c.Request.Context(), header.Filename, mimeType, data)
	if err != nil {
		if errors.Is(err, material.ErrEmptyFile) || errors.Is(err, material.ErrNoText) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Nie udało się wyodrębnić tekstu z pliku"})
			return
		}
		log.Printf("ERROR: Error uploading material: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Błąd podczas wgrywania materiału", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"material": gin.H{
			"id":         m.ID,
			"name":       m.Name,
			"pageCount":  m.PageCount,
			"uploadDate": m.UploadDate,
			"size":       m.Size,
		},
	})
}

// HandleListMaterials returns all uploaded materials without their text.
func (h *Handler) HandleListMaterials(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"materials": h.Materials.List(),
	})
}

type summaryRequest struct {
	SelectedPages []int `json:"selectedPages"`
}

// HandleGenerateSummary generates (or returns the existing) summary for a
// material.
func (h *Handler) HandleGenerateSummary(c *gin.Context) {
	materialID := c.Param("materialId")

	var req summaryRequest
	// body is optional; an empty body means summarize everything
	_ = c.ShouldBindJSON(&req)

	summary, isExisting, err := h.Materials.GenerateSummary(c.Request.Context(), materialID, req.SelectedPages)
	if err != nil {
		if errors.Is(err, material.ErrMaterialNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Materiał nie został znaleziony"})
			return
		}
		log.Printf("ERROR: Error generating summary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Błąd podczas generowania podsumowania", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"summary":    summary,
		"isExisting": isExisting,
	})
}

// HandleGetSummary returns the stored summary for a material.
func (h *Handler) HandleGetSummary(c *gin.Context) {
	summary, err := h.Materials.GetSummary(c.Param("materialId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Podsumowanie nie zostało znalezione"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"summary": summary,
	})
}

// HandleDeleteSummary removes the stored summary for a material.
func (h *Handler) HandleDeleteSummary(c *gin.Context) {
	if err := h.Materials.DeleteSummary(c.Param("materialId")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Podsumowanie nie zostało znalezione"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Podsumowanie zostało usunięte",
	})
}

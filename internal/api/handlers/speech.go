package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleVoices lists the available text-to-speech voices.
func (h *Handler) HandleVoices(c *gin.Context) {
	c.JSON(http.StatusOK, h.Speech.Voices(c.Request.Context()))
}

type setVoiceRequest struct {
	VoiceID string `json:"voiceId"`
}

// HandleSetVoice switches the default synthesis voice.
func (h *Handler) HandleSetVoice(c *gin.Context) {
	var req setVoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.VoiceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Voice ID is required"})
		return
	}

	h.Speech.SetVoiceID(req.VoiceID)

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      fmt.Sprintf("Voice changed to %s", req.VoiceID),
		"currentVoice": req.VoiceID,
	})
}

// HandleDownloadAudio is a placeholder: audio is returned inline with the
// lecture response, so there is nothing stored to download.
func (h *Handler) HandleDownloadAudio(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":   "Audio download not implemented yet",
		"message": "Audio is currently embedded in the response",
	})
}

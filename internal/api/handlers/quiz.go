package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"uleary/internal/quiz"

	"github.com/gin-gonic/gin"
)

type startQuizRequest struct {
	Text string `json:"text"`
}

// HandleStartQuiz creates a quiz session with an initial batch of questions.
func (h *Handler) HandleStartQuiz(c *gin.Context) {
	var req startQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Brak tekstu do przetworzenia"})
		return
	}

	result, err := h.Quiz.Start(c.Request.Context(), req.Text)
	if err != nil {
		if errors.Is(err, quiz.ErrEmptyText) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Brak tekstu do przetworzenia"})
			return
		}
		log.Printf("ERROR: Error starting quiz: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Błąd podczas tworzenia quizu", "details": err.Error()})
		return
	}

	log.Printf("INFO: Started quiz session: %s", result.SessionID)
	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"sessionId":          result.SessionID,
		"questions":          result.Questions,
		"totalQuestions":     result.TotalQuestions,
		"maxQuestions":       result.MaxQuestions,
		"questionsGenerated": result.QuestionsGenerated,
		"hasMore":            result.HasMore,
	})
}

// HandleNextQuestion generates one more question for an active session.
// Hitting the question cap is a success-shaped response, not an error.
func (h *Handler) HandleNextQuestion(c *gin.Context) {
	sessionID := c.Param("sessionId")

	result, err := h.Quiz.NextQuestion(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, quiz.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sesja quizu nie została znaleziona lub wygasła"})
			return
		}
		log.Printf("ERROR: Error generating next question: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Błąd podczas generowania pytania", "details": err.Error()})
		return
	}

	if result.LimitReached {
		c.JSON(http.StatusOK, gin.H{
			"success":            false,
			"message":            fmt.Sprintf("Osiągnięto maksymalną liczbę pytań (%d)", result.MaxQuestions),
			"hasMore":            false,
			"questionsGenerated": result.QuestionsGenerated,
			"maxQuestions":       result.MaxQuestions,
		})
		return
	}
	if result.Question == nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "Nie udało się wygenerować nowego pytania",
			"hasMore": false,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"question":           result.Question,
		"questionNumber":     result.QuestionNumber,
		"questionsGenerated": result.QuestionsGenerated,
		"maxQuestions":       result.MaxQuestions,
		"hasMore":            result.HasMore,
	})
}

type answerRequest struct {
	QuestionIndex  int    `json:"questionIndex"`
	SelectedAnswer string `json:"selectedAnswer"`
}

// HandleAnswer grades a submitted answer and returns the running score.
func (h *Handler) HandleAnswer(c *gin.Context) {
	sessionID := c.Param("sessionId")

	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Pytanie nie zostało znalezione"})
		return
	}

	result, err := h.Quiz.Answer(sessionID, req.QuestionIndex, req.SelectedAnswer)
	if err != nil {
		switch {
		case errors.Is(err, quiz.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Sesja quizu nie została znaleziona"})
		case errors.Is(err, quiz.ErrQuestionIndex):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Pytanie nie zostało znalezione"})
		default:
			log.Printf("ERROR: Error submitting answer: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Błąd podczas sprawdzania odpowiedzi", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"correct":       result.Correct,
		"correctAnswer": result.CorrectAnswer,
		"explanation":   result.Explanation,
		"score":         result.Score,
		"totalAnswered": result.TotalAnswered,
		"percentage":    result.Percentage,
	})
}

// HandleEndQuiz ends a session and returns its final results.
func (h *Handler) HandleEndQuiz(c *gin.Context) {
	sessionID := c.Param("sessionId")

	result, err := h.Quiz.End(sessionID)
	if err != nil {
		switch {
		case errors.Is(err, quiz.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Sesja quizu nie została znaleziona"})
		case errors.Is(err, quiz.ErrSessionEnded):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Sesja quizu została już zakończona"})
		default:
			log.Printf("ERROR: Error ending quiz: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Błąd podczas kończenia quizu", "details": err.Error()})
		}
		return
	}

	log.Printf("INFO: Quiz session ended: %s", sessionID)
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"finalResults": result,
	})
}

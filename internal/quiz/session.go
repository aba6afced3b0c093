// Package quiz manages interactive quiz sessions: a batch of opening
// questions, on-demand follow-ups up to a hard cap, answer grading with a
// running score, and delayed cleanup after a session ends.
package quiz

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"time"

	"uleary/internal/models"
	"uleary/internal/store"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

const (
	// MaxQuestions is the hard cap of questions per session.
	MaxQuestions = 10
	// InitialBatchSize is the number of questions generated at session start.
	InitialBatchSize = 3
	// purgeDelay is how long an ended session stays readable before removal.
	purgeDelay = time.Hour
)

// Sentinel errors of the session state machine. Messages are user-facing.
var (
	ErrSessionNotFound = errors.New("sesja quizu nie została znaleziona lub wygasła")
	ErrSessionEnded    = errors.New("sesja quizu została już zakończona")
	ErrQuestionIndex   = errors.New("pytanie nie zostało znalezione")
	ErrEmptyText       = errors.New("brak tekstu do przetworzenia")
)

// QuestionGenerator produces quiz questions from source text. Implementations
// must not fail; on trouble they return fewer (possibly zero) questions.
type QuestionGenerator interface {
	GenerateQuizQuestions(ctx context.Context, text string, count int) []models.Question
}

// Session is one in-flight quiz. All fields are guarded by mu.
type Session struct {
	mu sync.Mutex

	ID                 string
	SourceText         string
	Questions          []models.Question
	Score              int
	TotalAnswered      int
	StartTime          time.Time
	EndTime            time.Time
	Active             bool
	QuestionsGenerated int
}

// StartResult is the outcome of starting a session.
type StartResult struct {
	SessionID          string            `json:"sessionId"`
	Questions          []models.Question `json:"questions"`
	TotalQuestions     int               `json:"totalQuestions"`
	MaxQuestions       int               `json:"maxQuestions"`
	QuestionsGenerated int               `json:"questionsGenerated"`
	HasMore            bool              `json:"hasMore"`
}

// NextResult is the outcome of requesting another question. Question is nil
// when generation produced nothing; LimitReached marks the cap being hit,
// which is a normal result rather than an error.
type NextResult struct {
	Question           *models.Question
	QuestionNumber     int
	QuestionsGenerated int
	MaxQuestions       int
	HasMore            bool
	LimitReached       bool
}

// AnswerResult is the graded outcome of one answer.
type AnswerResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
	Score         int    `json:"score"`
	TotalAnswered int    `json:"totalAnswered"`
	Percentage    int    `json:"percentage"`
}

// FinalResults summarizes an ended session.
type FinalResults struct {
	Score              int `json:"score"`
	TotalAnswered      int `json:"totalAnswered"`
	Percentage         int `json:"percentage"`
	Duration           int `json:"duration"`
	QuestionsGenerated int `json:"questionsGenerated"`
}

// Manager owns the session store and drives the state machine.
type Manager struct {
	generator QuestionGenerator
	clock     clockwork.Clock
	sessions  *store.Store[*Session]
}

// NewManager creates a manager using the given generator and clock.
func NewManager(generator QuestionGenerator, clock clockwork.Clock) *Manager {
	return &Manager{
		generator: generator,
		clock:     clock,
		sessions:  store.New[*Session](clock),
	}
}

// Start creates a session seeded with the opening batch of questions.
func (m *Manager) Start(ctx context.Context, text string) (*StartResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	questions := m.generator.GenerateQuizQuestions(ctx, text, InitialBatchSize)

	session := &Session{
		ID:                 "quiz_" + uuid.NewString(),
		SourceText:         text,
		Questions:          questions,
		StartTime:          m.clock.Now(),
		Active:             true,
		QuestionsGenerated: len(questions),
	}
	m.sessions.Put(session.ID, session)

	return &StartResult{
		SessionID:          session.ID,
		Questions:          questions,
		TotalQuestions:     len(questions),
		MaxQuestions:       MaxQuestions,
		QuestionsGenerated: session.QuestionsGenerated,
		HasMore:            session.QuestionsGenerated < MaxQuestions,
	}, nil
}

// NextQuestion generates one more question for an active session. The lock is
// released during generation; the cap is re-checked afterwards so concurrent
// requests cannot push a session past MaxQuestions, the overflow question is
// discarded as a limit-reached result instead.
func (m *Manager) NextQuestion(ctx context.Context, sessionID string) (*NextResult, error) {
	session, err := m.activeSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	if !session.Active {
		session.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	if session.QuestionsGenerated >= MaxQuestions {
		result := m.limitReachedLocked(session)
		session.mu.Unlock()
		return result, nil
	}
	sourceText := session.SourceText
	session.mu.Unlock()

	questions := m.generator.GenerateQuizQuestions(ctx, sourceText, 1)

	session.mu.Lock()
	defer session.mu.Unlock()

	if !session.Active {
		return nil, ErrSessionNotFound
	}
	if session.QuestionsGenerated >= MaxQuestions {
		return m.limitReachedLocked(session), nil
	}
	if len(questions) == 0 {
		return &NextResult{
			QuestionsGenerated: session.QuestionsGenerated,
			MaxQuestions:       MaxQuestions,
			HasMore:            false,
		}, nil
	}

	question := questions[0]
	session.Questions = append(session.Questions, question)
	session.QuestionsGenerated++

	return &NextResult{
		Question:           &question,
		QuestionNumber:     len(session.Questions),
		QuestionsGenerated: session.QuestionsGenerated,
		MaxQuestions:       MaxQuestions,
		HasMore:            session.QuestionsGenerated < MaxQuestions,
	}, nil
}

func (m *Manager) limitReachedLocked(session *Session) *NextResult {
	return &NextResult{
		QuestionsGenerated: session.QuestionsGenerated,
		MaxQuestions:       MaxQuestions,
		HasMore:            false,
		LimitReached:       true,
	}
}

// Answer grades the answer for the question at questionIndex. Grading is
// strict string equality against the stored correct answer.
func (m *Manager) Answer(sessionID string, questionIndex int, selectedAnswer string) (*AnswerResult, error) {
	session, err := m.activeSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if !session.Active {
		return nil, ErrSessionNotFound
	}
	if questionIndex < 0 || questionIndex >= len(session.Questions) {
		return nil, ErrQuestionIndex
	}

	question := session.Questions[questionIndex]
	correct := selectedAnswer == question.CorrectAnswer

	session.TotalAnswered++
	if correct {
		session.Score++
	}

	return &AnswerResult{
		Correct:       correct,
		CorrectAnswer: question.CorrectAnswer,
		Explanation:   question.Explanation,
		Score:         session.Score,
		TotalAnswered: session.TotalAnswered,
		Percentage:    percentage(session.Score, session.TotalAnswered),
	}, nil
}

// End deactivates the session, returns its final results and schedules the
// session for removal after the purge delay. Ending twice is an error.
func (m *Manager) End(sessionID string) (*FinalResults, error) {
	session, ok := m.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if !session.Active {
		return nil, ErrSessionEnded
	}

	session.Active = false
	session.EndTime = m.clock.Now()
	m.sessions.ScheduleDelete(sessionID, purgeDelay)

	return &FinalResults{
		Score:              session.Score,
		TotalAnswered:      session.TotalAnswered,
		Percentage:         percentage(session.Score, session.TotalAnswered),
		Duration:           int(math.Round(session.EndTime.Sub(session.StartTime).Seconds())),
		QuestionsGenerated: len(session.Questions),
	}, nil
}

// Len returns the number of live sessions, ended-but-not-purged included.
func (m *Manager) Len() int {
	return m.sessions.Len()
}

// activeSession fetches a session and rejects missing or ended ones.
func (m *Manager) activeSession(sessionID string) (*Session, error) {
	session, ok := m.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	session.mu.Lock()
	active := session.Active
	session.mu.Unlock()
	if !active {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func percentage(score, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}

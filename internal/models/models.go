package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// ProcessingType selects which prompt template and output schema applies.
type ProcessingType string

const (
	ProcessingSummary ProcessingType = "summary"
	ProcessingQuiz    ProcessingType = "quiz"
	ProcessingLecture ProcessingType = "lecture"
)

// Valid reports whether t is one of the recognized processing types.
func (t ProcessingType) Valid() bool {
	switch t {
	case ProcessingSummary, ProcessingQuiz, ProcessingLecture:
		return true
	}
	return false
}

// Material is an uploaded document kept for later derived-artifact generation.
// FullText holds the extracted text and is never serialized to clients.
type Material struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	MimeType   string    `json:"mimeType"`
	Size       int64     `json:"size"`
	UploadDate time.Time `json:"uploadDate"`
	PageCount  int       `json:"pageCount"`
	FullText   string    `json:"-"`
	URL        string    `json:"url,omitempty"`
	HasQuiz    bool      `json:"hasQuiz"`
	HasSummary bool      `json:"hasSummary"`
	HasLecture bool      `json:"hasLecture"`
}

// MaterialInfo is the list projection of a Material (no extracted text).
type MaterialInfo struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	PageCount  int       `json:"pageCount"`
	UploadDate time.Time `json:"uploadDate"`
	Size       int64     `json:"size"`
	HasQuiz    bool      `json:"hasQuiz"`
	HasSummary bool      `json:"hasSummary"`
	HasLecture bool      `json:"hasLecture"`
}

// Info returns the list projection of m.
func (m *Material) Info() MaterialInfo {
	return MaterialInfo{
		ID:         m.ID,
		Name:       m.Name,
		PageCount:  m.PageCount,
		UploadDate: m.UploadDate,
		Size:       m.Size,
		HasQuiz:    m.HasQuiz,
		HasSummary: m.HasSummary,
		HasLecture: m.HasLecture,
	}
}

// SummaryContent is the structured payload of a generated summary.
type SummaryContent struct {
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"keyPoints"`
}

// Summary is a stored summary for a material. One summary per material at a
// time; the summary store is keyed by material id.
type Summary struct {
	ID            string         `json:"id"`
	MaterialID    string         `json:"materialId"`
	MaterialName  string         `json:"materialName"`
	PageRange     string         `json:"pageRange"`
	Content       SummaryContent `json:"content"`
	CreatedDate   time.Time      `json:"createdDate"`
	SelectedPages []int          `json:"selectedPages"`
}

// Question is a single multiple-choice question. Options maps option labels
// ("A".."D") to option text. Immutable once generated.
type Question struct {
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correctAnswer"`
	Explanation   string            `json:"explanation"`
}

// QuizContent is the structured payload of a generated quiz.
type QuizContent struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// LectureSection is one narrated section of a lecture script.
type LectureSection struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Duration string `json:"duration"`
}

// LectureContent is the structured payload of a generated lecture script.
type LectureContent struct {
	Title    string           `json:"title"`
	Duration string           `json:"duration"`
	Script   string           `json:"script"`
	Sections []LectureSection `json:"sections"`
}

// LectureWithAudio is a lecture augmented with the outcome of speech
// synthesis. AudioBuffer marshals as base64 in JSON.
type LectureWithAudio struct {
	LectureContent
	AudioAvailable bool   `json:"audioAvailable"`
	AudioBuffer    []byte `json:"audioBuffer,omitempty"`
	AudioMimeType  string `json:"audioMimeType,omitempty"`
	AudioSize      int    `json:"audioSize,omitempty"`
	Error          string `json:"error,omitempty"`
	Message        string `json:"message"`
}

// GeneratedContent wraps the parsed (or fallback-synthesized) output of a
// generation call. Data holds the decoded JSON for well-formed responses and
// a typed fallback structure otherwise.
type GeneratedContent struct {
	Type      ProcessingType `json:"type"`
	Data      any            `json:"data"`
	Formatted bool           `json:"formatted"`
}

// ServiceHealth describes the availability of an external collaborator.
type ServiceHealth struct {
	Available      bool   `json:"available"`
	Service        string `json:"service"`
	Model          string `json:"model,omitempty"`
	Status         string `json:"status,omitempty"`
	Error          string `json:"error,omitempty"`
	CharacterLimit int64  `json:"characterLimit,omitempty"`
	CharactersUsed int64  `json:"charactersUsed,omitempty"`
}

// Voice is a single text-to-speech voice.
type Voice struct {
	VoiceID  string `json:"voice_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Language string `json:"language"`
}

// VoiceList is the response for voice listing.
type VoiceList struct {
	Available bool    `json:"available"`
	Voices    []Voice `json:"voices"`
	Error     string  `json:"error,omitempty"`
}

// Remarshal converts src into dst via a JSON round trip. Used at the boundary
// between loosely-typed generation data and the typed domain structs; unknown
// fields in src are dropped rather than rejected.
func Remarshal(src, dst any) error {
	buf, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.NewDecoder(bytes.NewReader(buf)).Decode(dst)
}

package ai

import (
	"encoding/json"
	"log"
	"regexp"

	"uleary/internal/models"
)

var (
	jsonFencePattern = regexp.MustCompile("```json\\s*")
	fencePattern     = regexp.MustCompile("```\\s*")
	jsonBodyPattern  = regexp.MustCompile(`(?s)\{.*\}`)
)

// cleanResponse strips markdown code fences and narrows the text to the
// outermost JSON object candidate (greedy first-{ to last-}).
func cleanResponse(raw string) string {
	clean := jsonFencePattern.ReplaceAllString(raw, "")
	clean = fencePattern.ReplaceAllString(clean, "")
	if match := jsonBodyPattern.FindString(clean); match != "" {
		clean = match
	}
	return clean
}

// ParseContent turns a raw model response into generated content. Well-formed
// JSON is kept as decoded data; anything else is wrapped in a deterministic
// fallback structure seeded from the raw text. It never fails.
func ParseContent(raw string, kind models.ProcessingType) *models.GeneratedContent {
	var data map[string]any
	if err := json.Unmarshal([]byte(cleanResponse(raw)), &data); err != nil {
		log.Printf("WARN: Failed to parse model response as JSON: %v", err)
		return &models.GeneratedContent{
			Type:      kind,
			Data:      fallbackStructure(raw, kind),
			Formatted: true,
		}
	}

	return &models.GeneratedContent{
		Type:      kind,
		Data:      data,
		Formatted: true,
	}
}

// ParseQuizQuestions decodes a {"questions": [...]} response. Malformed JSON
// or an empty question list yields an empty slice; the caller decides how to
// fall back.
func ParseQuizQuestions(raw string) []models.Question {
	var parsed struct {
		Questions []models.Question `json:"questions"`
	}
	if err := json.Unmarshal([]byte(cleanResponse(raw)), &parsed); err != nil {
		log.Printf("WARN: Failed to parse quiz response as JSON: %v", err)
		return nil
	}
	return parsed.Questions
}

// fallbackStructure builds a typed structure around unparseable model output
// so the client always receives the shape it expects.
func fallbackStructure(text string, kind models.ProcessingType) any {
	switch kind {
	case models.ProcessingSummary:
		return models.SummaryContent{
			Title:     "Podsumowanie materiału",
			Summary:   text,
			KeyPoints: []string{"Główne informacje z materiału"},
		}
	case models.ProcessingQuiz:
		return models.QuizContent{
			Title: "Quiz z materiału",
			Questions: []models.Question{
				{
					Question: "Na podstawie materiału - jakie jest główne zagadnienie?",
					Options: map[string]string{
						"A": "Opcja A",
						"B": "Opcja B",
						"C": "Opcja C",
						"D": "Opcja D",
					},
					CorrectAnswer: "A",
					Explanation:   truncateRunes(text, 200) + "...",
				},
			},
		}
	case models.ProcessingLecture:
		return models.LectureContent{
			Title:    "Wykład na podstawie materiału",
			Duration: "5 minut",
			Script:   text,
			Sections: []models.LectureSection{
				{
					Title:    "Treść wykładu",
					Content:  text,
					Duration: "5 minut",
				},
			},
		}
	default:
		return map[string]any{"content": text}
	}
}

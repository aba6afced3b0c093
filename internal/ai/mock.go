package ai

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"uleary/internal/models"
)

// Offline generation. Used whenever no provider is configured or a provider
// call fails, so the API surface stays functional without any API keys.

var polishStopWords = map[string]bool{
	"i": true, "a": true, "w": true, "z": true, "na": true, "do": true,
	"po": true, "o": true, "że": true, "się": true, "lub": true,
	"oraz": true, "może": true, "to": true, "jest": true, "są": true,
	"można": true, "także": true, "przez": true, "tej": true, "tym": true,
}

var sentenceSplitPattern = regexp.MustCompile(`[.!?]+`)

var mockQuestionTemplates = []string{
	"Zgodnie z materiałem, co dotyczy",
	"Na podstawie tekstu, które stwierdzenie jest prawdziwe odnośnie",
	"Materiał wskazuje, że głównym aspektem",
	"W kontekście omawianego tematu, co charakteryzuje",
	"Według przedstawionych informacji",
}

// keywordCandidates returns up to 20 lowercase tokens longer than 4
// characters, stop words excluded.
func keywordCandidates(text string) []string {
	var keywords []string
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if utf8.RuneCountInString(word) <= 4 || polishStopWords[word] {
			continue
		}
		keywords = append(keywords, word)
		if len(keywords) == 20 {
			break
		}
	}
	return keywords
}

// sentenceCandidates returns up to 5 sentence fragments longer than 10
// characters.
func sentenceCandidates(text string) []string {
	var sentences []string
	for _, s := range sentenceSplitPattern.Split(text, -1) {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) <= 10 {
			continue
		}
		sentences = append(sentences, s)
		if len(sentences) == 5 {
			break
		}
	}
	return sentences
}

// MockQuizQuestions builds count deterministic questions seeded from the
// source text. Templates and correct answers cycle so repeated calls over the
// same text vary with the index, not with randomness.
func MockQuizQuestions(text string, count int) []models.Question {
	keywords := keywordCandidates(text)
	sentences := sentenceCandidates(text)

	pick := func(list []string, i int, fallback string) string {
		if len(list) == 0 {
			return fallback
		}
		return list[i%len(list)]
	}

	questions := make([]models.Question, 0, count)
	for i := 0; i < count; i++ {
		template := mockQuestionTemplates[i%len(mockQuestionTemplates)]
		keyword := pick(keywords, i, "omawianego zagadnienia")
		sentence := pick(sentences, i, "podstawowych zagadnień omówionych w materiale")
		concept1 := pick(keywords, i*2, "pierwszego aspektu")
		concept2 := pick(keywords, i*2+1, "drugiego aspektu")

		questions = append(questions, models.Question{
			Question: fmt.Sprintf("%s %s?", template, keyword),
			Options: map[string]string{
				"A": fmt.Sprintf("Odnosi się do %s i powiązanych zagadnień", concept1),
				"B": fmt.Sprintf("Dotyczy %s oraz związanych z nim procesów", concept2),
				"C": fmt.Sprintf("Koncentruje się na %s...", truncateRunes(sentence, 50)),
				"D": "Obejmuje inne aspekty niż wymienione powyżej",
			},
			CorrectAnswer: []string{"A", "B", "C"}[i%3],
			Explanation:   "Na podstawie analizy materiału, prawidłowa odpowiedź odnosi się do kluczowych konceptów omówionych w tekście.",
		})
	}

	return questions
}

// MockContent returns canned content for a processing type.
func MockContent(kind models.ProcessingType) (*models.GeneratedContent, error) {
	switch kind {
	case models.ProcessingSummary:
		return &models.GeneratedContent{
			Type: kind,
			Data: models.SummaryContent{
				Title:   "Podsumowanie materiału",
				Summary: "To jest przykładowe podsumowanie wygenerowane przez AI. W rzeczywistej implementacji tutaj byłaby analiza dostarczonego materiału.",
				KeyPoints: []string{
					"Główny punkt 1 z materiału",
					"Kluczowa informacja 2",
					"Ważny wniosek 3",
				},
			},
			Formatted: true,
		}, nil
	case models.ProcessingQuiz:
		return &models.GeneratedContent{
			Type: kind,
			Data: models.QuizContent{
				Title: "Quiz z materiału",
				Questions: []models.Question{
					{
						Question: "Jakie jest główne zagadnienie omawiane w materiale?",
						Options: map[string]string{
							"A": "Opcja pierwsza",
							"B": "Opcja druga (prawidłowa)",
							"C": "Opcja trzecia",
							"D": "Opcja czwarta",
						},
						CorrectAnswer: "B",
						Explanation:   "Ta odpowiedź jest prawidłowa na podstawie materiału...",
					},
				},
			},
			Formatted: true,
		}, nil
	case models.ProcessingLecture:
		intro := "Witamy na dzisiejszym wykładzie. Omówimy kluczowe zagadnienia przedstawione w materiale."
		main := "Główna treść wykładu zostałaby tutaj wygenerowana na podstawie analizy dostarczonego materiału."
		outro := "Podsumowując, omówiliśmy najważniejsze aspekty materiału."
		return &models.GeneratedContent{
			Type: kind,
			Data: models.LectureContent{
				Title:    "Wykład na podstawie materiału",
				Duration: "5 minut",
				Script:   strings.Join([]string{intro, main, outro}, " "),
				Sections: []models.LectureSection{
					{Title: "Wprowadzenie", Content: intro, Duration: "1 minuta"},
					{Title: "Główna część", Content: main, Duration: "3 minuty"},
					{Title: "Podsumowanie", Content: outro, Duration: "1 minuta"},
				},
			},
			Formatted: true,
		}, nil
	default:
		return nil, fmt.Errorf("nieznany typ przetwarzania: %s", kind)
	}
}

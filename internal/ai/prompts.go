package ai

import (
	"fmt"

	"uleary/internal/models"
)

// System prompts for content generation and quiz question generation.
const (
	contentSystemPrompt = "Jesteś asystentem edukacyjnym specjalizującym się w tworzeniu materiałów do nauki w języku polskim."
	quizSystemPrompt    = "Jesteś asystentem edukacyjnym specjalizującym się w tworzeniu pytań quizowych w języku polskim."
)

const summaryPrompt = `Stwórz zwięzłe i przejrzyste podsumowanie tego materiału w języku polskim.
Podsumowanie powinno:
- Zawierać najważniejsze informacje i kluczowe punkty
- Być podzielone na logiczne sekcje
- Być napisane prostym i zrozumiałym językiem
- Mieć długość około 200-300 słów

WAŻNE: Odpowiedz TYLKO w formacie JSON, bez dodatkowych komentarzy:
{
  "title": "Tytuł podsumowania",
  "summary": "Treść podsumowania",
  "keyPoints": ["punkt 1", "punkt 2", "punkt 3"]
}`

const quizPrompt = `Stwórz quiz wielokrotnego wyboru na podstawie tego materiału w języku polskim.
Quiz powinien:
- Zawierać 5-6 pytań różnej trudności
- Każde pytanie ma 4 opcje odpowiedzi (A, B, C, D)
- Tylko jedna odpowiedź jest prawidłowa
- Pytania powinny sprawdzać zrozumienie materiału

WAŻNE: Odpowiedz TYLKO w formacie JSON, bez dodatkowych komentarzy:
{
  "title": "Tytuł quizu",
  "questions": [
    {
      "question": "Treść pytania?",
      "options": {
        "A": "Opcja A",
        "B": "Opcja B",
        "C": "Opcja C",
        "D": "Opcja D"
      },
      "correctAnswer": "A",
      "explanation": "Wyjaśnienie dlaczego ta odpowiedź jest prawidłowa"
    }
  ]
}`

const lecturePrompt = `Stwórz skrypt lektora/wykładu na podstawie tego materiału w języku polskim.
Skrypt powinien:
- Być napisany w sposób naturalny, jakby lektor opowiadał materiał
- Zawierać wprowadzenie, główną część i podsumowanie
- Używać prostego języka i przykładów
- Być podzielony na sekcje z czasem trwania
- Mieć długość około 3-5 minut czytania

WAŻNE: Odpowiedz TYLKO w formacie JSON, bez dodatkowych komentarzy:
{
  "title": "Tytuł wykładu",
  "duration": "5 minut",
  "script": "Pełny tekst do przeczytania przez lektora w sposób naturalny i płynny",
  "sections": [
    {
      "title": "Wprowadzenie",
      "content": "Tekst do przeczytania przez lektora",
      "duration": "1 minuta"
    },
    {
      "title": "Główna część",
      "content": "Tekst głównej części",
      "duration": "3 minuty"
    },
    {
      "title": "Podsumowanie",
      "content": "Tekst podsumowania",
      "duration": "1 minuta"
    }
  ]
}`

// buildPrompt assembles the full prompt for a processing type.
func buildPrompt(text string, kind models.ProcessingType) (string, error) {
	base := fmt.Sprintf("Oto materiał do przetworzenia:\n\n%s\n\n", text)

	switch kind {
	case models.ProcessingSummary:
		return base + summaryPrompt, nil
	case models.ProcessingQuiz:
		return base + quizPrompt, nil
	case models.ProcessingLecture:
		return base + lecturePrompt, nil
	default:
		return "", fmt.Errorf("nieznany typ przetwarzania: %s", kind)
	}
}

// buildQuizQuestionsPrompt assembles the prompt for on-demand quiz question
// generation. The source text is truncated to 3000 characters to keep
// requests small.
func buildQuizQuestionsPrompt(text string, count int) string {
	limited := truncateRunes(text, 3000)
	if limited != text {
		limited += "..."
	}

	return fmt.Sprintf("Oto materiał do przetworzenia:\n\n%s\n\n", limited) +
		fmt.Sprintf(`Stwórz %d pytań wielokrotnego wyboru na podstawie tego materiału w języku polskim.
Każde pytanie powinno:
- Być różne od poprzednich pytań na ten temat
- Mieć 4 opcje odpowiedzi (A, B, C, D)
- Mieć tylko jedną prawidłową odpowiedź
- Sprawdzać zrozumienie materiału
- Być jasne i precyzyjne

WAŻNE: Odpowiedz TYLKO w formacie JSON, bez dodatkowych komentarzy:
{
  "questions": [
    {
      "question": "Treść pytania?",
      "options": {
        "A": "Opcja A",
        "B": "Opcja B",
        "C": "Opcja C",
        "D": "Opcja D"
      },
      "correctAnswer": "A",
      "explanation": "Wyjaśnienie dlaczego ta odpowiedź jest prawidłowa"
    }
  ]
}`, count)
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

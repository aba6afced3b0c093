package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"uleary/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, audio []byte) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /voices", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("xi-api-key") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"voices": []map[string]any{
				{"voice_id": "v1", "name": "Rachel", "category": "premade", "labels": map[string]string{"language": "en"}},
				{"voice_id": "v2", "name": "Antoni", "category": "premade"},
			},
		})
	})
	mux.HandleFunc("GET /user", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"subscription": map[string]any{
				"character_limit": 10000,
				"character_count": 1234,
			},
		})
	})
	mux.HandleFunc("POST /text-to-speech/", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, ModelID, body["model_id"])
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(audio)
	})
	return httptest.NewServer(mux)
}

func TestGenerateSpeech(t *testing.T) {
	audio := []byte("mp3-bytes")
	srv := newTestServer(t, audio)
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	require.True(t, c.Available())

	result, err := c.GenerateSpeech(context.Background(), "Witamy na wykładzie")
	require.NoError(t, err)
	assert.Equal(t, audio, result.AudioBuffer)
	assert.Equal(t, "audio/mpeg", result.MimeType)
}

func TestGenerateSpeechUnavailable(t *testing.T) {
	c := newClient("", DefaultBaseURL)

	_, err := c.GenerateSpeech(context.Background(), "tekst")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
}

func TestGenerateLectureWithAudio(t *testing.T) {
	srv := newTestServer(t, []byte("audio"))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	lecture := models.LectureContent{
		Title:  "Wykład",
		Script: "Pełny skrypt wykładu.",
	}

	result := c.GenerateLecture(context.Background(), lecture)
	assert.True(t, result.AudioAvailable)
	assert.Equal(t, []byte("audio"), result.AudioBuffer)
	assert.Equal(t, "audio/mpeg", result.AudioMimeType)
	assert.Equal(t, 5, result.AudioSize)
	assert.Equal(t, "Lecture audio generated successfully", result.Message)
	assert.Equal(t, "Wykład", result.Title)
}

func TestGenerateLectureJoinsSections(t *testing.T) {
	srv := newTestServer(t, []byte("audio"))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	lecture := models.LectureContent{
		Sections: []models.LectureSection{
			{Content: "Część pierwsza."},
			{Content: "Część druga."},
		},
	}

	result := c.GenerateLecture(context.Background(), lecture)
	assert.True(t, result.AudioAvailable)
}

func TestGenerateLectureNoKey(t *testing.T) {
	c := newClient("", DefaultBaseURL)

	result := c.GenerateLecture(context.Background(), models.LectureContent{Script: "tekst"})
	assert.False(t, result.AudioAvailable)
	assert.Empty(t, result.AudioBuffer)
	assert.Contains(t, result.Message, "not available")
}

func TestGenerateLectureEmptyScript(t *testing.T) {
	srv := newTestServer(t, []byte("audio"))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	result := c.GenerateLecture(context.Background(), models.LectureContent{})
	assert.False(t, result.AudioAvailable)
	assert.NotEmpty(t, result.Error)
}

func TestVoices(t *testing.T) {
	srv := newTestServer(t, nil)
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	list := c.Voices(context.Background())
	require.True(t, list.Available)
	require.Len(t, list.Voices, 2)
	assert.Equal(t, "Rachel", list.Voices[0].Name)
	assert.Equal(t, "en", list.Voices[0].Language)
	assert.Equal(t, "unknown", list.Voices[1].Language)
}

func TestVoicesUnavailable(t *testing.T) {
	c := newClient("", DefaultBaseURL)
	list := c.Voices(context.Background())
	assert.False(t, list.Available)
	assert.Empty(t, list.Voices)
}

func TestSetVoiceID(t *testing.T) {
	c := newClient("key", DefaultBaseURL)
	assert.Equal(t, DefaultVoiceID, c.VoiceID())
	c.SetVoiceID("custom")
	assert.Equal(t, "custom", c.VoiceID())
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t, nil)
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	health := c.HealthCheck(context.Background())
	assert.True(t, health.Available)
	assert.Equal(t, "ElevenLabs", health.Service)
	assert.Equal(t, int64(10000), health.CharacterLimit)
	assert.Equal(t, int64(1234), health.CharactersUsed)

	c = newClient("", DefaultBaseURL)
	health = c.HealthCheck(context.Background())
	assert.False(t, health.Available)
	assert.Equal(t, "API key not configured", health.Error)
}

func TestEstimateReadingTime(t *testing.T) {
	assert.Equal(t, 0, EstimateReadingTime(""))
	assert.Equal(t, 1, EstimateReadingTime("jedno słowo"))
	long := ""
	for i := 0; i < 300; i++ {
		long += "słowo "
	}
	assert.Equal(t, 2, EstimateReadingTime(long))
}

func TestCleanTextForSpeech(t *testing.T) {
	assert.Equal(t, "Cześć, świecie! To jest test.", CleanTextForSpeech("Cześć,  świecie! To © jest ✨ test."))
}

// Package speech synthesizes lecture audio through the ElevenLabs REST API.
// The client is optional: without an API key every method degrades to a
// text-only result instead of failing.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"uleary/internal/models"
)

const (
	// DefaultBaseURL is the ElevenLabs API root.
	DefaultBaseURL = "https://api.elevenlabs.io/v1"
	// DefaultVoiceID is the Rachel voice.
	DefaultVoiceID = "21m00Tcm4TlvDq8ikWAM"
	// ModelID is the multilingual synthesis model, needed for Polish text.
	ModelID = "eleven_multilingual_v2"
)

// VoiceSettings tunes the synthesis voice.
type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

func defaultVoiceSettings() VoiceSettings {
	return VoiceSettings{
		Stability:       0.5,
		SimilarityBoost: 0.75,
		Style:           0.0,
		UseSpeakerBoost: true,
	}
}

// SpeechResult is the output of a synthesis call.
type SpeechResult struct {
	AudioBuffer []byte
	MimeType    string
}

// Client calls the ElevenLabs API. Audio generation can take a long time, so
// it uses a separate HTTP client with a generous timeout; status and voice
// listing use a short one.
type Client struct {
	apiKey  string
	baseURL string

	ttsClient *http.Client
	apiClient *http.Client

	mu        sync.RWMutex
	voiceID   string
	available bool
}

// NewClient builds a client from ELEVENLABS_API_KEY and ELEVENLABS_VOICE_ID.
// With a key present it probes the voices endpoint once to decide
// availability.
func NewClient() *Client {
	c := newClient(os.Getenv("ELEVENLABS_API_KEY"), DefaultBaseURL)
	if voiceID := os.Getenv("ELEVENLABS_VOICE_ID"); voiceID != "" {
		c.voiceID = voiceID
	}

	if c.apiKey == "" {
		log.Println("INFO: ELEVENLABS_API_KEY not set, text-to-speech disabled")
		return c
	}
	c.probe()
	return c
}

// NewClientWithBaseURL builds a client against a custom API root. Used by
// tests with an httptest server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := newClient(apiKey, baseURL)
	if c.apiKey != "" {
		c.probe()
	}
	return c
}

func newClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:    apiKey,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		voiceID:   DefaultVoiceID,
		ttsClient: &http.Client{Timeout: 60 * time.Second},
		apiClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// probe checks the API once and records availability.
func (c *Client) probe() {
	voices := c.fetchVoices(context.Background())
	c.mu.Lock()
	c.available = voices.Available
	c.mu.Unlock()
	if voices.Available {
		log.Printf("INFO: ElevenLabs API initialized, %d voices available", len(voices.Voices))
	} else {
		log.Printf("WARN: ElevenLabs not available: %s", voices.Error)
	}
}

// Available reports whether the service can synthesize audio.
func (c *Client) Available() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.available
}

// VoiceID returns the current synthesis voice.
func (c *Client) VoiceID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.voiceID
}

// SetVoiceID switches the synthesis voice for subsequent calls.
func (c *Client) SetVoiceID(voiceID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.voiceID = voiceID
}

// GenerateSpeech synthesizes text into MP3 audio with the current voice.
func (c *Client) GenerateSpeech(ctx context.Context, text string) (*SpeechResult, error) {
	if !c.Available() {
		return nil, fmt.Errorf("ElevenLabs service is not available")
	}

	body, err := json.Marshal(map[string]any{
		"text":           text,
		"model_id":       ModelID,
		"voice_settings": defaultVoiceSettings(),
	})
	if err != nil {
		return nil, fmt.Errorf("błąd generowania mowy: %w", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", c.baseURL, c.VoiceID())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("błąd generowania mowy: %w", err)
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.ttsClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("błąd generowania mowy: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("błąd generowania mowy: ElevenLabs API returned status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("błąd generowania mowy: %w", err)
	}

	return &SpeechResult{AudioBuffer: audio, MimeType: "audio/mpeg"}, nil
}

// GenerateLecture augments a lecture script with synthesized audio. It never
// fails: any problem yields the same lecture marked audioAvailable=false with
// an explanatory message.
func (c *Client) GenerateLecture(ctx context.Context, lecture models.LectureContent) *models.LectureWithAudio {
	result := &models.LectureWithAudio{LectureContent: lecture}

	if !c.Available() {
		log.Println("INFO: ElevenLabs not available, returning text-only lecture")
		result.Message = "Audio generation not available - ElevenLabs API key not configured"
		return result
	}

	script := lecture.Script
	if script == "" && len(lecture.Sections) > 0 {
		parts := make([]string, 0, len(lecture.Sections))
		for _, section := range lecture.Sections {
			parts = append(parts, section.Content)
		}
		script = strings.Join(parts, "\n\n")
	}
	if script == "" {
		result.Error = "no script content found for lecture"
		result.Message = "Failed to generate audio, text-only version available"
		return result
	}

	log.Printf("INFO: Generating lecture audio (%d characters)", len(script))
	speech, err := c.GenerateSpeech(ctx, script)
	if err != nil {
		log.Printf("ERROR: Failed to generate lecture audio: %v", err)
		result.Error = err.Error()
		result.Message = "Failed to generate audio, text-only version available"
		return result
	}

	result.AudioAvailable = true
	result.AudioBuffer = speech.AudioBuffer
	result.AudioMimeType = speech.MimeType
	result.AudioSize = len(speech.AudioBuffer)
	result.Message = "Lecture audio generated successfully"
	return result
}

// Voices lists the voices available on the account.
func (c *Client) Voices(ctx context.Context) models.VoiceList {
	if !c.Available() {
		return models.VoiceList{Available: false, Voices: []models.Voice{}}
	}
	return c.fetchVoices(ctx)
}

func (c *Client) fetchVoices(ctx context.Context) models.VoiceList {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/voices", nil)
	if err != nil {
		return models.VoiceList{Available: false, Voices: []models.Voice{}, Error: err.Error()}
	}
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.apiClient.Do(req)
	if err != nil {
		return models.VoiceList{Available: false, Voices: []models.Voice{}, Error: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.VoiceList{
			Available: false,
			Voices:    []models.Voice{},
			Error:     fmt.Sprintf("ElevenLabs API returned status %d", resp.StatusCode),
		}
	}

	var payload struct {
		Voices []struct {
			VoiceID  string            `json:"voice_id"`
			Name     string            `json:"name"`
			Category string            `json:"category"`
			Labels   map[string]string `json:"labels"`
		} `json:"voices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.VoiceList{Available: false, Voices: []models.Voice{}, Error: err.Error()}
	}

	voices := make([]models.Voice, 0, len(payload.Voices))
	for _, v := range payload.Voices {
		language := v.Labels["language"]
		if language == "" {
			language = "unknown"
		}
		voices = append(voices, models.Voice{
			VoiceID:  v.VoiceID,
			Name:     v.Name,
			Category: v.Category,
			Language: language,
		})
	}

	return models.VoiceList{Available: true, Voices: voices}
}

// HealthCheck queries the user endpoint for availability and quota.
func (c *Client) HealthCheck(ctx context.Context) models.ServiceHealth {
	if c.apiKey == "" {
		return models.ServiceHealth{
			Available: false,
			Service:   "ElevenLabs",
			Error:     "API key not configured",
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/user", nil)
	if err != nil {
		return models.ServiceHealth{Available: false, Service: "ElevenLabs", Error: err.Error()}
	}
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.apiClient.Do(req)
	if err != nil {
		return models.ServiceHealth{Available: false, Service: "ElevenLabs", Error: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.ServiceHealth{
			Available: false,
			Service:   "ElevenLabs",
			Error:     fmt.Sprintf("ElevenLabs API returned status %d", resp.StatusCode),
		}
	}

	var payload struct {
		Subscription struct {
			CharacterLimit int64 `json:"character_limit"`
			CharacterCount int64 `json:"character_count"`
		} `json:"subscription"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.ServiceHealth{Available: false, Service: "ElevenLabs", Error: err.Error()}
	}

	return models.ServiceHealth{
		Available:      true,
		Service:        "ElevenLabs",
		Status:         "healthy",
		CharacterLimit: payload.Subscription.CharacterLimit,
		CharactersUsed: payload.Subscription.CharacterCount,
	}
}

// EstimateReadingTime returns the reading time of text in whole minutes,
// assuming 150 words per minute.
func EstimateReadingTime(text string) int {
	words := len(strings.Fields(text))
	return int(math.Ceil(float64(words) / 150))
}

var speechCleanPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?;:-]`)

// CleanTextForSpeech strips characters that trip up synthesis and normalizes
// whitespace.
func CleanTextForSpeech(text string) string {
	text = speechCleanPattern.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

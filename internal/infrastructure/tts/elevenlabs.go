package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/doeshing/vox-go/internal/domain"
	"github.com/doeshing/vox-go/internal/ports"
)

type elevenLabsClient struct {
	def        domain.BackendDefinition
	httpClient *http.Client
}

func newElevenLabsClient(def domain.BackendDefinition, client *http.Client) ports.SpeechClient {
	return &elevenLabsClient{def: def, httpClient: client}
}

func (c *elevenLabsClient) Name() string {
	return string(domain.BackendElevenLabs)
}

type elevenLabsVoiceSettings struct {
	Stability       *float64 `json:"stability,omitempty"`
	SimilarityBoost *float64 `json:"similarity_boost,omitempty"`
}

type elevenLabsRequest struct {
	Text          string                   `json:"text"`
	ModelID       string                   `json:"model_id"`
	VoiceSettings *elevenLabsVoiceSettings `json:"voice_settings,omitempty"`
}

func (c *elevenLabsClient) Synthesize(ctx context.Context, req ports.SynthesisRequest) (ports.SynthesisResult, error) {
	apiKey := resolveAuth(c.def.AuthEnvVar, "ELEVENLABS_API_KEY")
	if apiKey == "" {
		return ports.SynthesisResult{}, fmt.Errorf("elevenlabs: API key missing (set %s)", valueOrDefault(c.def.AuthEnvVar, "ELEVENLABS_API_KEY"))
	}

	payload := elevenLabsRequest{
		Text:    req.Text,
		ModelID: valueOrDefault(req.Model, "eleven_multilingual_v2"),
	}
	var settings elevenLabsVoiceSettings
	if v, ok := floatParam(req.Params, "stability"); ok {
		settings.Stability = &v
	}
	if v, ok := floatParam(req.Params, "similarity"); ok {
		settings.SimilarityBoost = &v
	}
	if settings.Stability != nil || settings.SimilarityBoost != nil {
		payload.VoiceSettings = &settings
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return ports.SynthesisResult{}, err
	}

	endpoint := fmt.Sprintf("%s/v1/text-to-speech/%s?output_format=%s",
		valueOrDefault(c.def.Endpoint, "https://api.elevenlabs.io"),
		req.Voice,
		outputFormatFor(req.Format))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return ports.SynthesisResult{}, err
	}
	httpReq.Header.Set("xi-api-key", apiKey)
	httpReq.Header.Set("content-type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return ports.SynthesisResult{}, fmt.Errorf("elevenlabs: %w", err)
	}
	audio, err := readAudioResponse("elevenlabs", resp)
	if err != nil {
		return ports.SynthesisResult{}, err
	}
	return ports.SynthesisResult{Audio: audio, ContentType: contentTypeFor(req.Format)}, nil
}

type elevenLabsDesignRequest struct {
	VoiceDescription string `json:"voice_description"`
	Text             string `json:"text,omitempty"`
	ModelID          string `json:"model_id"`
}

type elevenLabsDesignResponse struct {
	Previews []struct {
		AudioBase64 string `json:"audio_base_64"`
		MediaType   string `json:"media_type"`
	} `json:"previews"`
}

// SynthesizeFromDescription asks the voice design API to speak the text in a
// voice generated from the natural-language description. The first preview is
// returned; the voice identifier in req is ignored entirely.
func (c *elevenLabsClient) SynthesizeFromDescription(ctx context.Context, description string, req ports.SynthesisRequest) (ports.SynthesisResult, error) {
	apiKey := resolveAuth(c.def.AuthEnvVar, "ELEVENLABS_API_KEY")
	if apiKey == "" {
		return ports.SynthesisResult{}, fmt.Errorf("elevenlabs: API key missing (set %s)", valueOrDefault(c.def.AuthEnvVar, "ELEVENLABS_API_KEY"))
	}

	payload := elevenLabsDesignRequest{
		VoiceDescription: description,
		Text:             req.Text,
		ModelID:          "eleven_multilingual_ttv_v2",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return ports.SynthesisResult{}, err
	}

	endpoint := valueOrDefault(c.def.Endpoint, "https://api.elevenlabs.io") + "/v1/text-to-voice/design"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return ports.SynthesisResult{}, err
	}
	httpReq.Header.Set("xi-api-key", apiKey)
	httpReq.Header.Set("content-type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return ports.SynthesisResult{}, fmt.Errorf("elevenlabs: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return ports.SynthesisResult{}, fmt.Errorf("elevenlabs: %s", resp.Status)
	}
	var decoded elevenLabsDesignResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.SynthesisResult{}, err
	}
	if len(decoded.Previews) == 0 {
		return ports.SynthesisResult{}, fmt.Errorf("elevenlabs: voice design returned no previews")
	}
	audio, err := base64.StdEncoding.DecodeString(decoded.Previews[0].AudioBase64)
	if err != nil {
		return ports.SynthesisResult{}, fmt.Errorf("elevenlabs: decode preview: %w", err)
	}
	return ports.SynthesisResult{Audio: audio, ContentType: decoded.Previews[0].MediaType}, nil
}

func (c *elevenLabsClient) SynthesizeFromReference(context.Context, string, ports.SynthesisRequest) (ports.SynthesisResult, error) {
	return ports.SynthesisResult{}, ports.ErrUnsupportedOperation
}

// ListVoices returns the account's voice ids.
func (c *elevenLabsClient) ListVoices(ctx context.Context) ([]string, error) {
	apiKey := resolveAuth(c.def.AuthEnvVar, "ELEVENLABS_API_KEY")
	if apiKey == "" {
		return nil, ports.ErrUnsupportedOperation
	}
	endpoint := valueOrDefault(c.def.Endpoint, "https://api.elevenlabs.io") + "/v1/voices"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("xi-api-key", apiKey)
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("elevenlabs: %s", resp.Status)
	}
	var decoded struct {
		Voices []struct {
			VoiceID string `json:"voice_id"`
		} `json:"voices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(decoded.Voices))
	for _, voice := range decoded.Voices {
		ids = append(ids, voice.VoiceID)
	}
	return ids, nil
}

func outputFormatFor(format string) string {
	switch format {
	case "wav":
		return "pcm_24000"
	case "opus":
		return "opus_48000_64"
	default:
		return "mp3_44100_128"
	}
}

package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/doeshing/vox-go/internal/domain"
	"github.com/doeshing/vox-go/internal/ports"
)

type openAIClient struct {
	def        domain.BackendDefinition
	httpClient *http.Client
}

func newOpenAIClient(def domain.BackendDefinition, client *http.Client) ports.SpeechClient {
	return &openAIClient{def: def, httpClient: client}
}

func (c *openAIClient) Name() string {
	return string(domain.BackendOpenAI)
}

type openAISpeechRequest struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	ResponseFormat string  `json:"response_format,omitempty"`
	Speed          float64 `json:"speed,omitempty"`
	Instructions   string  `json:"instructions,omitempty"`
}

func (c *openAIClient) Synthesize(ctx context.Context, req ports.SynthesisRequest) (ports.SynthesisResult, error) {
	apiKey := resolveAuth(c.def.AuthEnvVar, "OPENAI_API_KEY")
	if apiKey == "" {
		return ports.SynthesisResult{}, fmt.Errorf("openai: API key missing (set %s)", valueOrDefault(c.def.AuthEnvVar, "OPENAI_API_KEY"))
	}

	payload := openAISpeechRequest{
		Model:          valueOrDefault(req.Model, "tts-1"),
		Input:          req.Text,
		Voice:          valueOrDefault(req.Voice, "alloy"),
		ResponseFormat: req.Format,
	}
	if v, ok := floatParam(req.Params, "speed"); ok {
		payload.Speed = v
	}
	if instructions, ok := req.Params["instructions"]; ok {
		payload.Instructions = instructions
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return ports.SynthesisResult{}, err
	}

	endpoint := valueOrDefault(c.def.Endpoint, "https://api.openai.com")
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"/v1/audio/speech", bytes.NewReader(body))
	if err != nil {
		return ports.SynthesisResult{}, err
	}
	httpReq.Header.Set("authorization", "Bearer "+apiKey)
	httpReq.Header.Set("content-type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return ports.SynthesisResult{}, fmt.Errorf("openai: %w", err)
	}
	audio, err := readAudioResponse("openai", resp)
	if err != nil {
		return ports.SynthesisResult{}, err
	}
	return ports.SynthesisResult{Audio: audio, ContentType: contentTypeFor(req.Format)}, nil
}

func (c *openAIClient) SynthesizeFromDescription(context.Context, string, ports.SynthesisRequest) (ports.SynthesisResult, error) {
	return ports.SynthesisResult{}, ports.ErrUnsupportedOperation
}

func (c *openAIClient) SynthesizeFromReference(context.Context, string, ports.SynthesisRequest) (ports.SynthesisResult, error) {
	return ports.SynthesisResult{}, ports.ErrUnsupportedOperation
}

func (c *openAIClient) ListVoices(context.Context) ([]string, error) {
	return nil, ports.ErrUnsupportedOperation
}

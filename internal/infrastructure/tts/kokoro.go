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

// kokoroClient talks to a locally hosted Kokoro container exposing the
// OpenAI-compatible speech API plus a voice catalog endpoint.
type kokoroClient struct {
	def        domain.BackendDefinition
	httpClient *http.Client
}

func newKokoroClient(def domain.BackendDefinition, client *http.Client) ports.SpeechClient {
	return &kokoroClient{def: def, httpClient: client}
}

func (c *kokoroClient) Name() string {
	return string(domain.BackendKokoro)
}

type kokoroRequest struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	ResponseFormat string  `json:"response_format,omitempty"`
	Speed          float64 `json:"speed,omitempty"`
	LangCode       string  `json:"lang_code,omitempty"`
}

func (c *kokoroClient) Synthesize(ctx context.Context, req ports.SynthesisRequest) (ports.SynthesisResult, error) {
	payload := kokoroRequest{
		Model:          "kokoro",
		Input:          req.Text,
		Voice:          req.Voice,
		ResponseFormat: req.Format,
	}
	if v, ok := floatParam(req.Params, "speed"); ok {
		payload.Speed = v
	}
	if lang, ok := req.Params["language"]; ok {
		payload.LangCode = lang
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return ports.SynthesisResult{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.def.Endpoint+"/v1/audio/speech", bytes.NewReader(body))
	if err != nil {
		return ports.SynthesisResult{}, err
	}
	httpReq.Header.Set("content-type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return ports.SynthesisResult{}, fmt.Errorf("kokoro: %w", err)
	}
	audio, err := readAudioResponse("kokoro", resp)
	if err != nil {
		return ports.SynthesisResult{}, err
	}
	return ports.SynthesisResult{Audio: audio, ContentType: contentTypeFor(req.Format)}, nil
}

func (c *kokoroClient) SynthesizeFromDescription(context.Context, string, ports.SynthesisRequest) (ports.SynthesisResult, error) {
	return ports.SynthesisResult{}, ports.ErrUnsupportedOperation
}

func (c *kokoroClient) SynthesizeFromReference(context.Context, string, ports.SynthesisRequest) (ports.SynthesisResult, error) {
	return ports.SynthesisResult{}, ports.ErrUnsupportedOperation
}

// ListVoices queries the container's live voice catalog.
func (c *kokoroClient) ListVoices(ctx context.Context) ([]string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.def.Endpoint+"/v1/audio/voices", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("kokoro: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("kokoro: %s", resp.Status)
	}
	var decoded struct {
		Voices []string `json:"voices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	return decoded.Voices, nil
}

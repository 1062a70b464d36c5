package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/doeshing/vox-go/internal/domain"
	"github.com/doeshing/vox-go/internal/ports"
)

// chatterboxClient talks to a locally hosted chatterbox-tts-server container.
// Reachability is checked lazily at generation time, never at listing time.
type chatterboxClient struct {
	def        domain.BackendDefinition
	httpClient *http.Client
}

func newChatterboxClient(def domain.BackendDefinition, client *http.Client) ports.SpeechClient {
	return &chatterboxClient{def: def, httpClient: client}
}

func (c *chatterboxClient) Name() string {
	return string(domain.BackendChatterbox)
}

type chatterboxRequest struct {
	Text              string   `json:"text"`
	VoiceMode         string   `json:"voice_mode"`
	PredefinedVoiceID string   `json:"predefined_voice_id,omitempty"`
	OutputFormat      string   `json:"output_format,omitempty"`
	Exaggeration      *float64 `json:"exaggeration,omitempty"`
	CFGWeight         *float64 `json:"cfg_weight,omitempty"`
	Seed              *int64   `json:"seed,omitempty"`
}

func (c *chatterboxClient) Synthesize(ctx context.Context, req ports.SynthesisRequest) (ports.SynthesisResult, error) {
	payload := chatterboxRequest{
		Text:              req.Text,
		VoiceMode:         "predefined",
		PredefinedVoiceID: req.Voice,
		OutputFormat:      req.Format,
	}
	if v, ok := floatParam(req.Params, "exaggeration"); ok {
		payload.Exaggeration = &v
	}
	if v, ok := floatParam(req.Params, "cfg_weight"); ok {
		payload.CFGWeight = &v
	}
	if v, ok := intParam(req.Params, "seed"); ok {
		payload.Seed = &v
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return ports.SynthesisResult{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.def.Endpoint+"/tts", bytes.NewReader(body))
	if err != nil {
		return ports.SynthesisResult{}, err
	}
	httpReq.Header.Set("content-type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return ports.SynthesisResult{}, fmt.Errorf("chatterbox: %w", err)
	}
	audio, err := readAudioResponse("chatterbox", resp)
	if err != nil {
		return ports.SynthesisResult{}, err
	}
	return ports.SynthesisResult{Audio: audio, ContentType: contentTypeFor(req.Format)}, nil
}

func (c *chatterboxClient) SynthesizeFromDescription(context.Context, string, ports.SynthesisRequest) (ports.SynthesisResult, error) {
	return ports.SynthesisResult{}, ports.ErrUnsupportedOperation
}

// SynthesizeFromReference uploads the reference audio alongside the text so
// the container clones that voice for this one call.
func (c *chatterboxClient) SynthesizeFromReference(ctx context.Context, referencePath string, req ports.SynthesisRequest) (ports.SynthesisResult, error) {
	file, err := os.Open(referencePath)
	if err != nil {
		return ports.SynthesisResult{}, fmt.Errorf("chatterbox: open reference: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("reference_audio", filepath.Base(referencePath))
	if err != nil {
		return ports.SynthesisResult{}, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return ports.SynthesisResult{}, err
	}

	fields := map[string]string{
		"text":          req.Text,
		"voice_mode":    "clone",
		"output_format": req.Format,
	}
	for _, key := range []string{"exaggeration", "cfg_weight", "seed"} {
		if v, ok := req.Params[key]; ok {
			fields[key] = v
		}
	}
	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(key, value); err != nil {
			return ports.SynthesisResult{}, err
		}
	}
	if err := writer.Close(); err != nil {
		return ports.SynthesisResult{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.def.Endpoint+"/tts", &buf)
	if err != nil {
		return ports.SynthesisResult{}, err
	}
	httpReq.Header.Set("content-type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return ports.SynthesisResult{}, fmt.Errorf("chatterbox: %w", err)
	}
	audio, err := readAudioResponse("chatterbox", resp)
	if err != nil {
		return ports.SynthesisResult{}, err
	}
	return ports.SynthesisResult{Audio: audio, ContentType: contentTypeFor(req.Format)}, nil
}

// ListVoices returns the container's predefined voice filenames.
func (c *chatterboxClient) ListVoices(ctx context.Context) ([]string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.def.Endpoint+"/get_predefined_voices", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("chatterbox: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("chatterbox: %s", resp.Status)
	}
	var decoded []struct {
		DisplayName string `json:"display_name"`
		Filename    string `json:"filename"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	voices := make([]string, 0, len(decoded))
	for _, voice := range decoded {
		voices = append(voices, voice.Filename)
	}
	return voices, nil
}

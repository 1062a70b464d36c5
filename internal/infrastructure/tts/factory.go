// Package tts contains the HTTP synthesis clients, one per backend. Each
// client owns its backend's request shape; there is no unified wire format
// across backends.
package tts

import (
	"fmt"
	"net/http"
	"time"

	"github.com/doeshing/vox-go/internal/domain"
	"github.com/doeshing/vox-go/internal/ports"
)

// Factory builds synthesis clients for configured backend definitions.
type Factory struct {
	httpClient *http.Client
}

// NewFactory creates a factory whose clients share one bounded HTTP client.
func NewFactory(timeout time.Duration) *Factory {
	if timeout <= 0 {
		timeout = domain.DefaultSynthesisTimeout
	}
	return &Factory{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ForBackend implements ports.SpeechClientFactory.
func (f *Factory) ForBackend(def domain.BackendDefinition) (ports.SpeechClient, error) {
	switch def.Kind() {
	case domain.BackendChatterbox:
		return newChatterboxClient(def, f.httpClient), nil
	case domain.BackendKokoro:
		return newKokoroClient(def, f.httpClient), nil
	case domain.BackendOpenAI:
		return newOpenAIClient(def, f.httpClient), nil
	case domain.BackendElevenLabs:
		return newElevenLabsClient(def, f.httpClient), nil
	default:
		return nil, fmt.Errorf("unsupported backend: %s", def.Name)
	}
}

var _ ports.SpeechClientFactory = (*Factory)(nil)

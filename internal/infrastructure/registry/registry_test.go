package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/doeshing/vox-go/internal/domain"
	"github.com/doeshing/vox-go/internal/ports"
)

type catalogClient struct {
	voices []string
	err    error
}

func (c *catalogClient) Name() string { return "stub" }
func (c *catalogClient) Synthesize(context.Context, ports.SynthesisRequest) (ports.SynthesisResult, error) {
	return ports.SynthesisResult{}, errors.New("not under test")
}
func (c *catalogClient) SynthesizeFromDescription(context.Context, string, ports.SynthesisRequest) (ports.SynthesisResult, error) {
	return ports.SynthesisResult{}, ports.ErrUnsupportedOperation
}
func (c *catalogClient) SynthesizeFromReference(context.Context, string, ports.SynthesisRequest) (ports.SynthesisResult, error) {
	return ports.SynthesisResult{}, ports.ErrUnsupportedOperation
}
func (c *catalogClient) ListVoices(context.Context) ([]string, error) {
	return c.voices, c.err
}

type stubFactory struct {
	client ports.SpeechClient
	err    error
}

func (s *stubFactory) ForBackend(domain.BackendDefinition) (ports.SpeechClient, error) {
	return s.client, s.err
}

type stubLibrary struct {
	names []string
}

func (s *stubLibrary) List() []string                       { return s.names }
func (s *stubLibrary) Resolve(string) (string, error)       { return "", domain.ErrVoiceFileNotFound }
func (s *stubLibrary) Save(string, string) (string, error)  { return "", nil }
func (s *stubLibrary) Delete(string) error                  { return nil }
func (s *stubLibrary) Dir() string                          { return "" }

func testConfig() domain.Config {
	return domain.Config{
		Backends: []domain.BackendDefinition{
			{Name: "chatterbox", Endpoint: "http://localhost:8004", Local: true},
			{Name: "kokoro", Endpoint: "http://localhost:8880", Local: true},
			{Name: "openai", Endpoint: "https://api.openai.com", AuthEnvVar: "OPENAI_API_KEY"},
			{Name: "elevenlabs", Endpoint: "https://api.elevenlabs.io", AuthEnvVar: "ELEVENLABS_API_KEY"},
		},
	}
}

func TestModelsForAllKinds(t *testing.T) {
	reg := &Registry{Config: testConfig()}

	for _, kind := range []domain.BackendKind{domain.BackendOpenAI, domain.BackendElevenLabs} {
		models := reg.ModelsFor(kind)
		if len(models.Choices) == 0 {
			t.Fatalf("%s should have models", kind)
		}
		if !models.Contains(models.Default) {
			t.Fatalf("%s default %q not in choices", kind, models.Default)
		}
	}
	for _, kind := range []domain.BackendKind{domain.BackendChatterbox, domain.BackendKokoro} {
		if models := reg.ModelsFor(kind); len(models.Choices) != 0 {
			t.Fatalf("%s should be model-less, got %+v", kind, models)
		}
	}
}

func TestVoicesForDefaultAlwaysMember(t *testing.T) {
	reg := &Registry{
		Config:  testConfig(),
		Factory: &stubFactory{client: &catalogClient{err: errors.New("down")}},
		Library: &stubLibrary{},
	}

	for _, kind := range domain.BackendKinds() {
		voices := reg.VoicesFor(context.Background(), kind)
		if len(voices.Choices) == 0 {
			t.Fatalf("%s produced an empty voice set", kind)
		}
		if !voices.Contains(voices.Default) {
			t.Fatalf("%s default %q not in choices", kind, voices.Default)
		}
	}
}

func TestVoicesForLiveCatalog(t *testing.T) {
	reg := &Registry{
		Config:  testConfig(),
		Factory: &stubFactory{client: &catalogClient{voices: []string{"af_bella", "am_adam"}}},
	}

	voices := reg.VoicesFor(context.Background(), domain.BackendKokoro)
	if len(voices.Choices) != 2 {
		t.Fatalf("expected live catalog voices, got %+v", voices)
	}
	if voices.Default != "af_bella" {
		t.Fatalf("expected first live voice as default, got %q", voices.Default)
	}
}

func TestVoicesForLiveCatalogDegrades(t *testing.T) {
	reg := &Registry{
		Config:  testConfig(),
		Factory: &stubFactory{client: &catalogClient{err: errors.New("connection refused")}},
	}

	voices := reg.VoicesFor(context.Background(), domain.BackendKokoro)
	if len(voices.Choices) != 1 || voices.Default != domain.PlaceholderVoice {
		t.Fatalf("catalog failure should degrade to placeholder, got %+v", voices)
	}
}

func TestVoicesForAppendsCustomVoices(t *testing.T) {
	reg := &Registry{
		Config:  testConfig(),
		Library: &stubLibrary{names: []string{"narrator"}},
	}

	voices := reg.VoicesFor(context.Background(), domain.BackendChatterbox)
	if !voices.Contains("custom:narrator") {
		t.Fatalf("cloning backend should list custom voices, got %+v", voices)
	}
	found := false
	for _, opt := range voices.Choices {
		if opt.ID == "custom:narrator" && opt.Label == "narrator (custom)" {
			found = true
		}
	}
	if !found {
		t.Fatalf("custom voice label missing, got %+v", voices.Choices)
	}

	// Backends without cloning never surface custom voices.
	voices = reg.VoicesFor(context.Background(), domain.BackendOpenAI)
	if voices.Contains("custom:narrator") {
		t.Fatalf("openai must not list custom voices, got %+v", voices)
	}
}

func TestDetectAvailableLocalAlwaysListed(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ELEVENLABS_API_KEY", "")
	reg := &Registry{Config: testConfig()}

	available := reg.DetectAvailable()
	if len(available) != 2 {
		t.Fatalf("expected only local backends, got %+v", available)
	}
	if available[0].ID != "chatterbox" || available[1].ID != "kokoro" {
		t.Fatalf("wrong order: %+v", available)
	}
}

func TestDetectAvailableWithCredentials(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ELEVENLABS_API_KEY", "")
	reg := &Registry{Config: testConfig()}

	available := reg.DetectAvailable()
	ids := map[string]bool{}
	for _, opt := range available {
		ids[opt.ID] = true
	}
	if !ids["openai"] {
		t.Fatalf("openai should appear with key set, got %+v", available)
	}
	if ids["elevenlabs"] {
		t.Fatalf("elevenlabs should be hidden without key, got %+v", available)
	}
}

func TestDefaultBackendPrefersConfigured(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg := testConfig()
	cfg.Preferences.DefaultBackend = "openai"
	reg := &Registry{Config: cfg}

	def, ok := reg.DefaultBackend()
	if !ok || def.Name != "openai" {
		t.Fatalf("expected configured default, got %+v ok=%v", def, ok)
	}
}

func TestDefaultBackendFallsBackToFirstAvailable(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	cfg := testConfig()
	cfg.Preferences.DefaultBackend = "openai"
	reg := &Registry{Config: cfg}

	def, ok := reg.DefaultBackend()
	if !ok || def.Name != "chatterbox" {
		t.Fatalf("unavailable preference should fall back to first, got %+v ok=%v", def, ok)
	}
}

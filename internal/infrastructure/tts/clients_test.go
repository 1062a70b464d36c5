package tts

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/doeshing/vox-go/internal/domain"
	"github.com/doeshing/vox-go/internal/ports"
)

func testHTTPClient(t *testing.T) *http.Client {
	t.Helper()
	return &http.Client{Timeout: 5 * time.Second}
}

func TestFactoryForBackend(t *testing.T) {
	factory := NewFactory(0)

	for _, name := range []string{"chatterbox", "kokoro", "openai", "elevenlabs"} {
		client, err := factory.ForBackend(domain.BackendDefinition{Name: name})
		if err != nil {
			t.Fatalf("ForBackend(%s) error: %v", name, err)
		}
		if client.Name() != name {
			t.Fatalf("ForBackend(%s).Name() = %s", name, client.Name())
		}
	}

	if _, err := factory.ForBackend(domain.BackendDefinition{Name: "mystery"}); err == nil {
		t.Fatal("unknown backend should error")
	}
}

func TestChatterboxSynthesizeRequestShape(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tts" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		w.Write([]byte("mp3data"))
	}))
	defer server.Close()

	client := newChatterboxClient(domain.BackendDefinition{Name: "chatterbox", Endpoint: server.URL, Local: true}, testHTTPClient(t))
	result, err := client.Synthesize(context.Background(), ports.SynthesisRequest{
		Text:   "hello",
		Voice:  "Emily.wav",
		Format: "mp3",
		Params: map[string]string{"exaggeration": "0.8", "seed": "42"},
	})
	if err != nil {
		t.Fatalf("Synthesize error: %v", err)
	}
	if string(result.Audio) != "mp3data" {
		t.Fatalf("unexpected audio %q", result.Audio)
	}

	if captured["voice_mode"] != "predefined" || captured["predefined_voice_id"] != "Emily.wav" {
		t.Fatalf("wrong voice fields: %v", captured)
	}
	if captured["exaggeration"] != 0.8 || captured["seed"] != float64(42) {
		t.Fatalf("params not forwarded: %v", captured)
	}
	if _, present := captured["cfg_weight"]; present {
		t.Fatalf("absent param must not be sent: %v", captured)
	}
}

func TestChatterboxCloneUploadsReference(t *testing.T) {
	var gotVoiceMode, gotFilename string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("expected multipart form: %v", err)
			return
		}
		gotVoiceMode = r.FormValue("voice_mode")
		if _, header, err := r.FormFile("reference_audio"); err == nil {
			gotFilename = header.Filename
		}
		w.Write([]byte("cloned"))
	}))
	defer server.Close()

	reference := filepath.Join(t.TempDir(), "narrator.wav")
	if err := os.WriteFile(reference, []byte("wavdata"), 0o644); err != nil {
		t.Fatal(err)
	}

	client := newChatterboxClient(domain.BackendDefinition{Name: "chatterbox", Endpoint: server.URL, Local: true}, testHTTPClient(t))
	result, err := client.SynthesizeFromReference(context.Background(), reference, ports.SynthesisRequest{Text: "hello", Format: "mp3"})
	if err != nil {
		t.Fatalf("SynthesizeFromReference error: %v", err)
	}
	if string(result.Audio) != "cloned" {
		t.Fatalf("unexpected audio %q", result.Audio)
	}
	if gotVoiceMode != "clone" {
		t.Fatalf("voice_mode = %q, want clone", gotVoiceMode)
	}
	if gotFilename != "narrator.wav" {
		t.Fatalf("reference filename = %q", gotFilename)
	}
}

func TestKokoroSynthesizeAndCatalog(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/audio/speech":
			body, _ := io.ReadAll(r.Body)
			json.Unmarshal(body, &captured)
			w.Write([]byte("audio"))
		case "/v1/audio/voices":
			json.NewEncoder(w).Encode(map[string][]string{"voices": {"af_bella", "am_adam"}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := newKokoroClient(domain.BackendDefinition{Name: "kokoro", Endpoint: server.URL, Local: true}, testHTTPClient(t))

	_, err := client.Synthesize(context.Background(), ports.SynthesisRequest{
		Text:   "hello",
		Voice:  "af_bella",
		Format: "mp3",
		Params: map[string]string{"speed": "1.3", "language": "ja"},
	})
	if err != nil {
		t.Fatalf("Synthesize error: %v", err)
	}
	if captured["model"] != "kokoro" || captured["speed"] != 1.3 || captured["lang_code"] != "ja" {
		t.Fatalf("wrong payload: %v", captured)
	}

	voices, err := client.ListVoices(context.Background())
	if err != nil {
		t.Fatalf("ListVoices error: %v", err)
	}
	if len(voices) != 2 || voices[0] != "af_bella" {
		t.Fatalf("unexpected voices %v", voices)
	}
}

func TestOpenAIMissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	client := newOpenAIClient(domain.BackendDefinition{Name: "openai", AuthEnvVar: "OPENAI_API_KEY"}, testHTTPClient(t))
	_, err := client.Synthesize(context.Background(), ports.SynthesisRequest{Text: "hello"})
	if err == nil || !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Fatalf("expected key-missing error naming the env var, got %v", err)
	}
}

func TestOpenAISynthesizeRequestShape(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	var captured map[string]any
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &captured)
		w.Write([]byte("audio"))
	}))
	defer server.Close()

	client := newOpenAIClient(domain.BackendDefinition{Name: "openai", Endpoint: server.URL, AuthEnvVar: "OPENAI_API_KEY"}, testHTTPClient(t))
	_, err := client.Synthesize(context.Background(), ports.SynthesisRequest{
		Text:   "hello",
		Voice:  "nova",
		Model:  "tts-1-hd",
		Format: "mp3",
		Params: map[string]string{"instructions": "speak slowly"},
	})
	if err != nil {
		t.Fatalf("Synthesize error: %v", err)
	}
	if auth != "Bearer sk-test" {
		t.Fatalf("auth header = %q", auth)
	}
	if captured["model"] != "tts-1-hd" || captured["voice"] != "nova" || captured["instructions"] != "speak slowly" {
		t.Fatalf("wrong payload: %v", captured)
	}
	if _, present := captured["speed"]; present {
		t.Fatalf("default speed must be omitted: %v", captured)
	}
}

func TestElevenLabsDesignDecodesPreview(t *testing.T) {
	t.Setenv("ELEVENLABS_API_KEY", "el-test")

	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/text-to-voice/design" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("xi-api-key") != "el-test" {
			t.Errorf("missing api key header")
		}
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &captured)
		json.NewEncoder(w).Encode(map[string]any{
			"previews": []map[string]string{
				{"audio_base_64": base64.StdEncoding.EncodeToString([]byte("designed-audio")), "media_type": "audio/mpeg"},
			},
		})
	}))
	defer server.Close()

	client := newElevenLabsClient(domain.BackendDefinition{Name: "elevenlabs", Endpoint: server.URL, AuthEnvVar: "ELEVENLABS_API_KEY"}, testHTTPClient(t))
	result, err := client.SynthesizeFromDescription(context.Background(), "a calm narrator", ports.SynthesisRequest{Text: "hello"})
	if err != nil {
		t.Fatalf("SynthesizeFromDescription error: %v", err)
	}
	if string(result.Audio) != "designed-audio" {
		t.Fatalf("preview not decoded, got %q", result.Audio)
	}
	if captured["voice_description"] != "a calm narrator" {
		t.Fatalf("wrong payload: %v", captured)
	}
}

func TestErrorStatusSurfacesDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newKokoroClient(domain.BackendDefinition{Name: "kokoro", Endpoint: server.URL, Local: true}, testHTTPClient(t))
	_, err := client.Synthesize(context.Background(), ports.SynthesisRequest{Text: "hello"})
	if err == nil || !strings.Contains(err.Error(), "model overloaded") {
		t.Fatalf("expected backend detail in error, got %v", err)
	}
}

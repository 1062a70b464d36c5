package domain_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/vox-go/internal/domain"
)

// TestGenerationParams_Applied tests schema-aware parameter filtering
func TestGenerationParams_Applied(t *testing.T) {
	seed := int64(7)

	tests := []struct {
		name   string
		kind   domain.BackendKind
		params domain.GenerationParams
		want   map[string]string
	}{
		{
			name:   "defaults are omitted entirely",
			kind:   domain.BackendOpenAI,
			params: domain.GenerationParams{Speed: domain.DefaultSpeed},
			want:   map[string]string{},
		},
		{
			name:   "non-default speed is sent",
			kind:   domain.BackendOpenAI,
			params: domain.GenerationParams{Speed: 1.3},
			want:   map[string]string{"speed": "1.3"},
		},
		{
			name: "inapplicable fields never leak across backends",
			kind: domain.BackendOpenAI,
			params: domain.GenerationParams{
				Exaggeration: 0.9,
				CFGWeight:    0.2,
				Stability:    0.1,
			},
			want: map[string]string{},
		},
		{
			name: "chatterbox knobs",
			kind: domain.BackendChatterbox,
			params: domain.GenerationParams{
				Exaggeration: 0.8,
				CFGWeight:    0.3,
				Speed:        1.5, // not a chatterbox field
			},
			want: map[string]string{"exaggeration": "0.8", "cfg_weight": "0.3"},
		},
		{
			name:   "kokoro language",
			kind:   domain.BackendKokoro,
			params: domain.GenerationParams{Language: "ja", Speed: 0.8},
			want:   map[string]string{"language": "ja", "speed": "0.8"},
		},
		{
			name:   "elevenlabs voice settings",
			kind:   domain.BackendElevenLabs,
			params: domain.GenerationParams{Stability: 0.9, Similarity: domain.DefaultSimilarity},
			want:   map[string]string{"stability": "0.9"},
		},
		{
			name:   "openai instructions",
			kind:   domain.BackendOpenAI,
			params: domain.GenerationParams{Instructions: "speak slowly"},
			want:   map[string]string{"instructions": "speak slowly"},
		},
		{
			name:   "seed attached regardless of schema",
			kind:   domain.BackendKokoro,
			params: domain.GenerationParams{Seed: &seed},
			want:   map[string]string{"seed": "7"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.params.Applied(domain.SchemaFor(tt.kind))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Applied mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCustomVoiceHelpers(t *testing.T) {
	id := domain.CustomVoiceID("narrator")
	if id != "custom:narrator" {
		t.Fatalf("CustomVoiceID = %s", id)
	}
	if !domain.IsCustomVoice(id) {
		t.Fatal("IsCustomVoice should match the custom prefix")
	}
	if domain.IsCustomVoice("alloy") {
		t.Fatal("built-in voice misidentified as custom")
	}
	if got := domain.CustomVoiceName(id); got != "narrator" {
		t.Fatalf("CustomVoiceName = %s", got)
	}
	if got := domain.CustomVoiceLabel("narrator"); got != "narrator (custom)" {
		t.Fatalf("CustomVoiceLabel = %s", got)
	}
}

func TestSchemaForUnknownKindDegrades(t *testing.T) {
	schema := domain.SchemaFor("mystery")
	if schema.Kind != "mystery" || len(schema.Fields) != 0 {
		t.Fatalf("unknown kind should yield an empty schema, got %+v", schema)
	}
	if schema.SupportsCloning || schema.SupportsDesign || schema.LiveVoiceCatalog {
		t.Fatalf("unknown kind should have no capabilities, got %+v", schema)
	}
}

func TestSessionResetAndStore(t *testing.T) {
	session := domain.NewSession()
	session.Store([]byte("audio"), domain.GenerationMeta{Backend: domain.BackendKokoro})
	if session.Meta == nil || len(session.Audio) == 0 {
		t.Fatal("Store should populate the session")
	}
	session.Reset()
	if session.Meta != nil || session.Audio != nil {
		t.Fatal("Reset should clear the session")
	}
}

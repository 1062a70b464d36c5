// Package domain defines core business entities and value objects for VOX.
//
// This file contains the backend catalog: which synthesis backends exist,
// which models, voices and generation parameters each one understands, and
// how custom voice identifiers are distinguished from built-in ones. The
// domain layer is independent of infrastructure concerns.
package domain

import "strings"

// BackendKind identifies a text-to-speech backend.
type BackendKind string

const (
	BackendChatterbox BackendKind = "chatterbox"
	BackendKokoro     BackendKind = "kokoro"
	BackendOpenAI     BackendKind = "openai"
	BackendElevenLabs BackendKind = "elevenlabs"
)

// Option is one selectable choice (a model, a voice, a backend).
type Option struct {
	Label string
	ID    string
}

// OptionSet is an ordered list of choices plus the default selection.
// Default is empty when the set itself is empty (model-less backends).
type OptionSet struct {
	Choices []Option
	Default string
}

// Contains reports whether id is a member of the choice list.
func (s OptionSet) Contains(id string) bool {
	for _, opt := range s.Choices {
		if opt.ID == id {
			return true
		}
	}
	return false
}

// ParamField names a generation parameter a backend understands.
type ParamField string

const (
	FieldSpeed        ParamField = "speed"
	FieldExaggeration ParamField = "exaggeration"
	FieldCFGWeight    ParamField = "cfg_weight"
	FieldStability    ParamField = "stability"
	FieldSimilarity   ParamField = "similarity"
	FieldLanguage     ParamField = "language"
	FieldInstructions ParamField = "instructions"
)

// ParamSchema is the per-backend capability record: available models and
// built-in voices with their defaults, the applicable parameter fields, and
// whether the backend supports voice cloning, voice design, or serves a live
// voice catalog. It is resolved once per backend kind instead of re-deriving
// capabilities at each call site.
type ParamSchema struct {
	Kind             BackendKind
	Label            string
	Models           OptionSet
	BuiltinVoices    OptionSet
	Fields           []ParamField
	SupportsCloning  bool
	SupportsDesign   bool
	LiveVoiceCatalog bool
}

var schemas = map[BackendKind]ParamSchema{
	BackendChatterbox: {
		Kind:  BackendChatterbox,
		Label: "Chatterbox",
		BuiltinVoices: OptionSet{
			Choices: []Option{
				{Label: "Emily", ID: "Emily.wav"},
				{Label: "Olivia", ID: "Olivia.wav"},
				{Label: "Thomas", ID: "Thomas.wav"},
			},
			Default: "Emily.wav",
		},
		Fields:          []ParamField{FieldExaggeration, FieldCFGWeight},
		SupportsCloning: true,
	},
	BackendKokoro: {
		Kind:  BackendKokoro,
		Label: "Kokoro",
		BuiltinVoices: OptionSet{
			Choices: []Option{{Label: "default", ID: "default"}},
			Default: "default",
		},
		Fields:           []ParamField{FieldSpeed, FieldLanguage},
		LiveVoiceCatalog: true,
	},
	BackendOpenAI: {
		Kind:  BackendOpenAI,
		Label: "OpenAI",
		Models: OptionSet{
			Choices: []Option{
				{Label: "TTS-1", ID: "tts-1"},
				{Label: "TTS-1 HD", ID: "tts-1-hd"},
				{Label: "GPT-4o mini TTS", ID: "gpt-4o-mini-tts"},
			},
			Default: "tts-1",
		},
		BuiltinVoices: OptionSet{
			Choices: []Option{
				{Label: "Alloy", ID: "alloy"},
				{Label: "Echo", ID: "echo"},
				{Label: "Fable", ID: "fable"},
				{Label: "Nova", ID: "nova"},
				{Label: "Onyx", ID: "onyx"},
				{Label: "Shimmer", ID: "shimmer"},
			},
			Default: "alloy",
		},
		Fields: []ParamField{FieldSpeed, FieldInstructions},
	},
	BackendElevenLabs: {
		Kind:  BackendElevenLabs,
		Label: "ElevenLabs",
		Models: OptionSet{
			Choices: []Option{
				{Label: "Multilingual v2", ID: "eleven_multilingual_v2"},
				{Label: "Turbo v2.5", ID: "eleven_turbo_v2_5"},
				{Label: "Flash v2.5", ID: "eleven_flash_v2_5"},
			},
			Default: "eleven_multilingual_v2",
		},
		BuiltinVoices: OptionSet{
			Choices: []Option{
				{Label: "Rachel", ID: "21m00Tcm4TlvDq8ikWAM"},
				{Label: "Domi", ID: "AZnzlk1XvdvUeBnXmlld"},
				{Label: "Bella", ID: "EXAVITQu4vr4xnSDxMaL"},
				{Label: "Antoni", ID: "ErXwobaYiN019PkySvjV"},
			},
			Default: "21m00Tcm4TlvDq8ikWAM",
		},
		Fields:         []ParamField{FieldStability, FieldSimilarity},
		SupportsDesign: true,
	},
}

// SchemaFor returns the capability schema for a backend kind.
// Unknown kinds get an empty schema so callers degrade instead of panicking.
func SchemaFor(kind BackendKind) ParamSchema {
	if schema, ok := schemas[kind]; ok {
		return schema
	}
	return ParamSchema{Kind: kind, Label: string(kind)}
}

// BackendKinds returns all known backend kinds in presentation order.
// The order matters: the first available backend becomes the default selection.
func BackendKinds() []BackendKind {
	return []BackendKind{BackendChatterbox, BackendKokoro, BackendOpenAI, BackendElevenLabs}
}

// CustomVoicePrefix marks user-saved reference voices in voice identifiers.
const CustomVoicePrefix = "custom:"

// IsCustomVoice reports whether a voice identifier names a custom voice asset.
func IsCustomVoice(voice string) bool {
	return strings.HasPrefix(voice, CustomVoicePrefix)
}

// CustomVoiceName strips the custom identifier prefix.
func CustomVoiceName(voice string) string {
	return strings.TrimPrefix(voice, CustomVoicePrefix)
}

// CustomVoiceID builds the identifier for a named custom voice asset.
func CustomVoiceID(name string) string {
	return CustomVoicePrefix + name
}

// CustomVoiceLabel builds the display label for a custom voice.
func CustomVoiceLabel(name string) string {
	return name + " (custom)"
}

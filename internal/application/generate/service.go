// Package generate implements the dispatch use-case: one user action becomes
// exactly one outbound synthesis call, whose result feeds playback and the
// history store.
package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/vox-go/internal/domain"
	"github.com/doeshing/vox-go/internal/ports"
)

// Service orchestrates a single generation end-to-end. There is one
// generation slot: callers are expected to keep at most one dispatch in
// flight, which the CLI guarantees by construction.
type Service struct {
	ConfigProvider ports.ConfigProvider
	ClientFactory  ports.SpeechClientFactory
	HistoryStore   ports.HistoryRepository
	VoiceLibrary   ports.VoiceLibrary
	Selector       ports.BackendSelector
	Logger         ports.Logger
	Session        *domain.Session
}

// Run processes one synthesis dispatch.
//
// Routing precedence: voice design (description supplied, backend supports
// it) wins over voice cloning (custom voice identifier, backend supports
// it), which wins over a standard call with the voice identifier as-is.
// Any failure past validation is terminal for this attempt; nothing is
// retried.
func (s *Service) Run(req domain.GenerateRequest) (domain.GenerateResult, error) {
	if s.ConfigProvider == nil || s.ClientFactory == nil || s.HistoryStore == nil ||
		s.VoiceLibrary == nil || s.Logger == nil {
		return domain.GenerateResult{}, errors.New("generate.Service dependencies not satisfied")
	}

	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return domain.GenerateResult{}, domain.ErrEmptyText
	}

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.GenerateResult{}, fmt.Errorf("load config: %w", err)
	}

	def, err := s.pickBackend(cfg, req.BackendOverride)
	if err != nil {
		return domain.GenerateResult{}, err
	}
	schema := domain.SchemaFor(def.Kind())

	if s.Session != nil {
		s.Session.Reset()
	}

	synReq := s.buildRequest(cfg, schema, req, text)
	meta := domain.GenerationMeta{
		Text:    text,
		Voice:   synReq.Voice,
		Backend: def.Kind(),
		Model:   synReq.Model,
		Format:  synReq.Format,
		Params:  synReq.Params,
	}

	client, err := s.ClientFactory.ForBackend(def)
	if err != nil {
		return domain.GenerateResult{}, err
	}

	result, err := s.dispatch(ctx, client, schema, req, &synReq, &meta)
	if err != nil {
		return domain.GenerateResult{}, err
	}

	if s.Session != nil {
		s.Session.Store(result.Audio, meta)
	}

	out := domain.GenerateResult{Audio: result.Audio, Meta: meta}
	if s.shouldSave(cfg, req) {
		entry, err := s.persist(result.Audio, meta)
		if err != nil {
			return out, err
		}
		out.Entry = entry
		out.AudioFile = entry.AudioFile
	}
	return out, nil
}

// pickBackend honors an explicit override verbatim; without one the selector
// resolves the default among the available backends, so a keyless preference
// falls back instead of dispatching to a hidden backend.
func (s *Service) pickBackend(cfg domain.Config, override string) (domain.BackendDefinition, error) {
	if override != "" {
		if def, ok := cfg.FindBackend(override); ok {
			return def, nil
		}
		return domain.BackendDefinition{}, fmt.Errorf("backend %s not configured", override)
	}
	if s.Selector != nil {
		if def, ok := s.Selector.DefaultBackend(); ok {
			return def, nil
		}
		return domain.BackendDefinition{}, fmt.Errorf("no backends available")
	}
	return cfg.GetDefaultBackend()
}

func (s *Service) buildRequest(cfg domain.Config, schema domain.ParamSchema, req domain.GenerateRequest, text string) ports.SynthesisRequest {
	voice := req.Voice
	if voice == "" {
		voice = schema.BuiltinVoices.Default
	}
	model := req.Model
	if model == "" {
		model = schema.Models.Default
	}
	format := req.Format
	if format == "" {
		format = cfg.Preferences.Format
	}
	if format == "" {
		format = domain.DefaultAudioFormat
	}
	return ports.SynthesisRequest{
		Text:   text,
		Voice:  voice,
		Model:  model,
		Format: format,
		Params: req.Params.Applied(schema),
	}
}

// dispatch issues exactly one external call according to routing precedence.
func (s *Service) dispatch(ctx context.Context, client ports.SpeechClient, schema domain.ParamSchema, req domain.GenerateRequest, synReq *ports.SynthesisRequest, meta *domain.GenerationMeta) (ports.SynthesisResult, error) {
	description := strings.TrimSpace(req.Params.VoiceDescription)

	if req.VoiceDesign && description != "" && schema.SupportsDesign {
		// The voice field is ignored entirely for design calls.
		synReq.Voice = ""
		synReq.Params["voice_description"] = description
		meta.Voice = "designed"
		meta.Params = synReq.Params

		s.logCall(client, "design")
		result, err := client.SynthesizeFromDescription(ctx, description, *synReq)
		if err != nil {
			return ports.SynthesisResult{}, fmt.Errorf("voice design failed: %w", err)
		}
		return result, nil
	}

	if domain.IsCustomVoice(synReq.Voice) && schema.SupportsCloning {
		referencePath, err := s.VoiceLibrary.Resolve(domain.CustomVoiceName(synReq.Voice))
		if err != nil {
			return ports.SynthesisResult{}, err
		}
		s.logCall(client, "clone")
		result, err := client.SynthesizeFromReference(ctx, referencePath, *synReq)
		if err != nil {
			return ports.SynthesisResult{}, fmt.Errorf("synthesis failed: %w", err)
		}
		return result, nil
	}

	s.logCall(client, "standard")
	result, err := client.Synthesize(ctx, *synReq)
	if err != nil {
		return ports.SynthesisResult{}, fmt.Errorf("synthesis failed: %w", err)
	}
	return result, nil
}

func (s *Service) logCall(client ports.SpeechClient, mode string) {
	s.Logger.Info("calling backend", map[string]interface{}{
		"backend": client.Name(),
		"mode":    mode,
	})
}

func (s *Service) shouldSave(cfg domain.Config, req domain.GenerateRequest) bool {
	if req.AutoSaveOverride != nil {
		return *req.AutoSaveOverride
	}
	return cfg.Preferences.AutoSave
}

func (s *Service) persist(audio []byte, meta domain.GenerationMeta) (*domain.HistoryEntry, error) {
	entry := domain.NewHistoryEntry(meta)
	path, err := s.HistoryStore.SaveAudio(audio, entry.ID, meta.Format)
	if err != nil {
		return nil, fmt.Errorf("save audio: %w", err)
	}
	entry.AudioFile = path
	if err := s.HistoryStore.Append(entry); err != nil {
		return nil, fmt.Errorf("save history: %w", err)
	}
	return &entry, nil
}

// Compile-time interface compliance check
var _ domain.GenerateService = (*Service)(nil)

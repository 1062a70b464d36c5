// Package registry answers what is selectable per backend: models, voices,
// and which backends are available at all. Lookups never fail past this
// boundary; every path degrades to a renderable default because the
// presentation layer always needs an option set.
package registry

import (
	"context"
	"time"

	"github.com/doeshing/vox-go/internal/domain"
	"github.com/doeshing/vox-go/internal/ports"
)

// Registry resolves selectable options from static backend schemas, the
// configured backend definitions, live container catalogs, and the local
// voice library.
type Registry struct {
	Config         domain.Config
	Factory        ports.SpeechClientFactory
	Library        ports.VoiceLibrary
	Logger         ports.Logger
	CatalogTimeout time.Duration
}

// ModelsFor returns the selectable models for a backend with their default.
// Model-less backends return an empty set; callers must not render a model
// selector for those.
func (r *Registry) ModelsFor(kind domain.BackendKind) domain.OptionSet {
	return domain.SchemaFor(kind).Models
}

// VoicesFor returns the selectable voices for a backend with their default.
// Live catalogs degrade to a single placeholder voice when the lookup fails
// or comes back empty; cloning backends append locally saved custom voices.
func (r *Registry) VoicesFor(ctx context.Context, kind domain.BackendKind) domain.OptionSet {
	schema := domain.SchemaFor(kind)
	voices := schema.BuiltinVoices

	if schema.LiveVoiceCatalog {
		voices = r.liveCatalog(ctx, kind, voices)
	}

	if schema.SupportsCloning && r.Library != nil {
		for _, name := range r.Library.List() {
			voices.Choices = append(voices.Choices, domain.Option{
				Label: domain.CustomVoiceLabel(name),
				ID:    domain.CustomVoiceID(name),
			})
		}
	}

	if len(voices.Choices) == 0 {
		voices = placeholderVoices()
	}
	if voices.Default == "" {
		voices.Default = voices.Choices[0].ID
	}
	return voices
}

func (r *Registry) liveCatalog(ctx context.Context, kind domain.BackendKind, fallback domain.OptionSet) domain.OptionSet {
	def, ok := r.Config.FindBackend(string(kind))
	if !ok || r.Factory == nil {
		return placeholderVoices()
	}
	client, err := r.Factory.ForBackend(def)
	if err != nil {
		return placeholderVoices()
	}

	timeout := r.CatalogTimeout
	if timeout <= 0 {
		timeout = domain.DefaultCatalogTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ids, err := client.ListVoices(ctx)
	if err != nil || len(ids) == 0 {
		if r.Logger != nil {
			r.Logger.Debug("voice catalog unavailable", map[string]interface{}{
				"backend": string(kind),
			})
		}
		return placeholderVoices()
	}
	set := domain.OptionSet{Default: ids[0]}
	for _, id := range ids {
		set.Choices = append(set.Choices, domain.Option{Label: id, ID: id})
	}
	if fallback.Default != "" && set.Contains(fallback.Default) {
		set.Default = fallback.Default
	}
	return set
}

func placeholderVoices() domain.OptionSet {
	return domain.OptionSet{
		Choices: []domain.Option{{Label: domain.PlaceholderVoice, ID: domain.PlaceholderVoice}},
		Default: domain.PlaceholderVoice,
	}
}

// DetectAvailable lists the usable backends in presentation order. Local
// container backends are always listed (reachability is checked lazily at
// generation time); keyed backends appear only when their credential env
// value is non-empty. The first entry is the default selection.
func (r *Registry) DetectAvailable() []domain.Option {
	var available []domain.Option
	for _, kind := range domain.BackendKinds() {
		def, ok := r.Config.FindBackend(string(kind))
		if !ok {
			continue
		}
		if !def.Local && !credentialPresent(def) {
			continue
		}
		available = append(available, domain.Option{
			Label: domain.SchemaFor(kind).Label,
			ID:    string(kind),
		})
	}
	return available
}

// DefaultBackend resolves the backend a dispatch should use when the user
// did not pick one: the configured preference if it is available, otherwise
// the first detected backend.
func (r *Registry) DefaultBackend() (domain.BackendDefinition, bool) {
	available := r.DetectAvailable()
	if len(available) == 0 {
		return domain.BackendDefinition{}, false
	}
	if preferred := r.Config.Preferences.DefaultBackend; preferred != "" {
		for _, opt := range available {
			if opt.ID == preferred {
				return r.Config.FindBackend(preferred)
			}
		}
	}
	return r.Config.FindBackend(available[0].ID)
}

var _ ports.BackendSelector = (*Registry)(nil)

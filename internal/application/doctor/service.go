package doctor

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/doeshing/vox-go/internal/domain"
	"github.com/doeshing/vox-go/internal/pkg/filesystem"
	"github.com/doeshing/vox-go/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	HistoryStore   ports.HistoryRepository
	VoiceLibrary   ports.VoiceLibrary
	Player         ports.AudioPlayer
	HTTPClient     *http.Client
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	if err := cfg.Validate(); err != nil {
		checks = append(checks, fail("Config file", err.Error()))
	} else {
		checks = append(checks, ok("Config file", fmt.Sprintf("loaded, format %s", cfg.ConfigFormatVersion)))
	}

	checks = append(checks, dataDirCheck())
	checks = append(checks, s.backendChecks(ctx, cfg)...)

	if s.HistoryStore != nil {
		checks = append(checks, ok("History store", s.HistoryStore.Path()))
	}
	if s.VoiceLibrary != nil {
		checks = append(checks, ok("Voice library", fmt.Sprintf("%d custom voice(s)", len(s.VoiceLibrary.List()))))
	}
	if s.Player != nil {
		if s.Player.Enabled() {
			checks = append(checks, ok("Audio player", "detected"))
		} else {
			checks = append(checks, warn("Audio player", "no player binary found; use --out to save audio instead"))
		}
	}

	return domain.HealthReport{Checks: checks}, nil
}

func dataDirCheck() domain.HealthCheck {
	dir := filesystem.DataDir()
	if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
		return fail("Data directory", fmt.Sprintf("%s: %v", dir, err))
	}
	return ok("Data directory", dir)
}

func (s *Service) backendChecks(ctx context.Context, cfg domain.Config) []domain.HealthCheck {
	var checks []domain.HealthCheck
	for _, def := range cfg.Backends {
		name := fmt.Sprintf("Backend %s", def.Name)
		if def.Local {
			checks = append(checks, s.reachabilityCheck(ctx, name, def))
			continue
		}
		if def.AuthEnvVar != "" && os.Getenv(def.AuthEnvVar) == "" {
			checks = append(checks, warn(name, fmt.Sprintf("%s not set; backend hidden from selection", def.AuthEnvVar)))
		} else {
			checks = append(checks, ok(name, "credentials present"))
		}
	}
	return checks
}

func (s *Service) reachabilityCheck(ctx context.Context, name string, def domain.BackendDefinition) domain.HealthCheck {
	client := s.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 3 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, def.Endpoint, nil)
	if err != nil {
		return warn(name, err.Error())
	}
	resp, err := client.Do(req)
	if err != nil {
		return warn(name, fmt.Sprintf("container not reachable at %s", def.Endpoint))
	}
	resp.Body.Close()
	return ok(name, fmt.Sprintf("reachable at %s", def.Endpoint))
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthFail, Details: details}
}

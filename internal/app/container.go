package app

import (
	"context"
	"time"

	"github.com/doeshing/vox-go/internal/application/doctor"
	"github.com/doeshing/vox-go/internal/application/generate"
	"github.com/doeshing/vox-go/internal/domain"
	"github.com/doeshing/vox-go/internal/infrastructure/config"
	"github.com/doeshing/vox-go/internal/infrastructure/history"
	"github.com/doeshing/vox-go/internal/infrastructure/player"
	"github.com/doeshing/vox-go/internal/infrastructure/registry"
	"github.com/doeshing/vox-go/internal/infrastructure/tts"
	"github.com/doeshing/vox-go/internal/infrastructure/voices"
	"github.com/doeshing/vox-go/internal/pkg/logger"
	"github.com/doeshing/vox-go/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	GenerateService *generate.Service
	DoctorService   *doctor.Service
	Registry        *registry.Registry
	ConfigProvider  ports.ConfigProvider
	ConfigLoader    *config.FileLoader
	HistoryStore    ports.HistoryRepository
	VoiceLibrary    ports.VoiceLibrary
	Player          ports.AudioPlayer
	Logger          *logger.StdLogger
	Session         *domain.Session
	Config          domain.Config
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)
	library := voices.NewLibrary()
	historyStore := buildHistoryStore(cfg)
	factory := tts.NewFactory(time.Duration(cfg.Preferences.TimeoutSeconds) * time.Second)
	localPlayer := player.NewLocalPlayer(cfg.Playback.Player)
	session := domain.NewSession()

	reg := &registry.Registry{
		Config:  cfg,
		Factory: factory,
		Library: library,
		Logger:  log,
	}

	generateService := &generate.Service{
		ConfigProvider: cfgLoader,
		ClientFactory:  factory,
		HistoryStore:   historyStore,
		VoiceLibrary:   library,
		Selector:       reg,
		Logger:         log,
		Session:        session,
	}

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		HistoryStore:   historyStore,
		VoiceLibrary:   library,
		Player:         localPlayer,
	}

	return &Container{
		GenerateService: generateService,
		DoctorService:   doctorService,
		Registry:        reg,
		ConfigProvider:  cfgLoader,
		ConfigLoader:    cfgLoader,
		HistoryStore:    historyStore,
		VoiceLibrary:    library,
		Player:          localPlayer,
		Logger:          log,
		Session:         session,
		Config:          cfg,
	}, nil
}

func buildHistoryStore(cfg domain.Config) ports.HistoryRepository {
	if cfg.History.Storage == "sqlite" {
		store := history.NewSQLiteStore()
		if cfg.History.RetentionDays > 0 {
			// best-effort: a failed prune never blocks startup
			_ = store.PruneOlderThan(cfg.History.RetentionDays)
		}
		return store
	}
	return history.NewFileStore()
}

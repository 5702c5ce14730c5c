package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/audio"
	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/clients/azurespeech"
	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/clients/deepseek"
	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/clients/googleai"
	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/config"
	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/dialogue"
	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/observability"
	callHandler "github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/receptionist/handler"
	callProcessor "github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/receptionist/processor"
	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/session"
	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/storage"
	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/store"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	Store       store.Store
	Logger      *observability.Logger
	CallHandler *callHandler.Handler

	// AudioDir is non-empty when reply audio is served from local disk.
	AudioDir string

	cleanups []func()
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: logger}

	var err error
	deps.Store, err = store.New(cfg.Database.ConnectionString(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	speechClient, err := azurespeech.New(
		cfg.Speech.Key, cfg.Speech.Region, cfg.Speech.Voice, cfg.Speech.Language, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}

	intentClient, err := deepseek.New(cfg.Intent.APIKey, cfg.Intent.BaseURL, cfg.Intent.Model, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create intent client: %w", err)
	}

	frontDesk, err := googleai.New(cfg.Services.GoogleAIAPIKey, cfg.Hotel.Name, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create front desk client: %w", err)
	}

	var durableStorage callProcessor.DurableStorage
	switch cfg.Storage.Mode {
	case "azure":
		durableStorage, err = storage.NewAzureBlob(cfg.Storage.AzureSASURL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create blob storage: %w", err)
		}
	case "local":
		local, err := storage.NewLocal(cfg.Storage.LocalDir, cfg.Storage.PublicBaseURL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create local storage: %w", err)
		}
		durableStorage = local
		deps.AudioDir = local.Dir()
	default:
		return nil, fmt.Errorf("unknown audio storage mode %q", cfg.Storage.Mode)
	}

	ttl := time.Duration(cfg.Session.TTLSeconds) * time.Second
	var sessions session.Store
	switch cfg.Session.Backend {
	case "redis":
		redisStore, err := session.NewRedisStore(
			cfg.Session.RedisAddr, cfg.Session.RedisPassword, cfg.Session.RedisDB, ttl)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis session store: %w", err)
		}
		sessions = redisStore
		deps.cleanups = append(deps.cleanups, func() { redisStore.Close() })
	case "memory":
		memStore := session.NewMemoryStore(ttl)
		sessions = memStore
		deps.cleanups = append(deps.cleanups, memStore.Close)
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}

	dialogueManager := dialogue.New(&deps.Store, frontDesk, cfg.Hotel, logger)

	proc := callProcessor.New(
		audio.New(logger),
		speechClient,
		intentClient,
		dialogueManager,
		speechClient,
		durableStorage,
		&deps.Store,
		logger,
	)

	deps.CallHandler = callHandler.New(proc, sessions, cfg.Hotel.Name, cfg.Hotel.GreetingText, logger)

	return deps, nil
}

// Cleanup closes all resources that need cleanup
func (d *Dependencies) Cleanup() {
	for _, cleanup := range d.cleanups {
		cleanup()
	}
}

package main

import (
	"context"
	"log"

	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/bootstrap"
	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/config"
	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/observability"
	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := observability.NewLogger()
	ctx := context.Background()

	deps, err := bootstrap.Initialize(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize dependencies: %v", err)
	}

	srv := server.New(cfg, deps, logger)
	srv.Setup()

	if err := srv.Start(ctx); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	if err := srv.WaitForShutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
}

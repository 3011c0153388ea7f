package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ogurasousui/employee-directory/internal/platform/app"
	"github.com/ogurasousui/employee-directory/internal/platform/config"
	"github.com/ogurasousui/employee-directory/internal/platform/logging"
	"github.com/ogurasousui/employee-directory/internal/platform/server"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(config.PathFromEnv())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.ValidateServer(); err != nil {
		log.Fatalf("invalid server config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	directory, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize employee directory", zap.Error(err))
	}
	defer directory.Close()

	grpcServer := server.New(cfg.Server.ListenAddr, directory.Service, logger)

	if err := grpcServer.Run(ctx); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		return
	}
	logger.Info("server stopped")
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"collab-match/internal/app"
	"collab-match/internal/config"
	"collab-match/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", "err", err)
	}
	lg := logger.New(cfg.Log).WithPrefix(cfg.App.AppName)

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	bootstrap, cleanup, err := app.Bootstrap(bootCtx, cfg, lg)
	bootCancel()
	if err != nil {
		lg.Fatal("failed to bootstrap app", "err", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			lg.Error("cleanup error", "err", err)
		}
	}()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		lg.Fatal("invalid HTTP port", "err", err)
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("listening", "addr", addr, "env", cfg.App.Environment, "driver", cfg.Database.Driver)
		errCh <- bootstrap.Fiber.Listen(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			lg.Error("server error", "err", err)
		}
	case sig := <-sigCh:
		lg.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := bootstrap.Fiber.ShutdownWithContext(ctx); err != nil {
			lg.Error("shutdown error", "err", err)
		}
	}
}

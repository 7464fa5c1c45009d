// Package main runs the web frontend together with the in-memory dev
// backend, so the whole stack comes up with one command and no external
// services.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mealmate/v2/internal/infrastructure/container"
	"github.com/mealmate/v2/internal/infrastructure/http/devserver"
	"github.com/mealmate/v2/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const devBackendAddr = "localhost:5000"

func main() {
	devLog, err := logger.New(logger.Config{Level: "info", Format: "console", Development: true})
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}

	backend := devserver.NewServer(devLog)
	go func() {
		if err := backend.Start(devBackendAddr); err != nil {
			devLog.Fatal("dev backend exited", zap.Error(err))
		}
	}()

	// The frontend's default backend URL matches the dev backend address
	app := fx.New(
		fx.NopLogger,
		container.Module,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		log.Fatalf("failed to start: %v", err)
	}

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := app.Stop(shutdownCtx); err != nil {
		log.Fatalf("failed to stop cleanly: %v", err)
	}
	if err := backend.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("failed to stop dev backend: %v", err)
	}
}

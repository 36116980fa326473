package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"notekeeper-be/internal/bootstrap"
	"notekeeper-be/internal/config"
	"notekeeper-be/internal/server"
	"notekeeper-be/internal/tracer"
	"notekeeper-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.Debug)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(gormDB, cfg)
	if err != nil {
		log.Fatalf("Unable to build container: %v", err)
	}
	defer container.Close()

	// 4. Tracer
	shutdownTracer := tracer.InitTracer(cfg.Tracing, container.Logger)
	defer shutdownTracer(context.Background())

	// 5. Start Background Services
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if container.AuditService != nil {
		if err := container.AuditService.Consume(ctx); err != nil {
			container.Logger.Error("MAIN", "Audit consumer failed to start", map[string]interface{}{"error": err})
		}
	}

	// 6. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		container.Logger.Info("MAIN", "Shutting down", nil)
		if err := srv.Shutdown(); err != nil {
			container.Logger.Error("MAIN", "Shutdown failed", map[string]interface{}{"error": err})
		}
	}()

	// 7. Run Server
	if err := srv.Run(); err != nil {
		container.Logger.Error("MAIN", "Server stopped", map[string]interface{}{"error": err})
	}
}

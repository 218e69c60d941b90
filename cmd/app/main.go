package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"multicleaner/cmd"
	api "multicleaner/internal/adapters/in/http"
	"multicleaner/internal/jobs"

	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger, logFile, err := cmd.NewLogger(configs.Log, os.Stdout)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer logFile.Close()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := cmd.OpenDatabase(ctx, configs)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app, err := cmd.NewCompositionRoot(configs, gormDB, registry, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	jobManager := jobs.NewJobManager(app.Sweepers(), configs.SweepSchedule, logger)
	if configs.RunSweepsOnStart {
		go jobManager.RunAll(ctx)
	}
	if err = jobManager.StartAll(); err != nil {
		log.Fatal("Failed to start jobs:", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs.HTTPPort, registry, logger)
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, registry *prometheus.Registry, logger *slog.Logger) {
	doc, err := api.LoadOpenAPI(ctx)
	if err != nil {
		log.Fatalf("Error loading API document: %v", err)
	}

	server, err := api.NewServer(
		app.Handlers(),
		app.Inbox(),
		app.Sockets(),
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		app.Clock(),
		logger,
		doc,
	)
	if err != nil {
		log.Fatalf("Error creating HTTP server: %v", err)
	}
	e := server.NewEcho()

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()
	logger.InfoContext(ctx, "HTTP server started", "port", port)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(shutdownCtx, "HTTP server shutdown failed", "error", err)
	}
	logger.InfoContext(shutdownCtx, "HTTP server stopped")
}

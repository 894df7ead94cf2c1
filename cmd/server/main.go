package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"export-orchestrator/api/rest/routes"
	"export-orchestrator/config"
	"export-orchestrator/core/batch"
	"export-orchestrator/core/compat"
	"export-orchestrator/core/integration"
	"export-orchestrator/core/monitoring"
	"export-orchestrator/core/notify"
	"export-orchestrator/core/orchestrator"
	"export-orchestrator/core/processor"
	"export-orchestrator/core/quality"
	"export-orchestrator/core/registry"
	"export-orchestrator/core/repository"
	"export-orchestrator/storage"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.LogJSON {
		log.SetFormatter(&log.JSONFormatter{})
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	// Initialize database
	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Database connected successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize repositories
	jobRepo := repository.NewJobRepository(db)
	eventRepo := repository.NewEventRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	outputRepo := repository.NewOutputRepository(db)

	// Initialize profile registry, restoring stored custom profiles
	profiles := registry.NewProfileRegistry()
	if stored, err := profileRepo.ListProfiles(); err == nil {
		for _, profile := range stored {
			if _, err := profiles.Register(profile); err != nil {
				log.Printf("Skipping stored profile %s: %v", profile.ID, err)
			}
		}
	}

	// Initialize format processors and compatibility checkers
	processors := processor.NewRegistry()
	processor.RegisterBuiltins(processors)
	compatRegistry := compat.NewRegistry()
	validator := quality.NewValidator(compatRegistry)

	// Initialize content store
	var content storage.ContentStore
	if cfg.S3Bucket != "" {
		content, err = storage.NewS3Store(ctx, cfg.S3Bucket)
		if err != nil {
			log.Fatalf("Failed to initialize S3 content store: %v", err)
		}
		log.Printf("Using S3 content store: %s", cfg.S3Bucket)
	} else {
		content = storage.NewLocalStore(cfg.ContentRoot)
		log.Printf("Using local content store: %s", cfg.ContentRoot)
	}

	// Initialize notifications and stats
	stats := monitoring.NewStatsTracker()
	notifiers := notify.MultiNotifier{stats}
	if cfg.WebhookURL != "" {
		notifiers = append(notifiers, notify.NewWebhookNotifier(cfg.WebhookURL))
	} else {
		notifiers = append(notifiers, notify.LogNotifier{})
	}

	// Initialize orchestrator
	orch := orchestrator.NewOrchestrator(profiles, processors, validator, content, notifiers, jobRepo)
	orch.SetInterval(cfg.DispatchInterval)
	go orch.Start(ctx)
	defer orch.Stop()

	// Initialize watchdog for stuck jobs
	watchdog := monitoring.NewWatchdog(orch, cfg.ProcessingDeadline)
	go watchdog.Start(ctx)

	// Initialize batch coordinator and integrations
	coordinator := batch.NewCoordinator(orch, profiles)
	coordinator.SetNotifier(notifiers)
	integrations := integration.NewStore()
	exporter := monitoring.NewMetricsExporter(orch, stats)

	// Setup routes
	r := mux.NewRouter()
	routes.SetupRoutes(r, routes.Deps{
		Orchestrator: orch,
		Coordinator:  coordinator,
		Profiles:     profiles,
		Compat:       compatRegistry,
		Integrations: integrations,
		Stats:        stats,
		Exporter:     exporter,
		EventRepo:    eventRepo,
		OutputRepo:   outputRepo,
		ProfileRepo:  profileRepo,
	})

	// Start server
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Starting server on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}

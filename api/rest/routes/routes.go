package routes

import (
	"net/http"

	"export-orchestrator/api/rest/handlers"
	"export-orchestrator/core/batch"
	"export-orchestrator/core/compat"
	"export-orchestrator/core/integration"
	"export-orchestrator/core/monitoring"
	"export-orchestrator/core/orchestrator"
	"export-orchestrator/core/registry"
	"export-orchestrator/core/repository"

	"github.com/gorilla/mux"
)

// Deps carries the wired components the API serves
type Deps struct {
	Orchestrator *orchestrator.Orchestrator
	Coordinator  *batch.Coordinator
	Profiles     *registry.ProfileRegistry
	Compat       *compat.Registry
	Integrations *integration.Store
	Stats        *monitoring.StatsTracker
	Exporter     *monitoring.MetricsExporter
	EventRepo    *repository.EventRepository
	OutputRepo   *repository.OutputRepository
	ProfileRepo  *repository.ProfileRepository
}

// SetupRoutes configures all API routes
func SetupRoutes(r *mux.Router, deps Deps) {
	exportHandler := handlers.NewExportHandler(deps.Orchestrator, deps.EventRepo, deps.OutputRepo)
	profileHandler := handlers.NewProfileHandler(deps.Profiles, deps.ProfileRepo)
	batchHandler := handlers.NewBatchHandler(deps.Coordinator)
	integrationHandler := handlers.NewIntegrationHandler(deps.Integrations)
	compatHandler := handlers.NewCompatHandler(deps.Compat)
	dashboardHandler := handlers.NewDashboardHandler(deps.Orchestrator, deps.Stats, deps.Exporter, deps.EventRepo)

	api := r.PathPrefix("/v1").Subrouter()

	// Export job endpoints
	api.HandleFunc("/exports", exportHandler.SubmitExport).Methods("POST")
	api.HandleFunc("/exports", exportHandler.ListExports).Methods("GET")
	api.HandleFunc("/exports/{id}", exportHandler.GetExport).Methods("GET")
	api.HandleFunc("/exports/{id}/progress", exportHandler.GetExportProgress).Methods("GET")
	api.HandleFunc("/exports/{id}/cancel", exportHandler.CancelExport).Methods("POST")
	api.HandleFunc("/exports/{id}/events", exportHandler.GetExportEvents).Methods("GET")
	api.HandleFunc("/exports/{id}/outputs", exportHandler.GetExportOutputs).Methods("GET")

	// Profile endpoints
	api.HandleFunc("/profiles", profileHandler.CreateProfile).Methods("POST")
	api.HandleFunc("/profiles", profileHandler.ListProfiles).Methods("GET")
	api.HandleFunc("/profiles/{id}", profileHandler.GetProfile).Methods("GET")
	api.HandleFunc("/profiles/{id}", profileHandler.UpdateProfile).Methods("PUT")
	api.HandleFunc("/profiles/{id}", profileHandler.DeleteProfile).Methods("DELETE")
	api.HandleFunc("/formats", profileHandler.ListFormats).Methods("GET")

	// Batch endpoints
	api.HandleFunc("/batches", batchHandler.SubmitBatch).Methods("POST")
	api.HandleFunc("/batches/{id}", batchHandler.GetBatch).Methods("GET")

	// Integration endpoints
	api.HandleFunc("/integrations", integrationHandler.ListIntegrations).Methods("GET")
	api.HandleFunc("/integrations/{name}", integrationHandler.GetIntegration).Methods("GET")
	api.HandleFunc("/integrations/{name}", integrationHandler.ConfigureIntegration).Methods("PUT")

	// Compatibility endpoints
	api.HandleFunc("/compatibility/validate", compatHandler.ValidateCompat).Methods("POST")

	// Dashboard and operational endpoints
	api.HandleFunc("/dashboard/summary", dashboardHandler.GetSummary).Methods("GET")
	r.HandleFunc("/metrics", dashboardHandler.GetMetrics).Methods("GET")
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")
}

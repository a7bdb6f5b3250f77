package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"wildmenipedia/internal/handlers"
	"wildmenipedia/internal/ingest"
	"wildmenipedia/internal/service"
	"wildmenipedia/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Answers        service.AnswerService
	VectorStore    vectorstore.VectorStore
	Graph          handlers.GraphPinger
	CollectionName string
	// Ingester is optional; without it the ingest route is not mounted.
	Ingester   handlers.Ingester
	Connectors []ingest.Connector
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(CORS)

	askHandler := handlers.NewAskHandler(deps.Answers)
	hybridHandler := handlers.NewHybridHandler(deps.Answers)
	exportHandler := handlers.NewExportHandler(deps.Answers)
	healthHandler := handlers.NewHealthHandler(deps.VectorStore, deps.Graph, deps.CollectionName)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/ask", askHandler)
		r.Method(http.MethodGet, "/export/markdown", exportHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
		r.Method(http.MethodPost, "/v1/hybrid", hybridHandler)
		if deps.Ingester != nil {
			r.Method(http.MethodPost, "/v1/ingest", handlers.NewIngestHandler(deps.Ingester, deps.Connectors...))
		}
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("wildmenipedia: GET /api/ask?q=..., POST /api/v1/hybrid, GET /api/export/markdown?q=..., GET /api/health\n"))
	})

	return r
}

package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"wildmenipedia/internal/contextutil"
	"wildmenipedia/internal/ingest"
	"wildmenipedia/internal/service"
)

// Ingester loads entities from a knowledge base.
type Ingester interface {
	Ingest(ctx context.Context, conn ingest.Connector, term string, limit int) (*ingest.Stats, error)
}

// IngestHandler handles HTTP requests for triggering ingestion.
type IngestHandler struct {
	ingester   Ingester
	connectors map[string]ingest.Connector
	// run executes the ingestion; it defaults to a background goroutine.
	run func(func())
}

// NewIngestHandler creates a new IngestHandler for the given connectors.
func NewIngestHandler(ingester Ingester, connectors ...ingest.Connector) *IngestHandler {
	byName := make(map[string]ingest.Connector, len(connectors))
	for _, c := range connectors {
		byName[c.Name()] = c
	}
	return &IngestHandler{
		ingester:   ingester,
		connectors: byName,
		run:        func(f func()) { go f() },
	}
}

// IngestResponse represents the response from the ingest endpoint.
//
// swagger:model IngestResponse
type IngestResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ServeHTTP starts ingestion of ?source=wikidata|dbpedia&term=...&limit=n.
// It returns immediately; progress is logged.
//
// swagger:route POST /api/v1/ingest ingestEntities
//
// # Trigger ingestion
//
// responses:
//
//	'202':
//	  description: Ingestion started
//	  schema:
//	    "$ref": "#/definitions/IngestResponse"
//	'400':
//	  description: Unknown source or missing term
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *IngestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	q := r.URL.Query()
	source := strings.ToLower(strings.TrimSpace(q.Get("source")))
	if source == "" {
		source = "wikidata"
	}
	conn, ok := h.connectors[source]
	if !ok {
		handleServiceError(ctx, w, fmt.Errorf("%w: %s", service.ErrUnknownSource, source), "Unknown source")
		return
	}
	term := strings.TrimSpace(q.Get("term"))
	if term == "" {
		handleServiceError(ctx, w, &service.ValidationError{Field: "term", Message: "cannot be empty"}, "Invalid request")
		return
	}
	limit, err := intParam(q, "limit", 5)
	if err != nil || limit <= 0 {
		writeError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}

	logger.InfoContext(ctx, "ingestion triggered via API", "source", source, "term", term, "limit", limit)

	// The request context ends with the response, ingestion keeps going.
	bgLogger := slog.Default().With("source", source, "term", term)
	h.run(func() {
		ingestCtx := contextutil.WithLogger(context.Background(), bgLogger)
		stats, err := h.ingester.Ingest(ingestCtx, conn, term, limit)
		if err != nil {
			bgLogger.ErrorContext(ingestCtx, "ingestion failed", "error", err)
			return
		}
		bgLogger.InfoContext(ingestCtx, "ingestion finished", "labels", stats.Labels, "triples", stats.Triples)
	})

	writeJSON(ctx, w, http.StatusAccepted, IngestResponse{
		Message: fmt.Sprintf("Ingestion of %q from %s started. Check server logs for progress.", term, source),
		Status:  "accepted",
	})
}

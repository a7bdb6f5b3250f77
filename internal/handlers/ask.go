package handlers

import (
	"net/http"

	"wildmenipedia/internal/contextutil"
	"wildmenipedia/internal/fusion"
	"wildmenipedia/internal/scrape"
	"wildmenipedia/internal/service"
)

// AskHandler answers GET /api/ask?q=... with a hybrid result.
type AskHandler struct {
	answers service.AnswerService
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(answers service.AnswerService) *AskHandler {
	return &AskHandler{answers: answers}
}

// HybridResponse is the hybrid result plus the outcome of every requested URL.
//
// swagger:model HybridResponse
type HybridResponse struct {
	fusion.HybridResult
	// Fetched lists the fetch outcome of each requested URL, in request order.
	Fetched []scrape.Page `json:"fetched,omitempty"`
}

// ServeHTTP handles HTTP requests for hybrid questions.
//
// swagger:route GET /api/ask askQuestion
//
// # Ask a question
//
// Resolves the question to graph entities, ranks their facts and cites the
// pages given with the repeatable url parameter.
//
// responses:
//
//	'200':
//	  description: Hybrid result
//	  schema:
//	    "$ref": "#/definitions/HybridResponse"
//	'400':
//	  description: Invalid question or parameters
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	req, err := answerRequestFromQuery(r.URL.Query())
	if err != nil {
		handleServiceError(ctx, w, err, "Invalid request")
		return
	}

	resp, err := h.answers.Answer(ctx, req)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to answer question")
		return
	}

	writeJSON(ctx, w, http.StatusOK, HybridResponse{HybridResult: resp.Result, Fetched: resp.Pages})
}

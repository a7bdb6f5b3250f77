package handlers

import (
	"net/http"
	"strings"

	"wildmenipedia/internal/contextutil"
	"wildmenipedia/internal/service"
)

// ExportHandler renders an answer as markdown for GET /api/export/markdown.
type ExportHandler struct {
	answers service.AnswerService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(answers service.AnswerService) *ExportHandler {
	return &ExportHandler{answers: answers}
}

// ServeHTTP accepts the same parameters as GET /api/ask.
//
// swagger:route GET /api/export/markdown exportMarkdown
//
// # Export an answer as markdown
//
// produces:
// - text/markdown
// responses:
//
//	'200':
//	  description: Markdown document
//	'400':
//	  description: Invalid question or parameters
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `inline; filename="answer.md"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(service.RenderMarkdown(strings.TrimSpace(req.Question), resp.Result))); err != nil {
		logger.ErrorContext(ctx, "failed to write markdown", "error", err)
	}
}

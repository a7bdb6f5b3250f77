package handlers

import (
	"encoding/json"
	"net/http"

	"wildmenipedia/internal/contextutil"
	"wildmenipedia/internal/fusion"
	"wildmenipedia/internal/service"
)

// HybridHandler answers POST /api/v1/hybrid.
type HybridHandler struct {
	answers service.AnswerService
}

// NewHybridHandler creates a new HybridHandler.
func NewHybridHandler(answers service.AnswerService) *HybridHandler {
	return &HybridHandler{answers: answers}
}

// HybridRequest is the JSON body of a hybrid question. Omitted style fields
// use the defaults; timeframe 0 means all time.
//
// swagger:model HybridRequest
type HybridRequest struct {
	Question  string            `json:"question"`
	TopK      int               `json:"top_k,omitempty"`
	Tone      string            `json:"tone,omitempty"`
	Length    int               `json:"length,omitempty"`
	Audience  string            `json:"audience,omitempty"`
	Timeframe *int              `json:"timeframe,omitempty"`
	WebURLs   []string          `json:"web_urls,omitempty"`
	WebDocs   []fusion.Document `json:"web_docs,omitempty"`
}

// ServeHTTP handles HTTP requests for hybrid questions.
//
// swagger:route POST /api/v1/hybrid hybridAnswer
//
// # Hybrid answer
//
// Same as GET /api/ask, with supplied documents in the body.
//
// responses:
//
//	'200':
//	  description: Hybrid result
//	  schema:
//	    "$ref": "#/definitions/HybridResponse"
//	'400':
//	  description: Invalid body or parameters
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *HybridHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var body HybridRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	style := fusion.DefaultStyle()
	if body.Tone != "" {
		style.Tone = body.Tone
	}
	if body.Length != 0 {
		style.Length = body.Length
	}
	if body.Audience != "" {
		style.Audience = body.Audience
	}
	if body.Timeframe != nil {
		style.Timeframe = *body.Timeframe
	}

	resp, err := h.answers.Answer(ctx, service.AnswerRequest{
		Question: body.Question,
		TopK:     body.TopK,
		Style:    style,
		WebDocs:  body.WebDocs,
		WebURLs:  body.WebURLs,
	})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to answer question")
		return
	}

	writeJSON(ctx, w, http.StatusOK, HybridResponse{HybridResult: resp.Result, Fetched: resp.Pages})
}

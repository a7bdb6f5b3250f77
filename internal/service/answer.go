package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_answer_service.go -package=mocks wildmenipedia/internal/service AnswerService,WebFetcher

import (
	"context"
	"log/slog"
	"strings"

	"wildmenipedia/internal/contextutil"
	"wildmenipedia/internal/fusion"
	"wildmenipedia/internal/scrape"
)

// WebFetcher downloads supporting pages.
type WebFetcher interface {
	FetchAll(ctx context.Context, urls []string) []scrape.Page
}

// AnswerRequest is a validated-on-use hybrid question.
type AnswerRequest struct {
	Question string
	TopK     int
	Style    fusion.Style
	// WebDocs are already fetched documents; they are numbered before fetched URLs.
	WebDocs []fusion.Document
	// WebURLs are fetched before answering.
	WebURLs []string
}

// AnswerResponse carries the hybrid result and the raw fetch outcomes.
type AnswerResponse struct {
	Result fusion.HybridResult
	Pages  []scrape.Page
}

// AnswerService answers questions with the fusion engine.
type AnswerService interface {
	// Answer validates req, fetches its URLs and runs the hybrid pipeline.
	Answer(ctx context.Context, req AnswerRequest) (AnswerResponse, error)
}

type answerService struct {
	engine  fusion.Engine
	fetcher WebFetcher
	logger  *slog.Logger
}

// NewAnswerService creates an AnswerService. fetcher may be nil, in which case
// web URLs are ignored.
func NewAnswerService(engine fusion.Engine, fetcher WebFetcher) AnswerService {
	return &answerService{
		engine:  engine,
		fetcher: fetcher,
		logger:  slog.Default(),
	}
}

func (s *answerService) getLogger(ctx context.Context) *slog.Logger {
	if ctxLogger := contextutil.LoggerFromContext(ctx); ctxLogger != slog.Default() {
		return ctxLogger
	}
	return s.logger
}

func (s *answerService) Answer(ctx context.Context, req AnswerRequest) (AnswerResponse, error) {
	logger := s.getLogger(ctx)

	if err := validate(&req); err != nil {
		logger.WarnContext(ctx, "invalid answer request", "error", err)
		return AnswerResponse{}, err
	}

	docs := append([]fusion.Document(nil), req.WebDocs...)
	var pages []scrape.Page
	if len(req.WebURLs) > 0 {
		if s.fetcher == nil {
			logger.WarnContext(ctx, "web urls ignored, no fetcher configured", "count", len(req.WebURLs))
		} else {
			pages = s.fetcher.FetchAll(ctx, req.WebURLs)
			docs = append(docs, scrape.Documents(pages)...)
		}
	}

	result := s.engine.HybridAnswer(ctx, fusion.Request{
		Question: req.Question,
		TopK:     req.TopK,
		WebDocs:  docs,
		Style:    req.Style,
	})

	logger.InfoContext(ctx, "question answered",
		"facts", len(result.Facts),
		"sources", len(result.Sources),
		"confidence", result.Confidence,
		"degraded", len(result.Degraded),
	)
	return AnswerResponse{Result: result, Pages: pages}, nil
}

// validate trims the question and fills unset style fields with defaults.
func validate(req *AnswerRequest) error {
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		return &ValidationError{Field: "question", Message: "cannot be empty"}
	}
	if req.TopK < 0 {
		return &ValidationError{Field: "top_k", Message: "must not be negative"}
	}
	if req.Style.Length < 0 {
		return &ValidationError{Field: "length", Message: "must not be negative"}
	}
	if req.Style.Timeframe < 0 {
		return &ValidationError{Field: "timeframe", Message: "must not be negative"}
	}

	defaults := fusion.DefaultStyle()
	if strings.TrimSpace(req.Style.Tone) == "" {
		req.Style.Tone = defaults.Tone
	}
	if strings.TrimSpace(req.Style.Audience) == "" {
		req.Style.Audience = defaults.Audience
	}
	if req.Style.Length == 0 {
		req.Style.Length = defaults.Length
	}
	return nil
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"wildmenipedia/internal/fusion"
	"wildmenipedia/internal/ingest"
	"wildmenipedia/internal/scrape"
	"wildmenipedia/internal/service"
	"wildmenipedia/internal/service/mocks"
	vsmocks "wildmenipedia/internal/vectorstore/mocks"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func sampleResult() fusion.HybridResult {
	return fusion.HybridResult{
		Answer:           "Summary for a general audience (last 90 days): synthesized 1 verified facts from 1 vector hits. [1]",
		Facts:            []fusion.Fact{{Subject: "E:Q7186", Predicate: "instance_of", Object: "E:Q5", Score: 1, Citations: []int{1}}},
		VectorHits:       []fusion.VectorHit{},
		SelectedEntities: []string{"E:Q7186"},
		Sources:          []fusion.Source{{URL: "https://example.org/curie", Title: "Curie"}},
		Confidence:       fusion.ConfidenceMedium,
	}
}

func TestAskHandler(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		query      string
		setup      func(m *mocks.MockAnswerService)
		wantStatus int
	}{
		{
			name:   "answers question with style and urls",
			method: http.MethodGet,
			query:  "q=marie+curie&top_k=3&tone=formal&length=120&audience=expert&timeframe=0&url=https://a.example&url=https://b.example",
			setup: func(m *mocks.MockAnswerService) {
				m.EXPECT().
					Answer(gomock.Any(), service.AnswerRequest{
						Question: "marie curie",
						TopK:     3,
						Style:    fusion.Style{Tone: "formal", Length: 120, Audience: "expert", Timeframe: 0},
						WebURLs:  []string{"https://a.example", "https://b.example"},
					}).
					Return(service.AnswerResponse{Result: sampleResult()}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "non-integer top_k",
			method:     http.MethodGet,
			query:      "q=curie&top_k=many",
			setup:      func(m *mocks.MockAnswerService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "validation error from service",
			method: http.MethodGet,
			query:  "q=",
			setup: func(m *mocks.MockAnswerService) {
				m.EXPECT().
					Answer(gomock.Any(), gomock.Any()).
					Return(service.AnswerResponse{}, &service.ValidationError{Field: "question", Message: "cannot be empty"})
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "unexpected error",
			method: http.MethodGet,
			query:  "q=curie",
			setup: func(m *mocks.MockAnswerService) {
				m.EXPECT().Answer(gomock.Any(), gomock.Any()).Return(service.AnswerResponse{}, errors.New("boom"))
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "wrong method",
			method:     http.MethodPost,
			query:      "q=curie",
			setup:      func(m *mocks.MockAnswerService) {},
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			answers := mocks.NewMockAnswerService(ctrl)
			tt.setup(answers)

			req := httptest.NewRequest(tt.method, "/api/ask?"+tt.query, nil)
			w := httptest.NewRecorder()
			NewAskHandler(answers).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if w.Header().Get("Content-Type") != "application/json" {
				t.Errorf("Content-Type = %q", w.Header().Get("Content-Type"))
			}
		})
	}
}

func TestAskHandlerResponseShape(t *testing.T) {
	ctrl := gomock.NewController(t)
	answers := mocks.NewMockAnswerService(ctrl)
	answers.EXPECT().
		Answer(gomock.Any(), gomock.Any()).
		Return(service.AnswerResponse{
			Result: sampleResult(),
			Pages:  []scrape.Page{{URL: "https://example.org/curie", OK: true, Engine: scrape.EngineHTTP}},
		}, nil)

	w := httptest.NewRecorder()
	NewAskHandler(answers).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ask?q=curie", nil))

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, key := range []string{"answer", "facts", "vector_hits", "selected_entities", "sources", "confidence", "fetched"} {
		if _, ok := body[key]; !ok {
			t.Errorf("response is missing %q: %s", key, w.Body.String())
		}
	}
	if _, ok := body["degraded"]; ok {
		t.Errorf("degraded should be omitted when empty")
	}
}

func TestHybridHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(m *mocks.MockAnswerService)
		wantStatus int
	}{
		{
			name: "defaults applied to omitted style fields",
			body: `{"question":"who was marie curie","web_docs":[{"url":"https://example.org","text":"Marie Curie was a physicist."}]}`,
			setup: func(m *mocks.MockAnswerService) {
				m.EXPECT().
					Answer(gomock.Any(), service.AnswerRequest{
						Question: "who was marie curie",
						Style:    fusion.DefaultStyle(),
						WebDocs:  []fusion.Document{{URL: "https://example.org", Text: "Marie Curie was a physicist."}},
					}).
					Return(service.AnswerResponse{Result: sampleResult()}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "explicit zero timeframe",
			body: `{"question":"curie","timeframe":0,"tone":"casual"}`,
			setup: func(m *mocks.MockAnswerService) {
				style := fusion.DefaultStyle()
				style.Timeframe = 0
				style.Tone = "casual"
				m.EXPECT().
					Answer(gomock.Any(), service.AnswerRequest{Question: "curie", Style: style}).
					Return(service.AnswerResponse{Result: sampleResult()}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid JSON",
			body:       `{"question":`,
			setup:      func(m *mocks.MockAnswerService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "negative top_k",
			body: `{"question":"curie","top_k":-1}`,
			setup: func(m *mocks.MockAnswerService) {
				m.EXPECT().
					Answer(gomock.Any(), gomock.Any()).
					Return(service.AnswerResponse{}, &service.ValidationError{Field: "top_k", Message: "must not be negative"})
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			answers := mocks.NewMockAnswerService(ctrl)
			tt.setup(answers)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/hybrid", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			NewHybridHandler(answers).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus == http.StatusBadRequest {
				var errResp ErrorResponse
				if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil || errResp.Error == "" {
					t.Errorf("expected JSON error body, got %s", w.Body.String())
				}
			}
		})
	}
}

func TestExportHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	answers := mocks.NewMockAnswerService(ctrl)
	answers.EXPECT().
		Answer(gomock.Any(), gomock.Any()).
		Return(service.AnswerResponse{Result: sampleResult()}, nil)

	w := httptest.NewRecorder()
	NewExportHandler(answers).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/export/markdown?q=+marie+curie+", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/markdown; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	body := w.Body.String()
	for _, want := range []string{"# marie curie\n", "## Supporting facts", "## Sources", "[Curie](https://example.org/curie)"} {
		if !strings.Contains(body, want) {
			t.Errorf("markdown missing %q:\n%s", want, body)
		}
	}
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	okPing := pingFunc(func(context.Context) error { return nil })
	badPing := pingFunc(func(context.Context) error { return errors.New("graph down") })

	tests := []struct {
		name        string
		exists      bool
		existsErr   error
		graph       GraphPinger
		wantStatus  int
		wantOverall string
	}{
		{name: "healthy", exists: true, graph: okPing, wantStatus: http.StatusOK, wantOverall: "healthy"},
		{name: "collection missing", exists: false, graph: okPing, wantStatus: http.StatusOK, wantOverall: "degraded"},
		{name: "graph down", exists: true, graph: badPing, wantStatus: http.StatusOK, wantOverall: "degraded"},
		{name: "both down", existsErr: errors.New("qdrant down"), graph: badPing, wantStatus: http.StatusServiceUnavailable, wantOverall: "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			vectors := vsmocks.NewMockVectorStore(ctrl)
			vectors.EXPECT().CollectionExists(gomock.Any(), "entities").Return(tt.exists, tt.existsErr)

			w := httptest.NewRecorder()
			NewHealthHandler(vectors, tt.graph, "entities").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var resp HealthResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if resp.Status != tt.wantOverall {
				t.Errorf("status field = %q, want %q", resp.Status, tt.wantOverall)
			}
			if len(resp.Checks) != 2 {
				t.Errorf("checks = %v", resp.Checks)
			}
		})
	}
}

type recordingIngester struct {
	source string
	term   string
	limit  int
	err    error
}

func (r *recordingIngester) Ingest(ctx context.Context, conn ingest.Connector, term string, limit int) (*ingest.Stats, error) {
	r.source, r.term, r.limit = conn.Name(), term, limit
	if r.err != nil {
		return nil, r.err
	}
	return &ingest.Stats{Source: conn.Name(), Term: term}, nil
}

func TestIngestHandler(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		query      string
		wantStatus int
		wantSource string
		wantLimit  int
	}{
		{name: "defaults to wikidata", method: http.MethodPost, query: "term=curie", wantStatus: http.StatusAccepted, wantSource: "wikidata", wantLimit: 5},
		{name: "dbpedia with limit", method: http.MethodPost, query: "source=DBpedia&term=curie&limit=2", wantStatus: http.StatusAccepted, wantSource: "dbpedia", wantLimit: 2},
		{name: "unknown source", method: http.MethodPost, query: "source=freebase&term=curie", wantStatus: http.StatusBadRequest},
		{name: "missing term", method: http.MethodPost, query: "source=wikidata", wantStatus: http.StatusBadRequest},
		{name: "bad limit", method: http.MethodPost, query: "term=curie&limit=0", wantStatus: http.StatusBadRequest},
		{name: "wrong method", method: http.MethodGet, query: "term=curie", wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ingester := &recordingIngester{err: nil}
			h := NewIngestHandler(ingester, ingest.NewWikidata(nil), ingest.NewDBpedia(nil))
			h.run = func(f func()) { f() }

			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(tt.method, "/api/v1/ingest?"+tt.query, nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus != http.StatusAccepted {
				if ingester.term != "" {
					t.Errorf("ingester should not run, got term %q", ingester.term)
				}
				return
			}
			if ingester.source != tt.wantSource || ingester.term != "curie" || ingester.limit != tt.wantLimit {
				t.Errorf("ingest called with %s/%s/%d", ingester.source, ingester.term, ingester.limit)
			}
		})
	}
}

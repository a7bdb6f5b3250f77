package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"wildmenipedia/internal/fusion"
	fusionmocks "wildmenipedia/internal/fusion/mocks"
	"wildmenipedia/internal/scrape"
	"wildmenipedia/internal/service"
	"wildmenipedia/internal/service/mocks"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAnswerService_Validation(t *testing.T) {
	tests := []struct {
		name  string
		req   service.AnswerRequest
		field string
	}{
		{name: "empty question", req: service.AnswerRequest{Question: ""}, field: "question"},
		{name: "blank question", req: service.AnswerRequest{Question: "   "}, field: "question"},
		{name: "negative top_k", req: service.AnswerRequest{Question: "q", TopK: -1}, field: "top_k"},
		{name: "negative length", req: service.AnswerRequest{Question: "q", Style: fusion.Style{Length: -5}}, field: "length"},
		{name: "negative timeframe", req: service.AnswerRequest{Question: "q", Style: fusion.Style{Timeframe: -1}}, field: "timeframe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			engine := fusionmocks.NewMockEngine(ctrl)
			svc := service.NewAnswerService(engine, nil)

			_, err := svc.Answer(context.Background(), tt.req)

			var validationErr *service.ValidationError
			if !errors.As(err, &validationErr) || validationErr.Field != tt.field {
				t.Fatalf("expected validation error on %s, got %v", tt.field, err)
			}
			if !errors.Is(err, service.ErrInvalidInput) {
				t.Error("validation error should match ErrInvalidInput")
			}
		})
	}
}

func TestAnswerService_FillsStyleDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := fusionmocks.NewMockEngine(ctrl)
	engine.EXPECT().
		HybridAnswer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req fusion.Request) fusion.HybridResult {
			if req.Question != "who is E:Q1?" {
				t.Errorf("question = %q", req.Question)
			}
			want := fusion.Style{Tone: "neutral", Length: 300, Audience: "general", Timeframe: 0}
			if req.Style != want {
				t.Errorf("style = %+v, want %+v", req.Style, want)
			}
			return fusion.HybridResult{Answer: "ok", Confidence: fusion.ConfidenceLow}
		})

	svc := service.NewAnswerService(engine, nil)
	resp, err := svc.Answer(context.Background(), service.AnswerRequest{Question: "  who is E:Q1?  "})
	if err != nil {
		t.Fatalf("Answer error = %v", err)
	}
	if resp.Result.Answer != "ok" {
		t.Errorf("answer = %q", resp.Result.Answer)
	}
}

func TestAnswerService_FetchesURLsAfterSuppliedDocs(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockWebFetcher(ctrl)
	fetcher.EXPECT().
		FetchAll(gomock.Any(), []string{"https://a.example", "https://b.example"}).
		Return([]scrape.Page{
			{URL: "https://a.example", OK: true, Title: "A", Text: "alpha", Engine: scrape.EngineHTTP},
			{URL: "https://b.example", OK: false, Error: "timeout", Engine: scrape.EngineHTTP},
		})

	engine := fusionmocks.NewMockEngine(ctrl)
	engine.EXPECT().
		HybridAnswer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req fusion.Request) fusion.HybridResult {
			if len(req.WebDocs) != 3 {
				t.Fatalf("expected 3 documents, got %d", len(req.WebDocs))
			}
			if req.WebDocs[0].URL != "https://given.example" || req.WebDocs[1].Text != "alpha" || req.WebDocs[2].Text != "" {
				t.Errorf("documents = %+v", req.WebDocs)
			}
			return fusion.HybridResult{}
		})

	svc := service.NewAnswerService(engine, fetcher)
	resp, err := svc.Answer(context.Background(), service.AnswerRequest{
		Question: "q",
		WebDocs:  []fusion.Document{{URL: "https://given.example", Text: "given"}},
		WebURLs:  []string{"https://a.example", "https://b.example"},
	})
	if err != nil {
		t.Fatalf("Answer error = %v", err)
	}
	if len(resp.Pages) != 2 || resp.Pages[1].Error != "timeout" {
		t.Errorf("pages = %+v", resp.Pages)
	}
}

func TestAnswerService_IgnoresURLsWithoutFetcher(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := fusionmocks.NewMockEngine(ctrl)
	engine.EXPECT().
		HybridAnswer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req fusion.Request) fusion.HybridResult {
			if len(req.WebDocs) != 0 {
				t.Errorf("expected no documents, got %+v", req.WebDocs)
			}
			return fusion.HybridResult{}
		})

	svc := service.NewAnswerService(engine, nil)
	if _, err := svc.Answer(context.Background(), service.AnswerRequest{Question: "q", WebURLs: []string{"https://a"}}); err != nil {
		t.Fatalf("Answer error = %v", err)
	}
}

func TestRenderMarkdown(t *testing.T) {
	result := fusion.HybridResult{
		Answer: "Summary with [1]",
		Facts: []fusion.Fact{
			{
				Subject:   "E:Q1",
				Predicate: "instance of",
				Object:    "E:Q5",
				Meta:      fusion.Meta{ObjectLabel: "human", Rank: fusion.RankPreferred, PredCode: "P31"},
				Score:     0.9,
				Citations: []int{1},
			},
		},
		Sources:    []fusion.Source{{URL: "https://example.com/a", Title: "Human", Engine: "http"}},
		Confidence: fusion.ConfidenceHigh,
	}

	md := service.RenderMarkdown("E:Q1", result)

	for _, want := range []string{
		"# E:Q1\n",
		"Summary with [1]",
		"_Confidence: high_",
		"## Supporting facts\n\n- E:Q1 instance of human (P31, preferred) score 0.9000 [1]\n",
		"## Sources\n\n1. [Human](https://example.com/a) via http\n",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestRenderMarkdownEmpty(t *testing.T) {
	md := service.RenderMarkdown("nothing", fusion.HybridResult{Confidence: fusion.ConfidenceLow})
	if !strings.Contains(md, "_No facts found._") || !strings.Contains(md, "_No sources._") {
		t.Errorf("markdown = %s", md)
	}
}

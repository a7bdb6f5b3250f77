package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"wildmenipedia/internal/contextutil"
)

// EngineHTTP is the engine name recorded for pages fetched with a plain HTTP GET.
const EngineHTTP = "http"

// Options configures a Fetcher. Zero values fall back to defaults.
type Options struct {
	UserAgent     string
	Timeout       time.Duration
	RPS           float64
	RespectRobots bool
	MaxSentences  int
	Workers       int
	MaxBytes      int64
}

// DefaultOptions returns the settings used by the API server.
func DefaultOptions() Options {
	return Options{
		UserAgent:     "wildmenipedia/0.1 (+https://github.com/wildmenipedia)",
		Timeout:       15 * time.Second,
		RPS:           1,
		RespectRobots: true,
		MaxSentences:  5,
		Workers:       4,
		MaxBytes:      2 << 20,
	}
}

// Fetcher downloads pages and extracts their readable text.
type Fetcher struct {
	opts    Options
	client  *http.Client
	robots  *robotsChecker
	limiter *hostLimiter
	logger  *slog.Logger
}

// NewFetcher creates a Fetcher.
func NewFetcher(opts Options) *Fetcher {
	defaults := DefaultOptions()
	if opts.UserAgent == "" {
		opts.UserAgent = defaults.UserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaults.Timeout
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = defaults.MaxBytes
	}
	if opts.MaxSentences < 0 {
		opts.MaxSentences = 0
	}

	client := &http.Client{
		Timeout: opts.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 3 {
				return fmt.Errorf("stopped after 3 redirects")
			}
			return nil
		},
	}

	return &Fetcher{
		opts:    opts,
		client:  client,
		robots:  newRobotsChecker(client, opts.UserAgent),
		limiter: newHostLimiter(opts.RPS, 1),
		logger:  slog.Default(),
	}
}

func (f *Fetcher) getLogger(ctx context.Context) *slog.Logger {
	if ctxLogger := contextutil.LoggerFromContext(ctx); ctxLogger != slog.Default() {
		return ctxLogger
	}
	return f.logger
}

// FetchAll fetches every non-blank URL and returns the pages in input order.
// Failed fetches are kept with OK=false.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) []Page {
	logger := f.getLogger(ctx)

	targets := make([]string, 0, len(urls))
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			targets = append(targets, u)
		}
	}
	pages := make([]Page, len(targets))
	if len(targets) == 0 {
		return pages
	}

	workers := min(f.opts.Workers, len(targets))
	if workers == 1 {
		for i, u := range targets {
			pages[i] = f.Fetch(ctx, u)
		}
		return pages
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		logger.WarnContext(ctx, "worker pool unavailable, fetching sequentially", "error", err)
		for i, u := range targets {
			pages[i] = f.Fetch(ctx, u)
		}
		return pages
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, u := range targets {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			pages[i] = f.Fetch(ctx, u)
		}
		if err := pool.Submit(task); err != nil {
			wg.Done()
			pages[i] = failedPage(u, 0, time.Now(), err)
		}
	}
	wg.Wait()

	ok := 0
	for _, p := range pages {
		if p.OK {
			ok++
		}
	}
	logger.InfoContext(ctx, "fetched pages", "requested", len(targets), "ok", ok)
	return pages
}

// Fetch downloads a single URL. It never returns an error; failures are
// described by the returned page.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) Page {
	logger := f.getLogger(ctx)
	start := time.Now()

	if f.opts.RespectRobots && !f.robots.allowed(ctx, rawURL) {
		logger.InfoContext(ctx, "fetch blocked by robots.txt", "url", rawURL)
		return failedPage(rawURL, 0, start, errors.New("disallowed by robots.txt"))
	}
	if err := f.limiter.wait(ctx, rawURL); err != nil {
		return failedPage(rawURL, 0, start, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return failedPage(rawURL, 0, start, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		logger.WarnContext(ctx, "fetch failed", "url", rawURL, "error", err)
		return failedPage(rawURL, 0, start, fmt.Errorf("fetch: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.opts.MaxBytes))
	if err != nil {
		return failedPage(rawURL, resp.StatusCode, start, fmt.Errorf("read body: %w", err))
	}

	page := Page{
		URL:        rawURL,
		OK:         resp.StatusCode >= 200 && resp.StatusCode < 400,
		StatusCode: resp.StatusCode,
		Engine:     EngineHTTP,
		HTMLLength: len(body),
	}
	if page.OK {
		page.Title, page.Text = extract(string(body))
		if page.Text != "" {
			page.Summary = summarize(page.Text, f.opts.MaxSentences)
		}
	} else {
		page.Error = fmt.Sprintf("unexpected status: %d", resp.StatusCode)
	}
	page.DurationMS = time.Since(start).Milliseconds()

	logger.DebugContext(ctx, "fetched page", "url", rawURL, "status", resp.StatusCode, "bytes", len(body))
	return page
}

func failedPage(rawURL string, status int, start time.Time, err error) Page {
	return Page{
		URL:        rawURL,
		OK:         false,
		StatusCode: status,
		Engine:     EngineHTTP,
		DurationMS: time.Since(start).Milliseconds(),
		Error:      err.Error(),
	}
}

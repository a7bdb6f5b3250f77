// Package ingest loads entities and relations from public SPARQL endpoints
// into the knowledge graph and the entity vector collection.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	WikidataEndpoint = "https://query.wikidata.org/sparql"
	DBpediaEndpoint  = "https://dbpedia.org/sparql"
)

// Binding is one variable value of a SPARQL JSON result row.
type Binding struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Lang  string `json:"xml:lang,omitempty"`
}

// Results is the application/sparql-results+json document.
type Results struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []map[string]Binding `json:"bindings"`
	} `json:"results"`
}

// SPARQLClient runs SELECT queries against one endpoint.
type SPARQLClient struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
}

// NewSPARQLClient creates a client for endpoint.
func NewSPARQLClient(endpoint, userAgent string, timeout time.Duration) *SPARQLClient {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &SPARQLClient{
		endpoint:   endpoint,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Endpoint returns the SPARQL endpoint URL.
func (c *SPARQLClient) Endpoint() string {
	return c.endpoint
}

// Query runs a SELECT query and decodes the JSON results.
func (c *SPARQLClient) Query(ctx context.Context, query string) (*Results, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid SPARQL endpoint: %w", err)
	}
	params := u.Query()
	params.Set("query", query)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/sparql-results+json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute SPARQL query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("SPARQL endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var results Results
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode SPARQL results: %w", err)
	}
	return &results, nil
}

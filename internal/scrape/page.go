// Package scrape fetches web pages in near real time and turns them into
// citation documents.
package scrape

import "wildmenipedia/internal/fusion"

// Page is the outcome of fetching one URL. Failed fetches are kept with
// OK=false so that source numbering stays aligned with the requested URLs.
type Page struct {
	URL        string `json:"url"`
	OK         bool   `json:"ok"`
	StatusCode int    `json:"status_code,omitempty"`
	Engine     string `json:"engine"`
	DurationMS int64  `json:"duration_ms"`
	Title      string `json:"title,omitempty"`
	HTMLLength int    `json:"html_length"`
	Text       string `json:"text,omitempty"`
	Summary    string `json:"summary,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Document converts the page into a citation document. Pages that failed
// keep their source slot with URL and engine only, so they are never matched.
func (p Page) Document() fusion.Document {
	if !p.OK {
		return fusion.Document{URL: p.URL, Engine: p.Engine}
	}
	return fusion.Document{URL: p.URL, Title: p.Title, Summary: p.Summary, Text: p.Text, Engine: p.Engine}
}

// Documents converts pages in order.
func Documents(pages []Page) []fusion.Document {
	docs := make([]fusion.Document, 0, len(pages))
	for _, p := range pages {
		docs = append(docs, p.Document())
	}
	return docs
}

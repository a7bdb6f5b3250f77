package scrape

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

var (
	whitespace    = regexp.MustCompile(`\s+`)
	sentenceBreak = regexp.MustCompile(`[.!?]\s+`)
	stripPolicy   = bluemonday.StrictPolicy()
)

// extract returns the page title and visible text of an HTML document.
func extract(page string) (title, text string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", cleanText(page)
	}

	title = cleanText(doc.Find("title").First().Text())

	doc.Find("script, style, noscript, template, svg").Remove()
	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	var parts []string
	root.Contents().Each(func(_ int, s *goquery.Selection) {
		collectText(s, &parts)
	})
	text = cleanText(strings.Join(parts, " "))
	return title, text
}

// collectText walks the tree so that adjacent block elements are separated by spaces.
func collectText(s *goquery.Selection, parts *[]string) {
	if goquery.NodeName(s) == "#text" {
		*parts = append(*parts, s.Text())
		return
	}
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		collectText(c, parts)
	})
}

// cleanText removes any markup left in text, unescapes entities and collapses whitespace.
func cleanText(s string) string {
	s = stripPolicy.Sanitize(s)
	s = html.UnescapeString(s)
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// summarize returns the first maxSentences non-empty sentences of text.
func summarize(text string, maxSentences int) string {
	if maxSentences <= 0 {
		return ""
	}

	var out []string
	start := 0
	for _, loc := range sentenceBreak.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[start : loc[0]+1]); s != "" {
			out = append(out, s)
			if len(out) >= maxSentences {
				return strings.Join(out, " ")
			}
		}
		start = loc[1]
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return strings.Join(out, " ")
}

package headline

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// NoTitle is returned when no headline can be recovered from the page.
const NoTitle = "No title"

// titleClassPattern matches class names commonly carried by on-page article
// headlines.
var titleClassPattern = regexp.MustCompile(`(?i)(headline|article[-_]?title|post[-_]?title|entry[-_]?title|page[-_]?title|news[-_]?title)`)

// Resolver recovers the literal on-page headline with a second fetch of the
// raw markup. It never fails a pipeline run: any error yields NoTitle.
type Resolver struct {
	client *http.Client
}

func NewResolver(timeout time.Duration) *Resolver {
	return &Resolver{
		client: &http.Client{Timeout: timeout},
	}
}

// Resolve fetches url and applies a three-tier lookup: a heading with a
// known article-title class, then any heading, then the Open Graph title.
// A single failed fetch immediately falls back to the sentinel, no retry.
func (r *Resolver) Resolve(ctx context.Context, url string) string {
	doc, err := r.fetchDocument(ctx, url)
	if err != nil {
		slog.Warn("headline: could not fetch page markup", "url", url, "error", err)

		return NoTitle
	}

	if title := findClassedHeading(doc); title != "" {
		return title
	}
	if title := findAnyHeading(doc); title != "" {
		return title
	}
	if title := findOpenGraphTitle(doc); title != "" {
		return title
	}

	slog.Debug("headline: no headline found in markup", "url", url)

	return NoTitle
}

func (r *Resolver) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return goquery.NewDocumentFromReader(resp.Body)
}

func findClassedHeading(doc *goquery.Document) string {
	var title string

	doc.Find("h1, h2, h3").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		if !titleClassPattern.MatchString(class) {
			return true
		}

		if text := normalizeWhitespace(s.Text()); text != "" {
			title = text
			return false
		}

		return true
	})

	return title
}

func findAnyHeading(doc *goquery.Document) string {
	var title string

	doc.Find("h1, h2, h3").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if text := normalizeWhitespace(s.Text()); text != "" {
			title = text
			return false
		}

		return true
	})

	return title
}

func findOpenGraphTitle(doc *goquery.Document) string {
	content, _ := doc.Find(`meta[property="og:title"]`).First().Attr("content")

	return normalizeWhitespace(content)
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

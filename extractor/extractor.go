package extractor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"telegram-article-digest-bot/config"
	"telegram-article-digest-bot/retry"
)

var (
	// ErrContentUnavailable means extraction exhausted its retries or the
	// page yielded no readable text. Empty text is a failure, never a value.
	ErrContentUnavailable = errors.New("content unavailable")
)

const truncationMarker = "..."

// Article is the readable part of a fetched page. Text is never empty on a
// successful extraction.
type Article struct {
	// Title is the candidate headline as reported by the page parser. The
	// headline resolver may override it downstream.
	Title string
	Text  string
	URL   string
}

// Extractor pulls the readable article out of a web page.
type Extractor interface {
	GetArticleFromURL(ctx context.Context, url string) (Article, error)
}

// New selects an extraction backend by its configured name.
func New(cfg config.ExtractorConfig, policy retry.Policy) (Extractor, error) {
	switch cfg.Backend {
	case "", "readability":
		return NewReadabilityExtractor(cfg, policy), nil
	case "goose":
		return NewGoOseExtractor(cfg, policy), nil
	default:
		return nil, fmt.Errorf("unknown extractor backend %q", cfg.Backend)
	}
}

// truncateText caps text at max characters, appending the marker when cut.
func truncateText(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}

	return string(runes[:max]) + truncationMarker
}

func normalizeText(text string) string {
	return strings.TrimSpace(text)
}

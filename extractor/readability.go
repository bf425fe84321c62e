package extractor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"telegram-article-digest-bot/config"
	"telegram-article-digest-bot/retry"

	"github.com/getsentry/sentry-go"
	"github.com/go-shiori/go-readability"
)

type ReadabilityExtractor struct {
	timeout time.Duration
	maxLen  int
	policy  retry.Policy
}

func NewReadabilityExtractor(cfg config.ExtractorConfig, policy retry.Policy) *ReadabilityExtractor {
	return &ReadabilityExtractor{
		timeout: cfg.Timeout,
		maxLen:  cfg.MaxContentLength,
		policy:  policy,
	}
}

func (e *ReadabilityExtractor) GetArticleFromURL(ctx context.Context, url string) (Article, error) {
	slog.Info("readability-extractor: requested extraction from URL", "url", url)

	var result Article

	err := e.policy.Do(ctx, "extract", func(_ context.Context) error {
		article, err := readability.FromURL(url, e.timeout)
		if err != nil {
			return err
		}

		text := normalizeText(article.TextContent)
		if text == "" {
			return errors.New("no readable text in page")
		}

		result = Article{
			Title: normalizeText(article.Title),
			Text:  truncateText(text, e.maxLen),
			URL:   url,
		}

		return nil
	})
	if err != nil {
		slog.Error("readability-extractor: failed extracting from URL", "url", url, "error", err)
		sentry.CaptureException(err)

		return Article{}, errors.Join(ErrContentUnavailable, err)
	}

	slog.Debug("readability-extractor: article extracted", "url", url, "title", result.Title, "text-length", len(result.Text))

	return result, nil
}

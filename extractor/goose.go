package extractor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"telegram-article-digest-bot/config"
	"telegram-article-digest-bot/retry"

	goose "github.com/advancedlogic/GoOse"
	"github.com/getsentry/sentry-go"
)

type GoOseExtractor struct {
	goose   *goose.Goose
	timeout time.Duration
	maxLen  int
	policy  retry.Policy
}

func NewGoOseExtractor(cfg config.ExtractorConfig, policy retry.Policy) *GoOseExtractor {
	gooseExtractor := goose.New()

	return &GoOseExtractor{
		goose:   &gooseExtractor,
		timeout: cfg.Timeout,
		maxLen:  cfg.MaxContentLength,
		policy:  policy,
	}
}

func (e *GoOseExtractor) GetArticleFromURL(ctx context.Context, url string) (Article, error) {
	slog.Info("goose-extractor: requested extraction from URL", "url", url)

	var result Article

	err := e.policy.Do(ctx, "extract", func(ctx context.Context) error {
		article, err := e.extractWithTimeout(ctx, url)
		if err != nil {
			return err
		}

		text := normalizeText(article.CleanedText)
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
		slog.Error("goose-extractor: failed extracting from URL", "url", url, "error", err)
		sentry.CaptureException(err)

		return Article{}, errors.Join(ErrContentUnavailable, err)
	}

	slog.Debug("goose-extractor: article extracted", "url", url, "title", result.Title, "text-length", len(result.Text))

	return result, nil
}

// extractWithTimeout guards the GoOse call with the configured deadline since
// the library itself takes no context.
func (e *GoOseExtractor) extractWithTimeout(ctx context.Context, url string) (*goose.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	type extraction struct {
		article *goose.Article
		err     error
	}

	resultChan := make(chan extraction, 1)

	go func() {
		article, err := e.goose.ExtractFromURL(url)
		resultChan <- extraction{article, err}
	}()

	select {
	case result := <-resultChan:
		return result.article, result.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

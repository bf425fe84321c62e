package pipeline

import (
	"context"
	"log/slog"

	"telegram-article-digest-bot/extractor"
	"telegram-article-digest-bot/headline"
	"telegram-article-digest-bot/journal"
	"telegram-article-digest-bot/llm"
)

// Extractor pulls readable article text out of a page.
type Extractor interface {
	GetArticleFromURL(ctx context.Context, url string) (extractor.Article, error)
}

// HeadlineResolver recovers the literal on-page headline. It never fails,
// returning a sentinel instead.
type HeadlineResolver interface {
	Resolve(ctx context.Context, url string) string
}

// Analyzer classifies and summarizes article text.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (llm.Analysis, error)
}

// Sink persists one finished record.
type Sink interface {
	Persist(ctx context.Context, rec journal.Record) error
}

// Result is the success payload handed back to the transport for user-facing
// formatting.
type Result struct {
	Subject string
	Title   string
	Summary string
	URL     string
}

// Pipeline runs one URL through extract, resolve, analyze and persist. It
// holds no mutable state, so concurrent runs are isolated.
type Pipeline struct {
	extractor Extractor
	resolver  HeadlineResolver
	analyzer  Analyzer
	sink      Sink
}

// New wires the pipeline stages. The resolver may be nil, in which case the
// model's title is used as-is.
func New(ext Extractor, resolver HeadlineResolver, analyzer Analyzer, sink Sink) *Pipeline {
	return &Pipeline{
		extractor: ext,
		resolver:  resolver,
		analyzer:  analyzer,
		sink:      sink,
	}
}

// Process runs the whole pipeline for one URL. Any stage failure aborts the
// run: nothing is persisted partially.
func (p *Pipeline) Process(ctx context.Context, url string) (Result, error) {
	slog.Info("pipeline: processing article", "url", url)

	article, err := p.extractor.GetArticleFromURL(ctx, url)
	if err != nil {
		return Result{}, err
	}

	resolvedTitle := ""
	if p.resolver != nil {
		resolvedTitle = p.resolver.Resolve(ctx, url)
	}

	analysis, err := p.analyzer.Analyze(ctx, article.Text)
	if err != nil {
		return Result{}, err
	}

	// The on-page headline wins over whatever the model produced.
	if resolvedTitle != "" && resolvedTitle != headline.NoTitle {
		analysis.Title = resolvedTitle
	}

	rec := journal.NewRecord(analysis, url)

	if err := p.sink.Persist(ctx, rec); err != nil {
		return Result{}, err
	}

	slog.Info("pipeline: article processing complete", "url", url, "subject", rec.Subject)

	return Result{
		Subject: rec.Subject,
		Title:   rec.Title,
		Summary: rec.Summary,
		URL:     url,
	}, nil
}

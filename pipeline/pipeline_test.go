package pipeline

import (
	"context"
	"errors"
	"testing"

	"telegram-article-digest-bot/extractor"
	"telegram-article-digest-bot/headline"
	"telegram-article-digest-bot/journal"
	"telegram-article-digest-bot/llm"
)

type stubExtractor struct {
	article extractor.Article
	err     error
}

func (s *stubExtractor) GetArticleFromURL(_ context.Context, _ string) (extractor.Article, error) {
	return s.article, s.err
}

type stubResolver struct {
	title string
}

func (s *stubResolver) Resolve(_ context.Context, _ string) string {
	return s.title
}

type stubAnalyzer struct {
	analysis llm.Analysis
	err      error
	gotText  string
}

func (s *stubAnalyzer) Analyze(_ context.Context, text string) (llm.Analysis, error) {
	s.gotText = text
	return s.analysis, s.err
}

type stubSink struct {
	records []journal.Record
	err     error
}

func (s *stubSink) Persist(_ context.Context, rec journal.Record) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, rec)
	return nil
}

func TestProcessHappyPath(t *testing.T) {
	sink := &stubSink{}
	analyzer := &stubAnalyzer{analysis: llm.Analysis{Subject: "tech", Title: "Model Title", Summary: "sum"}}
	p := New(
		&stubExtractor{article: extractor.Article{Title: "Candidate", Text: "body text"}},
		&stubResolver{title: "Scraped Headline"},
		analyzer,
		sink,
	)

	result, err := p.Process(context.Background(), "https://example.com/a")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if analyzer.gotText != "body text" {
		t.Fatalf("analyzer received wrong text: %q", analyzer.gotText)
	}
	if result.Title != "Scraped Headline" {
		t.Fatalf("resolver title must override model title, got %q", result.Title)
	}
	if len(sink.records) != 1 {
		t.Fatalf("expected one persisted record, got %d", len(sink.records))
	}
	if sink.records[0].URL != "https://example.com/a" {
		t.Fatalf("record carries wrong URL: %q", sink.records[0].URL)
	}
	if sink.records[0].Timestamp == "" {
		t.Fatal("record timestamp must be set")
	}
}

func TestProcessSentinelTitleDoesNotOverride(t *testing.T) {
	sink := &stubSink{}
	p := New(
		&stubExtractor{article: extractor.Article{Text: "body text"}},
		&stubResolver{title: headline.NoTitle},
		&stubAnalyzer{analysis: llm.Analysis{Subject: "tech", Title: "Model Title", Summary: "sum"}},
		sink,
	)

	result, err := p.Process(context.Background(), "https://example.com/a")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if result.Title != "Model Title" {
		t.Fatalf("sentinel resolver title must not override, got %q", result.Title)
	}
}

func TestProcessNilResolverUsesModelTitle(t *testing.T) {
	sink := &stubSink{}
	p := New(
		&stubExtractor{article: extractor.Article{Text: "body text"}},
		nil,
		&stubAnalyzer{analysis: llm.Analysis{Title: "Model Title"}},
		sink,
	)

	result, err := p.Process(context.Background(), "https://example.com/a")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if result.Title != "Model Title" {
		t.Fatalf("expected model title, got %q", result.Title)
	}
}

func TestProcessExtractionFailureShortCircuits(t *testing.T) {
	sink := &stubSink{}
	analyzer := &stubAnalyzer{}
	p := New(
		&stubExtractor{err: extractor.ErrContentUnavailable},
		&stubResolver{title: "Scraped Headline"},
		analyzer,
		sink,
	)

	_, err := p.Process(context.Background(), "https://example.com/a")
	if !errors.Is(err, extractor.ErrContentUnavailable) {
		t.Fatalf("expected ErrContentUnavailable, got %v", err)
	}
	if analyzer.gotText != "" {
		t.Fatal("analyzer must not run after failed extraction")
	}
	if len(sink.records) != 0 {
		t.Fatalf("nothing must be persisted after failed extraction, got %d records", len(sink.records))
	}
}

func TestProcessAnalysisFailureShortCircuits(t *testing.T) {
	sink := &stubSink{}
	p := New(
		&stubExtractor{article: extractor.Article{Text: "body text"}},
		nil,
		&stubAnalyzer{err: llm.ErrAnalysisUnavailable},
		sink,
	)

	_, err := p.Process(context.Background(), "https://example.com/a")
	if !errors.Is(err, llm.ErrAnalysisUnavailable) {
		t.Fatalf("expected ErrAnalysisUnavailable, got %v", err)
	}
	if len(sink.records) != 0 {
		t.Fatalf("nothing must be persisted after failed analysis, got %d records", len(sink.records))
	}
}

func TestProcessPersistFailureSurfaces(t *testing.T) {
	p := New(
		&stubExtractor{article: extractor.Article{Text: "body text"}},
		nil,
		&stubAnalyzer{analysis: llm.Analysis{Subject: "tech"}},
		&stubSink{err: journal.ErrPersistence},
	)

	_, err := p.Process(context.Background(), "https://example.com/a")
	if !errors.Is(err, journal.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}

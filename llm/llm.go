package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"telegram-article-digest-bot/config"
	"telegram-article-digest-bot/retry"

	"github.com/getsentry/sentry-go"
	"github.com/sashabaranov/go-openai"
)

var (
	// ErrEmptyContent means the caller passed nothing to analyze. Contract
	// violation, never retried.
	ErrEmptyContent = errors.New("empty content provided for analysis")
	// ErrAnalysisUnavailable means the LLM back-end could not be reached
	// within the retry budget.
	ErrAnalysisUnavailable = errors.New("analysis unavailable")
	ErrNoChoices           = errors.New("no choices in LLM response")
)

const (
	analysisTemperature = 0.3
	analysisMaxTokens   = 1000
)

const analysisPrompt = `Analyze the following content and reply in exactly this format:

Subject: [the main topic (e.g. politics, sports, fashion...)]
Title: [the article headline]
Summary: [a short summary of the content]

Content to analyze:
%s

Note: the reply must keep the literal 'Subject:', 'Title:' and 'Summary:' keywords at the start of each section.`

const analysisSystemPrompt = "You are an AI assistant specialized in content analysis. " +
	"Reply strictly in the requested format."

// Analyzer sends extracted article text to an OpenAI-compatible back-end and
// parses the labeled sections out of its reply.
type Analyzer struct {
	client         *openai.Client
	model          string
	requestTimeout time.Duration
	policy         retry.Policy
}

func NewAnalyzer(cfg config.LLMConfig, policy retry.Policy) *Analyzer {
	clientConfig := openai.DefaultConfig(cfg.APIToken)
	clientConfig.BaseURL = cfg.APIBaseURL
	clientConfig.HTTPClient = &http.Client{
		Transport: &attributionTransport{
			referer:  cfg.Referer,
			appTitle: cfg.AppTitle,
		},
	}

	return &Analyzer{
		client:         openai.NewClientWithConfig(clientConfig),
		model:          cfg.Model,
		requestTimeout: cfg.RequestTimeout,
		policy:         policy,
	}
}

// Analyze classifies and summarizes text. Fields the model failed to label
// come back as empty strings; an all-empty result is still returned so the
// caller can persist it with defaults.
func (a *Analyzer) Analyze(ctx context.Context, text string) (Analysis, error) {
	if text == "" {
		return Analysis{}, ErrEmptyContent
	}

	req := openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: analysisSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(analysisPrompt, text),
			},
		},
		Temperature: analysisTemperature,
		MaxTokens:   analysisMaxTokens,
	}

	var replyText string

	err := a.policy.Do(ctx, "analyze", func(ctx context.Context) error {
		slog.Info("llm: sending analysis request", "model", a.model)

		reqCtx, cancel := context.WithTimeout(ctx, a.requestTimeout)
		defer cancel()

		resp, err := a.client.CreateChatCompletion(reqCtx, req)
		if err != nil {
			return err
		}

		if len(resp.Choices) < 1 {
			return ErrNoChoices
		}

		replyText = resp.Choices[0].Message.Content

		return nil
	})
	if err != nil {
		slog.Error("llm: analysis request failed", "error", err)
		sentry.CaptureException(err)

		return Analysis{}, errors.Join(ErrAnalysisUnavailable, err)
	}

	slog.Debug("llm: raw analysis response received", "response", replyText)

	analysis := ParseAnalysis(replyText)

	if analysis.Subject == "" {
		slog.Warn("llm: 'subject' is empty in the analysis result")
	}
	if analysis.Summary == "" {
		slog.Warn("llm: 'summary' is empty in the analysis result")
	}

	return analysis, nil
}

// attributionTransport adds the attribution headers OpenRouter expects on
// top of the bearer token set by the client itself.
type attributionTransport struct {
	referer  string
	appTitle string
}

func (t *attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("HTTP-Referer", t.referer)
	clone.Header.Set("X-Title", t.appTitle)
	clone.Header.Set("User-Agent", "Mozilla/5.0")

	return http.DefaultTransport.RoundTrip(clone)
}

package bot

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"telegram-article-digest-bot/extractor"
	"telegram-article-digest-bot/journal"
	"telegram-article-digest-bot/llm"

	"github.com/getsentry/sentry-go"
	t "github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
)

var (
	allowedURLSchemes = []string{"http", "https"}
	urlShapePattern   = regexp.MustCompile(`(?i)^https?://`)
)

func (b *Bot) reply(originalMessage *t.Message, newMessage *t.SendMessageParams) *t.SendMessageParams {
	return newMessage.WithReplyParameters(&t.ReplyParameters{
		MessageID: originalMessage.MessageID,
	})
}

func (b *Bot) sendTyping(ctx context.Context, chatID t.ChatID) {
	slog.Debug("bot: Setting 'typing' chat action")

	err := b.api.SendChatAction(ctx, tu.ChatAction(chatID, "typing"))
	if err != nil {
		slog.Error("bot: Cannot set chat action", "error", err)
		sentry.CaptureException(err)
	}
}

func (b *Bot) trySendReplyError(ctx context.Context, message *t.Message) {
	_, _ = b.api.SendMessage(ctx, b.reply(message, tu.Message(
		tu.ID(message.Chat.ID),
		"Error occurred while trying to send reply.",
	)))
}

// isValidArticleURL is the transport-side pre-validation: the pipeline itself
// assumes a well-formed absolute HTTP(S) URL.
func isValidArticleURL(text string) bool {
	if !urlShapePattern.MatchString(text) {
		return false
	}

	u, err := url.ParseRequestURI(text)
	if err != nil {
		slog.Debug("bot: Provided text is not an URL", "text", text)

		return false
	}

	return slices.Contains(allowedURLSchemes, strings.ToLower(u.Scheme))
}

// failureMessage maps a pipeline error to the short human-readable cause the
// user sees. Detail stays in the logs.
func failureMessage(err error) string {
	switch {
	case errors.Is(err, extractor.ErrContentUnavailable):
		return "Could not extract content from this URL."
	case errors.Is(err, llm.ErrEmptyContent), errors.Is(err, llm.ErrAnalysisUnavailable):
		return "Could not analyze the content."
	case errors.Is(err, journal.ErrPersistence):
		return "Failed to save the result. Try again later."
	default:
		return "An error occurred while processing the article."
	}
}

func (b *Bot) countFailure(err error) {
	switch {
	case errors.Is(err, extractor.ErrContentUnavailable):
		b.stats.ExtractionFailure()
	case errors.Is(err, llm.ErrEmptyContent), errors.Is(err, llm.ErrAnalysisUnavailable):
		b.stats.AnalysisFailure()
	case errors.Is(err, journal.ErrPersistence):
		b.stats.PersistenceFailure()
	}
}

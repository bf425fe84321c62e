package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"telegram-article-digest-bot/pipeline"
	"telegram-article-digest-bot/stats"

	"github.com/getsentry/sentry-go"
	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"
)

var (
	ErrGetMe          = errors.New("cannot retrieve api user")
	ErrUpdatesChannel = errors.New("cannot get updates channel")
	ErrHandlerInit    = errors.New("cannot initialize handler")
)

type Bot struct {
	api      *telego.Bot
	pipeline *pipeline.Pipeline
	stats    *stats.Stats
	me       telego.User

	markdownV1Replacer *strings.Replacer
}

func NewBot(api *telego.Bot, pipe *pipeline.Pipeline) *Bot {
	return &Bot{
		api:      api,
		pipeline: pipe,
		stats:    stats.NewStats(),

		markdownV1Replacer: strings.NewReplacer(
			// https://core.telegram.org/bots/api#markdown-style
			"_", "\\_",
			"*", "\\*",
			"`", "\\`",
			"[", "\\[",
		),
	}
}

func (b *Bot) Run(ctx context.Context) error {
	botUser, err := b.api.GetMe(ctx)
	if err != nil {
		slog.Error("bot: Cannot retrieve api user", "error", err)
		sentry.CaptureException(err)

		return ErrGetMe
	}

	slog.Info("bot: Running api as", "id", botUser.ID, "username", botUser.Username, "name", botUser.FirstName, "is_bot", botUser.IsBot)

	b.me = *botUser

	updates, err := b.api.UpdatesViaLongPolling(ctx, nil)
	if err != nil {
		slog.Error("bot: Cannot get update channel", "error", err)
		sentry.CaptureException(err)

		return ErrUpdatesChannel
	}

	bh, err := th.NewBotHandler(b.api, updates)
	if err != nil {
		slog.Error("bot: Cannot initialize bot handler", "error", err)
		sentry.CaptureException(err)

		return ErrHandlerInit
	}

	defer func() { _ = bh.Stop() }()

	// Middlewares
	bh.Use(b.chatTypeStatsCounter)

	// Command handlers
	bh.Handle(b.startHandler, th.CommandEqual("start"))
	bh.Handle(b.helpHandler, th.CommandEqual("help"))
	bh.Handle(b.statsHandler, th.CommandEqual("stats"))
	bh.Handle(b.articleURLHandler, th.AnyMessageWithText())

	return bh.Start()
}

func (b *Bot) articleURLHandler(ctx *th.Context, update telego.Update) error {
	message := update.Message
	if message == nil {
		return nil
	}

	text := strings.TrimSpace(message.Text)
	chatID := tu.ID(message.Chat.ID)

	if !isValidArticleURL(text) {
		slog.Debug("bot: message text is not an article URL", "text", text)
		b.stats.InvalidURLMessage()

		_, _ = b.api.SendMessage(ctx, b.reply(message, tu.Message(
			chatID,
			"That is not a valid URL. Please send a link starting with http:// or https://.",
		)))

		return nil
	}

	slog.Info("bot: processing article URL", "chat", message.Chat.ID)

	b.sendTyping(ctx, chatID)

	_, _ = b.api.SendMessage(ctx, b.reply(message, tu.Message(
		chatID,
		"Processing the article...",
	)))

	result, err := b.pipeline.Process(ctx, text)
	if err != nil {
		slog.Error("bot: article processing failed", "url", text, "error", err)
		sentry.CaptureException(err)
		b.countFailure(err)

		_, _ = b.api.SendMessage(ctx, b.reply(message, tu.Message(
			chatID,
			failureMessage(err),
		)))

		return nil
	}

	b.stats.ArticleProcessed()

	reply := tu.Message(
		chatID,
		b.formatResult(result),
	).WithParseMode("Markdown")

	if _, err := b.api.SendMessage(ctx, b.reply(message, reply)); err != nil {
		slog.Error("bot: Can't send reply message", "error", err)
		sentry.CaptureException(err)

		b.trySendReplyError(ctx, message)
	}

	return nil
}

func (b *Bot) formatResult(result pipeline.Result) string {
	return "*Analysis result*\n" +
		"Subject: " + b.escapeMarkdownV1Symbols(result.Subject) + "\n" +
		"Title: " + b.escapeMarkdownV1Symbols(result.Title) + "\n" +
		"Summary: " + b.escapeMarkdownV1Symbols(result.Summary) + "\n\n" +
		"Article link: " + result.URL
}

func (b *Bot) startHandler(ctx *th.Context, update telego.Update) error {
	slog.Info("bot: /start")

	chatID := tu.ID(update.Message.Chat.ID)

	b.sendTyping(ctx, chatID)

	_, err := b.api.SendMessage(ctx, b.reply(update.Message, tu.Message(
		chatID,
		"Hi! Send me an article URL and I will summarize it for you.",
	)))
	if err != nil {
		slog.Error("bot: Cannot send a message", "error", err)
		sentry.CaptureException(err)

		b.trySendReplyError(ctx, update.Message)
	}

	return nil
}

func (b *Bot) helpHandler(ctx *th.Context, update telego.Update) error {
	slog.Info("bot: /help")

	chatID := tu.ID(update.Message.Chat.ID)

	b.sendTyping(ctx, chatID)

	_, err := b.api.SendMessage(ctx, b.reply(update.Message, tu.Message(
		chatID,
		"Instructions:\r\n"+
			"Send an article link starting with http:// or https:// and I will classify it, "+
			"summarize it and save the result to the shared spreadsheet.\r\n\r\n"+
			"/stats - Show usage counters\r\n"+
			"/help - Show this help",
	)))
	if err != nil {
		slog.Error("bot: Cannot send a message", "error", err)
		sentry.CaptureException(err)

		b.trySendReplyError(ctx, update.Message)
	}

	return nil
}

func (b *Bot) statsHandler(ctx *th.Context, update telego.Update) error {
	slog.Info("bot: /stats")

	chatID := tu.ID(update.Message.Chat.ID)

	b.sendTyping(ctx, chatID)

	_, err := b.api.SendMessage(ctx, b.reply(update.Message, tu.Message(
		chatID,
		"Current bot stats:\r\n"+
			"```json\r\n"+
			b.stats.String()+"\r\n"+
			"```",
	)).WithParseMode("Markdown"))
	if err != nil {
		slog.Error("bot: Cannot send a message", "error", err)
		sentry.CaptureException(err)

		b.trySendReplyError(ctx, update.Message)
	}

	return nil
}

func (b *Bot) escapeMarkdownV1Symbols(input string) string {
	return b.markdownV1Replacer.Replace(input)
}

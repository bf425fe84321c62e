package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"telegram-article-digest-bot/bot"
	"telegram-article-digest-bot/config"
	"telegram-article-digest-bot/extractor"
	"telegram-article-digest-bot/headline"
	"telegram-article-digest-bot/journal"
	"telegram-article-digest-bot/llm"
	"telegram-article-digest-bot/pipeline"
	"telegram-article-digest-bot/retry"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	tg "github.com/mymmrac/telego"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			slog.Error("Sentry initialization failed", "error", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	policy := retry.Policy{
		MaxAttempts: cfg.Pipeline.MaxAttempts,
		Delay:       cfg.Pipeline.RetryDelay,
	}

	ext, err := extractor.New(cfg.Extractor, policy)
	if err != nil {
		slog.Error("Cannot create extractor", "error", err)
		os.Exit(1)
	}

	pipe := pipeline.New(
		ext,
		headline.NewResolver(cfg.Extractor.Timeout),
		llm.NewAnalyzer(cfg.LLM, policy),
		journal.New(cfg.Sheets),
	)

	// With a URL argument the program runs the pipeline once and exits,
	// otherwise it serves as a Telegram bot.
	if len(os.Args) > 1 {
		runOnce(pipe, os.Args[1])

		return
	}

	telegramApi, err := tg.NewBot(cfg.Bot.Telegram.Token, tg.WithLogger(bot.NewLogger("telego: ")))
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	botService := bot.NewBot(telegramApi, pipe)

	if err := botService.Run(context.Background()); err != nil {
		slog.Error("Running bot finished with an error", "error", err)
		os.Exit(1)
	}
}

func runOnce(pipe *pipeline.Pipeline, url string) {
	result, err := pipe.Process(context.Background(), url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Analysis result:")
	fmt.Printf("Subject: %s\n", result.Subject)
	fmt.Printf("Title: %s\n", result.Title)
	fmt.Printf("Summary: %s\n", result.Summary)
	fmt.Printf("Article link: %s\n", result.URL)
}

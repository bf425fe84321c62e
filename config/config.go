package config

import (
	"os"
	"strconv"
	"time"
)

// Config represents the root configuration structure
type Config struct {
	LLM       LLMConfig
	Sheets    SheetsConfig
	Extractor ExtractorConfig
	Pipeline  PipelineConfig
	Sentry    SentryConfig
	Bot       BotConfig
}

// LLMConfig contains configuration for the analysis client
type LLMConfig struct {
	APIBaseURL     string
	APIToken       string
	Model          string
	Referer        string
	AppTitle       string
	RequestTimeout time.Duration
}

// SheetsConfig contains configuration for the spreadsheet and backup sinks
type SheetsConfig struct {
	CredentialsFile string
	SpreadsheetID   string
	WorksheetTitle  string
	BackupDir       string
}

// ExtractorConfig contains configuration for article extraction
type ExtractorConfig struct {
	Backend          string
	MaxContentLength int
	Timeout          time.Duration
}

// PipelineConfig contains the retry policy shared by the pipeline stages
type PipelineConfig struct {
	MaxAttempts int
	RetryDelay  time.Duration
}

// SentryConfig contains configuration for Sentry error tracking
type SentryConfig struct {
	DSN string
}

// BotConfig contains configuration for the Telegram transport
type BotConfig struct {
	Telegram TelegramConfig
}

// TelegramConfig contains configuration for the Telegram bot
type TelegramConfig struct {
	Token string
}

// Load creates a new Config instance populated from environment variables
func Load() *Config {
	return &Config{
		LLM: LLMConfig{
			APIBaseURL:     getEnvOrDefault("OPENROUTER_API_BASE_URL", "https://openrouter.ai/api/v1"),
			APIToken:       os.Getenv("OPENROUTER_API_KEY"),
			Model:          getEnvOrDefault("ANALYSIS_MODEL", "deepseek/deepseek-r1:free"),
			Referer:        getEnvOrDefault("OPENROUTER_REFERER", "https://github.com/phonghoang2k/adbot"),
			AppTitle:       getEnvOrDefault("OPENROUTER_APP_TITLE", "ADBOT"),
			RequestTimeout: getDurationSeconds("LLM_REQUEST_TIMEOUT", 30),
		},
		Sheets: SheetsConfig{
			CredentialsFile: getEnvOrDefault("GOOGLE_CREDENTIALS_FILE", "/etc/secrets/credentials.json"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"),
			WorksheetTitle:  getEnvOrDefault("GOOGLE_SHEETS_WORKSHEET", "Sheet1"),
			BackupDir:       getEnvOrDefault("BACKUP_DIR", "."),
		},
		Extractor: ExtractorConfig{
			Backend:          getEnvOrDefault("EXTRACTOR_BACKEND", "readability"),
			MaxContentLength: getIntOrDefault("MAX_CONTENT_LENGTH", 50000),
			Timeout:          getDurationSeconds("EXTRACTION_TIMEOUT", 30),
		},
		Pipeline: PipelineConfig{
			MaxAttempts: getIntOrDefault("MAX_RETRIES", 3),
			RetryDelay:  getDurationSeconds("RETRY_DELAY", 5),
		},
		Sentry: SentryConfig{
			DSN: os.Getenv("SENTRY_DSN"),
		},
		Bot: BotConfig{
			Telegram: TelegramConfig{
				Token: os.Getenv("TELEGRAM_BOT_TOKEN"),
			},
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if valueStr := os.Getenv(key); valueStr != "" {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getDurationSeconds(key string, defaultSeconds int) time.Duration {
	return time.Duration(getIntOrDefault(key, defaultSeconds)) * time.Second
}

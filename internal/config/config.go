package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

type Config struct {
	// Telegram (optional: without a token notifications only go to the log)
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	LunchChatID      int64  `env:"LUNCH_CHAT_ID"`
	MessageParseMode string `env:"MESSAGE_PARSE_MODE" envDefault:"HTML"`

	// Calendar and schedule
	Timezone         string `env:"TIMEZONE" envDefault:"Asia/Tokyo"`
	LunchCron        string `env:"LUNCH_CRON" envDefault:"0 10 * * 1-5"`
	CollectCron      string `env:"COLLECT_CRON" envDefault:"0 11 * * 1-5"`
	HolidaysFilePath string `env:"HOLIDAYS_FILE_PATH"`

	// Orders
	OrderCutoffHour    int  `env:"ORDER_CUTOFF_HOUR" envDefault:"11"`
	OrderIntakeEnabled bool `env:"ORDER_INTAKE_ENABLED" envDefault:"true"`

	// History
	HistoryCapacity int `env:"HISTORY_CAPACITY" envDefault:"100"`

	// HTTP API
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	// Candidate sources
	UseGoogleSheets           bool   `env:"USE_GOOGLE_SHEETS" envDefault:"false"`
	UseDefaultData            bool   `env:"USE_DEFAULT_DATA" envDefault:"true"`
	RestaurantRegion          string `env:"RESTAURANT_REGION" envDefault:"default"`
	RestaurantsFilePath       string `env:"RESTAURANTS_FILE_PATH"`
	GoogleSheetsAPIKey        string `env:"GOOGLE_SHEETS_API_KEY"`
	GoogleSheetID             string `env:"GOOGLE_SHEET_ID"`
	GoogleSheetsRange         string `env:"GOOGLE_SHEETS_RANGE" envDefault:"Sheet1!A:D"`
	GoogleCredentialsJSONPath string `env:"GOOGLE_CREDENTIALS_JSON_PATH"`

	// LLM restaurant search
	SearchEnabled    bool        `env:"SEARCH_ENABLED" envDefault:"false"`
	SearchQuery      string      `env:"SEARCH_QUERY" envDefault:"lunch"`
	SearchLocation   string      `env:"SEARCH_LOCATION"`
	LLMProvider      LLMProvider `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey     string      `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string      `env:"OPENAI_BASE_URL"`
	OpenAIModel      string      `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	YandexOAuthToken string      `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string      `env:"YANDEX_FOLDER_ID"`

	// OpenRouter (optional)
	OpenRouterReferrer string `env:"OPENROUTER_REFERRER"`
	OpenRouterTitle    string `env:"OPENROUTER_TITLE"`

	// Storage
	EventLogFilePath string `env:"EVENT_LOG_FILE_PATH" envDefault:"logs/lunch.jsonl"`
}

// Parse reads the configuration from the environment.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.OrderCutoffHour < 1 || cfg.OrderCutoffHour > 24 {
		return nil, fmt.Errorf("ORDER_CUTOFF_HOUR must be within 1..24, got %d", cfg.OrderCutoffHour)
	}
	if cfg.HistoryCapacity < 1 {
		return nil, fmt.Errorf("HISTORY_CAPACITY must be positive, got %d", cfg.HistoryCapacity)
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	return cfg, nil
}

func New() *Config {
	cfg, err := Parse()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}

// Location returns the business time zone. Parse has already validated it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.LunchChatID != 0
}

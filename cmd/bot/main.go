package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"lunch-bot/internal/calendar"
	"lunch-bot/internal/candidates"
	"lunch-bot/internal/config"
	"lunch-bot/internal/history"
	"lunch-bot/internal/httpapi"
	"lunch-bot/internal/llm"
	"lunch-bot/internal/lunch"
	"lunch-bot/internal/orders"
	"lunch-bot/internal/scheduler"
	"lunch-bot/internal/selection"
	"lunch-bot/internal/storage"
	"lunch-bot/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cal := calendar.New(cfg.Location(), loadHolidays(cfg.HolidaysFilePath)...)
	hist := history.NewStore(cal, history.WithCapacity(cfg.HistoryCapacity))
	engine := selection.NewEngine(hist)
	om := orders.NewManager(cal, orders.WithCutoffHour(cfg.OrderCutoffHour))

	provider := newProvider(ctx, cfg)

	opts := []lunch.Option{lunch.WithOrderIntake(cfg.OrderIntakeEnabled)}
	if cfg.EventLogFilePath != "" {
		fr, err := storage.NewFileRecorder(cfg.EventLogFilePath)
		if err != nil {
			log.Printf("failed to init event log: %v", err)
		} else {
			opts = append(opts, lunch.WithRecorder(fr))
		}
	}
	svc := lunch.NewService(provider, engine, hist, om, lunch.LogNotifier{}, opts...)

	if cfg.TelegramEnabled() {
		bot, err := telegram.New(cfg.TelegramBotToken, cfg.LunchChatID, cfg.MessageParseMode, om, hist)
		if err != nil {
			log.Fatalf("failed to create bot: %v", err)
		}
		bot.SetController(svc)
		svc.SetNotifier(bot)
		go bot.Start(ctx)
	} else {
		log.Printf("ℹ️ Telegram disabled (TELEGRAM_BOT_TOKEN or LUNCH_CHAT_ID not set): recommendations go to the log")
	}

	sched := scheduler.New(cal, cfg.LunchCron, cfg.CollectCron)
	sched.SetLunchFunction(func(ctx context.Context) error {
		_, err := svc.Recommend(ctx, time.Time{})
		return err
	})
	sched.SetCollectFunction(svc.ScheduledCollect)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}

	api := httpapi.New(svc, hist, om, provider, cal)
	go func() {
		if err := api.Start(cfg.HTTPAddr); err != nil {
			log.Fatalf("❌ HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("🛑 Shutting down...")

	cancel()
	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := api.Stop(shutdownCtx); err != nil {
		log.Printf("HTTP server forced to shutdown: %v", err)
	}
	log.Printf("👋 Stopped")
}

func loadHolidays(path string) []calendar.Holiday {
	if path == "" {
		return nil
	}
	extra, err := calendar.LoadHolidaysFile(path)
	if err != nil {
		log.Printf("failed to load holidays from %s: %v", path, err)
		return nil
	}
	log.Printf("📅 Loaded %d extra holidays from %s", len(extra), path)
	return extra
}

func newProvider(ctx context.Context, cfg *config.Config) *candidates.Provider {
	static := candidates.NewStaticSource(cfg.RestaurantRegion)
	if cfg.RestaurantsFilePath != "" {
		f, err := candidates.LoadRestaurantsFile(cfg.RestaurantsFilePath)
		if err != nil {
			log.Printf("failed to load restaurants from %s: %v", cfg.RestaurantsFilePath, err)
		} else {
			static.Merge(f)
		}
	}

	var opts []candidates.ProviderOption
	if cfg.GoogleSheetID != "" {
		sheets, err := candidates.NewSheetsSource(ctx, candidates.SheetsConfig{
			APIKey:              cfg.GoogleSheetsAPIKey,
			SpreadsheetID:       cfg.GoogleSheetID,
			Range:               cfg.GoogleSheetsRange,
			CredentialsJSONPath: cfg.GoogleCredentialsJSONPath,
		})
		if err != nil {
			log.Printf("failed to init Google Sheets source: %v", err)
		} else {
			opts = append(opts, candidates.WithSheets(sheets))
		}
	}
	if cfg.SearchEnabled {
		client, err := llm.NewFactory(cfg).CreateClient(string(cfg.LLMProvider))
		if err != nil {
			log.Printf("failed to init search LLM client: %v", err)
		} else {
			opts = append(opts, candidates.WithSearch(candidates.NewSearchSource(client, cfg.SearchQuery, cfg.SearchLocation)))
		}
	}

	return candidates.NewProvider(static, candidates.Settings{
		UseGoogleSheets: cfg.UseGoogleSheets,
		UseDefaultData:  cfg.UseDefaultData,
		Region:          cfg.RestaurantRegion,
	}, opts...)
}

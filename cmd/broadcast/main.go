package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/PanelPredictor/internal/config"
	"github.com/Alias1177/PanelPredictor/internal/database"
	"github.com/Alias1177/PanelPredictor/internal/model"
	"github.com/Alias1177/PanelPredictor/internal/parser"
	"github.com/Alias1177/PanelPredictor/internal/pipeline"
	"github.com/Alias1177/PanelPredictor/internal/platform/http"
	"github.com/Alias1177/PanelPredictor/internal/report"
	"github.com/Alias1177/PanelPredictor/internal/source"
)

// Telegram allows 30 messages per second for bots, so we use 50ms delay
const sendDelay = 50 * time.Millisecond

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	setupLogging(cfg.LogLevel)

	if cfg.TelegramBotToken == "" {
		log.Fatal().Msg("TELEGRAM_BOT_TOKEN not set in environment")
	}
	if len(cfg.TelegramChatIDs) == 0 {
		log.Fatal().Msg("TELEGRAM_CHAT_IDS not set in environment")
	}

	catalog, err := config.LoadCatalog(cfg.DatasetsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load dataset catalog")
	}
	datasets, err := catalog.Select(cfg.BroadcastDatasets)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid BROADCAST_DATASETS")
	}

	// Initialize Telegram bot
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Telegram bot")
	}

	var store *database.DB
	if cfg.DBEnabled {
		store, err = database.New(ctx, database.ConnectionParams{
			Host:     cfg.DB.Host,
			Port:     cfg.DB.Port,
			User:     cfg.DB.User,
			Password: cfg.DB.Password,
			DBName:   cfg.DB.Name,
			SSLMode:  cfg.DB.SSLMode,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize database")
		}
		defer store.Close()
	}

	loader := source.Router{
		Files: source.FileLoader{Dir: cfg.DataDir},
		Remote: source.NewRemoteLoader(http.NewClient(http.ClientOptions{
			Timeout:        cfg.RequestTimeout,
			RequestsPerSec: cfg.RequestsPerSec,
		})),
	}
	engine := pipeline.NewEngine()

	total := stats{}
	for _, ds := range datasets {
		if ctx.Err() != nil {
			break
		}

		r, err := analyze(ctx, engine, loader, ds, cfg)
		if err != nil {
			log.Error().Err(err).Str("dataset", ds.ID).Msg("Skipping dataset")
			continue
		}

		if store != nil {
			previous, err := store.LatestFinalPairs(ctx, ds.ID)
			if err != nil {
				log.Warn().Err(err).Str("dataset", ds.ID).Msg("Could not read previous snapshot")
			}
			if previous != nil && slices.Equal(previous, r.Final4Pairs) {
				log.Info().Str("dataset", ds.ID).Msg("Final pairs unchanged, not broadcasting")
				continue
			}
		}

		s := broadcast(ctx, bot, cfg.TelegramChatIDs, report.FormatText(r), sendDelay)
		total.sent += s.sent
		total.failed += s.failed

		if store != nil {
			if err := store.SaveSnapshot(ctx, r); err != nil {
				log.Error().Err(err).Str("dataset", ds.ID).Msg("Failed to save snapshot")
			}
		}
	}

	// Final statistics
	log.Info().
		Int("datasets", len(datasets)).
		Int("sent", total.sent).
		Int("failed", total.failed).
		Msg("Broadcast completed")

	fmt.Printf("\n🎯 Broadcast completed!\n")
	fmt.Printf("📊 Stats: %d sent, %d failed across %d datasets\n", total.sent, total.failed, len(datasets))
}

func analyze(ctx context.Context, engine *pipeline.Engine, loader source.Loader, ds config.Dataset, cfg *config.Config) (model.Report, error) {
	raw, err := loader.Load(ctx, ds)
	if err != nil {
		return model.Report{}, err
	}
	records, err := parser.Parse(raw)
	if err != nil {
		return model.Report{}, err
	}
	return engine.Report(ctx, report.Meta{DatasetID: ds.ID, DatasetName: ds.Name}, records, cfg.WindowSize, cfg.LookbackDays)
}

// sender is the part of the bot API used for delivery
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type stats struct {
	sent   int
	failed int
}

// broadcast sends text to every chat, spacing messages by delay
func broadcast(ctx context.Context, bot sender, chatIDs []int64, text string, delay time.Duration) stats {
	var s stats
	for i, chatID := range chatIDs {
		if ctx.Err() != nil {
			break
		}

		msg := tgbotapi.NewMessage(chatID, text)
		if _, err := bot.Send(msg); err != nil {
			log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
			s.failed++
		} else {
			log.Debug().Int64("chat_id", chatID).Int("n", i+1).Int("of", len(chatIDs)).Msg("Message sent")
			s.sent++
		}

		// Add delay between messages to avoid rate limiting
		if i < len(chatIDs)-1 {
			time.Sleep(delay)
		}
	}
	return s
}

// setupLogging configures the logger
func setupLogging(logLevel string) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(output)

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = log.Logger.Level(level)
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"moonbot/config"
	"moonbot/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Get().Error().Err(err).Msg("exit")
		os.Exit(1)
	}
}

// serve() runs the bot until ctx is cancelled or the process is interrupted
func serve(ctx context.Context, cfg config.Config) error {
	log := logger.Get()

	// Check that mandatory environment variables are set
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Create Bot instance
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return err
	}
	log.Info().Str("account", bot.Self.UserName).Msg("authorized")

	// Start phase notifier in background
	s, err := announcePhaseChanges(bot, cfg)
	if err != nil {
		return err
	}
	defer s.Stop()
	log.Info().Str("cron", cfg.CronExpression).Msg("background cron job activated")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start Bot and process user input
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)
	defer bot.StopReceivingUpdates()

	log.Info().Msg("bot started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("bot stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			handleChat(bot, update, cfg)
		}
	}
}

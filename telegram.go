package main

import (
	"fmt"
	"strings"
	"time"

	"moonbot/config"
	"moonbot/logger"
	"moonbot/lunar"

	"github.com/go-co-op/gocron"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

const (
	phaseChangedAlert = "The Moon entered a new phase"
	startMessage      = "Let's begin. Press a button or send /moon YYYY-MM-DD."
	badRequestMessage = "I don't understand..."
	badDateMessage    = "Bad date: "
	tooLongMessage    = "Interval is too long, at most %d days please"
	emptyInterval     = "Nothing to show: the end date is before the start date"
	usageInterval     = "Usage: /interval YYYY-MM-DD YYYY-MM-DD"
	todayButton       = "Moon today"
	forecastButton    = "Moon forecast"

	// maxIntervalDays keeps replies below Telegram's message size limit
	maxIntervalDays = 62
)

// sender is the part of tgbotapi.BotAPI used to post messages
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// mono() returns monospaced escaped Markdown
func mono(s string) string {
	return "`" + tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s) + "`"
}

func keyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(todayButton),
			tgbotapi.NewKeyboardButton(forecastButton),
		),
	)
}

// announcePhaseChanges() is cron job which posts to the chat when today's phase differs from the last announced one
func announcePhaseChanges(bot sender, cfg config.Config) (*gocron.Scheduler, error) {
	s := gocron.NewScheduler(time.UTC)
	var state State
	state.Init(cfg.StateFilePath)

	_, err := s.Cron(cfg.CronExpression).Do(func() {
		checkPhaseChange(bot, &state, cfg, time.Now())
	})
	if err != nil {
		return nil, fmt.Errorf("scheduling %q: %w", cfg.CronExpression, err)
	}

	s.StartAsync()
	return s, nil
}

// checkPhaseChange() sends an alert when the phase on now's date is not the one stored in state
func checkPhaseChange(bot sender, state *State, cfg config.Config, now time.Time) bool {
	log := logger.Get().With().Str("run", uuid.NewString()).Logger()
	log.Info().Msg("starting cron job")

	today := lunar.ComputeMoonPhase(lunar.CalendarDateInput(lunar.NewCalendarDate(now)))
	if last, ok := state.Last(); ok && last == today.Phase() {
		log.Info().Stringer("phase", today.Phase()).Msg("no phase change")
		return false
	}

	log.Info().Stringer("phase", today.Phase()).Msg("phase changed, sending message")
	msg := tgbotapi.NewMessage(cfg.TelegramChatID, mono(phaseChangedAlert+"\n\n"+phaseReport(today)))
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	if _, err := bot.Send(msg); err != nil {
		log.Error().Err(err).Msg("can't send message to Telegram")
		return false
	}
	state.Set(today.Phase())
	return true
}

// authChat() makes sure no one else except the configured chat can interact with this bot
func authChat(chatID int64, allowedChatID int64) bool {
	return chatID == allowedChatID
}

// handleChat() is telegram bot handler for chat interactions
func handleChat(bot sender, update tgbotapi.Update, cfg config.Config) {
	if update.Message == nil {
		return
	}
	log := logger.Get()
	if !authChat(update.Message.Chat.ID, cfg.TelegramChatID) {
		log.Warn().Int64("chat", update.Message.Chat.ID).Msg("unauthorized chat")
		return
	}

	user := ""
	if update.Message.From != nil {
		user = update.Message.From.UserName
	}
	log.Info().Str("user", user).Str("text", update.Message.Text).Msg("message received")

	msg := tgbotapi.NewMessage(update.Message.Chat.ID, mono(reply(update.Message, cfg, time.Now())))
	msg.ReplyMarkup = keyboard()
	msg.ParseMode = tgbotapi.ModeMarkdownV2

	log.Info().Msg("sending message to Telegram")
	if _, err := bot.Send(msg); err != nil {
		log.Error().Err(err).Msg("cannot send message")
	}
}

// reply() builds the plain text answer for an incoming message
func reply(m *tgbotapi.Message, cfg config.Config, now time.Time) string {
	switch {
	case m.IsCommand() && m.Command() == "start":
		return startMessage
	case m.IsCommand() && m.Command() == "moon":
		arg := strings.TrimSpace(m.CommandArguments())
		if arg == "" {
			arg = "today"
		}
		date, err := lunar.ParseCalendarDate(arg, now)
		if err != nil {
			return badDateMessage + err.Error()
		}
		return phaseReport(lunar.ComputeMoonPhase(lunar.CalendarDateInput(date)))
	case m.IsCommand() && m.Command() == "interval":
		return intervalReply(strings.Fields(m.CommandArguments()), cfg, now)
	case m.Text == todayButton:
		return phaseReport(lunar.ComputeMoonPhase(lunar.CalendarDateInput(lunar.NewCalendarDate(now))))
	case m.Text == forecastButton:
		return forecastNights(lunar.NewCalendarDate(now), cfg.ForecastDays, cfg.Latitude, cfg.Longitude).Print()
	default:
		return badRequestMessage
	}
}

func intervalReply(args []string, cfg config.Config, now time.Time) string {
	if len(args) != 2 {
		return usageInterval
	}
	from, err := lunar.ParseCalendarDate(args[0], now)
	if err != nil {
		return badDateMessage + err.Error()
	}
	to, err := lunar.ParseCalendarDate(args[1], now)
	if err != nil {
		return badDateMessage + err.Error()
	}
	days := lunar.ToJulianDay(to) - lunar.ToJulianDay(from) + 1
	if days > maxIntervalDays {
		return fmt.Sprintf(tooLongMessage, maxIntervalDays)
	}
	nights := intervalNights(from, to, cfg.Latitude, cfg.Longitude)
	if len(nights) == 0 {
		return emptyInterval
	}
	return nights.Print()
}

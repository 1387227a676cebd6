package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// AppConfig is a global variable for configuration
var AppConfig Config

// Config holds all environment variables
type Config struct {
	TelegramBotToken string  `validate:"required"`
	TelegramChatID   int64   `validate:"required"`
	Latitude         float64 `validate:"gte=-90,lte=90"`
	Longitude        float64 `validate:"gte=-180,lte=180"`
	CronExpression   string  `validate:"required"`
	StateFilePath    string  `validate:"required"`
	ForecastDays     int     `validate:"gte=1,lte=62"`
	LogLevel         string
	LogFormat        string `validate:"oneof=console json"`
}

// LoadConfig initializes AppConfig from environment variables
func LoadConfig() {
	AppConfig = Config{
		TelegramBotToken: getEnv("TG_BOT_TOKEN", ""),
		TelegramChatID:   toInt64(getEnv("CHAT_ID", "")),
		Latitude:         strToFloat(getEnv("LAT", "0")),
		Longitude:        strToFloat(getEnv("LON", "0")),
		CronExpression:   getEnv("CRON_EXPRESSION", "0 18 * * *"),
		StateFilePath:    getEnv("STATE_FILE_PATH", "state.txt"),
		ForecastDays:     toInt(getEnv("FORECAST_DAYS", "7")),
		LogLevel:         strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", "info"))),
		LogFormat:        strings.ToLower(strings.TrimSpace(getEnv("LOG_FORMAT", "console"))),
	}
}

// Validate checks the settings the bot cannot run without
func (c Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			fe := verrs[0]
			return fmt.Errorf("config: %s failed %q check (value %v)", envName(fe.Field()), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// envName maps a Config field back to the variable it is read from
func envName(field string) string {
	switch field {
	case "TelegramBotToken":
		return "TG_BOT_TOKEN"
	case "TelegramChatID":
		return "CHAT_ID"
	case "Latitude":
		return "LAT"
	case "Longitude":
		return "LON"
	case "CronExpression":
		return "CRON_EXPRESSION"
	case "StateFilePath":
		return "STATE_FILE_PATH"
	case "ForecastDays":
		return "FORECAST_DAYS"
	case "LogFormat":
		return "LOG_FORMAT"
	}
	return field
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// toInt converts a string to int and returns the value
func toInt(s string) int {
	if out, err := strconv.Atoi(s); err == nil {
		return out
	}
	return 0
}

// toInt64 converts a string to int64 and returns the value
func toInt64(s string) int64 {
	if out, err := strconv.ParseInt(s, 10, 64); err == nil {
		return out
	}
	return 0
}

// strToFloat converts a string to float64 and returns the value
func strToFloat(input string) float64 {
	floatValue, _ := strconv.ParseFloat(input, 64)
	return floatValue
}

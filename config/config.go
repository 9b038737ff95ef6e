package config

import (
	"os"
	"strconv"
)

type ConfigStruct struct {
	Telegram TelegramConfig
	Catalog  CatalogConfig
	Options  Options
}

type TelegramConfig struct {
	BotToken string
	AdminID  int64
}

type CatalogConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

type Options struct {
	Port               string
	BatchDownloadLimit int
	SentryDSN          string
	LogLevel           string
}

func (t *TelegramConfig) IsAdmin(userID int64) bool {
	return t.AdminID != 0 && t.AdminID == userID
}

var Config *ConfigStruct

func NewConfig() {
	config := &ConfigStruct{
		Telegram: TelegramConfig{
			BotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
			AdminID:  getAdminID(),
		},
		Catalog: CatalogConfig{
			BaseURL:        getCatalogBaseURL(),
			TimeoutSeconds: getCatalogTimeout(),
		},
		Options: Options{
			Port:               os.Getenv("PORT"),
			BatchDownloadLimit: getBatchDownloadLimit(),
			SentryDSN:          os.Getenv("SENTRY_DSN"),
			LogLevel:           os.Getenv("LOG_LEVEL"),
		},
	}

	Config = config
}

func getAdminID() int64 {
	idStr := os.Getenv("ADMIN_ID")
	if idStr == "" {
		return 0
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

func getCatalogBaseURL() string {
	url := os.Getenv("CATALOG_API_URL")
	if url == "" {
		return "https://saavn.dev"
	}
	return url
}

func getCatalogTimeout() int {
	timeoutStr := os.Getenv("CATALOG_TIMEOUT_SECONDS")
	if timeoutStr == "" {
		return 15
	}
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil || timeout <= 0 {
		return 15
	}
	if timeout > 120 {
		return 120
	}
	return timeout
}

func getBatchDownloadLimit() int {
	limitStr := os.Getenv("BATCH_DOWNLOAD_LIMIT")
	if limitStr == "" {
		return 50
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return 50
	}
	if limit > 100 {
		return 100 // Telegram flood limits make larger batches impractical
	}
	return limit
}

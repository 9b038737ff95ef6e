package main

import (
	"net/http"
	"time"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"grooviabot/catalog"
	appConfig "grooviabot/config"
	"grooviabot/controller"
	"grooviabot/handlers"
	"grooviabot/pages"
	"grooviabot/sentry"
	"grooviabot/session"
	"grooviabot/stats"
	"grooviabot/telegram"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warnf("Error loading .env file: %v", err)
	}
	appConfig.NewConfig()

	log.SetFormatter(&nested.Formatter{
		HideKeys:    true,
		FieldsOrder: []string{"event_id", "user_id"},
	})
	if level, err := log.ParseLevel(appConfig.Config.Options.LogLevel); err == nil {
		log.SetLevel(level)
	}

	sentry.Init(appConfig.Config.Options.SentryDSN)

	if appConfig.Config.Telegram.BotToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is not set")
	}

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	st := stats.New()
	sessions := session.NewStore()

	client := catalog.New(
		appConfig.Config.Catalog.BaseURL,
		time.Duration(appConfig.Config.Catalog.TimeoutSeconds)*time.Second,
		st,
	)

	tg, err := telegram.NewClient(appConfig.Config.Telegram.BotToken)
	if err != nil {
		return err
	}
	defer tg.StopPolling()

	ctrl := controller.New(client, sessions, st, tg, appConfig.Config.Options.BatchDownloadLimit)
	manager := handlers.NewManager(ctrl, sessions, st, tg, &appConfig.Config.Telegram)

	go serveHTTP()

	log.Info("Listening for updates")
	for update := range tg.Updates() {
		go manager.HandleUpdate(update)
	}
	return nil
}

func serveHTTP() {
	router := gin.Default()
	router.Use(sentry.GetSentryGin())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	router.GET("/privacy", func(c *gin.Context) {
		c.Header("Content-Type", "text/html")
		c.String(http.StatusOK, pages.PrivacyPolicy)
	})

	router.GET("/terms", func(c *gin.Context) {
		c.Header("Content-Type", "text/html")
		c.String(http.StatusOK, pages.TermsOfService)
	})

	port := appConfig.Config.Options.Port
	if port == "" {
		port = "8080"
	}
	log.Infof("Starting server on :%s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Errorf("http server stopped: %v", err)
	}
}

package main

import (
	"flag"
	"log/slog"
	"os"

	"ojt-tracker/internal/config"
	"ojt-tracker/internal/handler"
	"ojt-tracker/internal/logger"
	"ojt-tracker/internal/model"
	"ojt-tracker/internal/service"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg := config.Load(*configFile)
	logger.Init(logger.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		Console:    cfg.Log.Console,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})

	db, err := cfg.OpenGormDB()
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Profile{}, &model.DailyLog{}, &model.WeeklyJournal{}); err != nil {
		slog.Error("migrate failed", "err", err)
		os.Exit(1)
	}

	authSvc := service.NewAuthService(db)
	dailySvc := service.NewDailyService(db)
	weekSvc := service.NewWeekService(db)
	journalSvc := service.NewJournalService(db)
	summarySvc := service.NewSummaryService(
		service.NewGeminiProvider(cfg.AI.Gemini.BaseURL, cfg.AI.Gemini.APIKey, cfg.AI.Gemini.Model),
		service.NewOpenAIProvider(cfg.AI.OpenAI.BaseURL, cfg.AI.OpenAI.APIKey, cfg.AI.OpenAI.Model),
	)
	diagSvc := service.NewDiagService(db)

	files, err := handler.NewFileHandler(cfg.Storage.DataDir)
	if err != nil {
		slog.Error("data dir unusable", "dir", cfg.Storage.DataDir, "err", err)
		os.Exit(1)
	}

	secret := []byte(cfg.Auth.JWTSecret)
	r := handler.NewRouter(handler.Handlers{
		Auth:    handler.NewAuthHandler(authSvc, secret),
		Logs:    handler.NewLogHandler(dailySvc),
		Week:    handler.NewWeekHandler(weekSvc, summarySvc, journalSvc),
		Journal: handler.NewJournalHandler(journalSvc),
		Files:   files,
		Diag:    handler.NewDiagHandler(diagSvc),
	}, secret)

	slog.Info("server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("server failed", "err", err)
	}
}

package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/wecurate/wecurate/curate/service"
	"github.com/wecurate/wecurate/internal/ai"
	"github.com/wecurate/wecurate/internal/config"
	"github.com/wecurate/wecurate/internal/render"
	"github.com/wecurate/wecurate/internal/storage"
)

// Setup initializes the application and returns the App instance.
func Setup() *App {
	conf := config.SetupConfig()

	db, err := storage.Open(conf.DatabaseFile)
	if err != nil {
		slog.Error("failed to open database", "file", conf.DatabaseFile, "error", err)
		os.Exit(1)
	}

	if err := storage.RunMigrations(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	conf.CookieSecret, err = storage.GetOrCreateCookieSecret(db)
	if err != nil {
		slog.Error("failed to load cookie secret", "error", err)
		os.Exit(1)
	}

	database, err := storage.Init(db, conf.CookieExpiry, conf.CookieSecret)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}

	// Load the persisted library (or the seed) into memory.
	store := service.NewStore(database)

	sessionService, err := service.NewSessionService(database, conf.AdminSecret)
	if err != nil {
		slog.Error("failed to create session service", "error", err)
		os.Exit(1)
	}

	var oracle service.Oracle
	if conf.GeminiAPIKey != "" {
		gemini, err := ai.New(context.Background(), conf.GeminiAPIKey, conf.GeminiModel)
		if err != nil {
			slog.Error("failed to create gemini client", "error", err)
			os.Exit(1)
		}
		oracle = gemini
		slog.Info("oracle configured", "model", conf.GeminiModel)
	} else {
		slog.Warn("GEMINI_API_KEY not set, classification and chat are disabled")
	}

	return &App{
		Articles:   service.NewArticleService(store),
		Categories: service.NewCategoryService(store),
		Sessions:   sessionService,
		Assistant:  service.NewAssistantService(store, oracle),
		Renderer:   render.NewHTMLRenderer(),
		Fetcher:    &http.Client{Timeout: 30 * time.Second},
		Config:     conf,
	}
}

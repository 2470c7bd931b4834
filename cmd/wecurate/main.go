package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/wecurate/wecurate/internal/server"
)

func main() {
	app := server.Setup()

	router := mux.NewRouter().StrictSlash(true)

	router.Use(app.SessionMiddleware)

	router.HandleFunc("/healthz", app.HealthHandler).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/articles", app.ListArticlesHandler).Methods("GET")
	api.HandleFunc("/articles", app.AddArticleHandler).Methods("POST")
	api.HandleFunc("/articles/classify", app.ClassifyHandler).Methods("POST")
	api.HandleFunc("/articles/preview", app.PreviewHandler).Methods("GET")
	api.HandleFunc("/articles/{id}", app.DeleteArticleHandler).Methods("DELETE")

	api.HandleFunc("/categories", app.ListCategoriesHandler).Methods("GET")
	api.HandleFunc("/categories", app.AddCategoryHandler).Methods("POST")
	api.HandleFunc("/categories/{label}", app.DeleteCategoryHandler).Methods("DELETE")

	api.HandleFunc("/auth/login", app.LoginHandler).Methods("POST")
	api.HandleFunc("/auth/logout", app.LogoutHandler).Methods("POST")
	api.HandleFunc("/auth/session", app.SessionHandler).Methods("GET")

	api.HandleFunc("/chat", app.ChatHandler).Methods("POST")

	handler := server.SlogLoggingMiddleware(router)

	srv := &http.Server{
		Addr:    app.Config.Host,
		Handler: handler,
	}

	// Start server in goroutine
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("server starting", "url", "http://"+app.Config.Host)

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("server stopped")
}

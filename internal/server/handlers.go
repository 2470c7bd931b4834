package server

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/wecurate/wecurate/curate"
	"github.com/wecurate/wecurate/internal/fetch"
)

// oracleContext bounds oracle calls with the configured timeout, if any.
func (a *App) oracleContext(req *http.Request) (context.Context, context.CancelFunc) {
	timeout := time.Duration(a.Config.OracleTimeout) * time.Second
	if timeout <= 0 {
		return req.Context(), func() {}
	}
	return context.WithTimeout(req.Context(), timeout)
}

// ListArticlesHandler returns the filtered, newest-first article view.
// Query parameters: category (default "all") and q (free text).
func (a *App) ListArticlesHandler(rw http.ResponseWriter, req *http.Request) {
	category := req.URL.Query().Get("category")
	if category == "" {
		category = curate.AllCategories
	}
	query := req.URL.Query().Get("q")

	articles := a.Articles.ListArticles(category, query)
	writeJSON(rw, http.StatusOK, map[string]any{"articles": articles})
}

// AddArticleHandler creates an article from user- or oracle-supplied fields.
func (a *App) AddArticleHandler(rw http.ResponseWriter, req *http.Request) {
	if !a.RequireAdmin(rw, req) {
		return
	}

	var draft curate.ArticleDraft
	if err := decodeJSON(req, &draft); err != nil {
		writeJSON(rw, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	article, err := a.Articles.AddArticle(draft)
	if err != nil {
		a.ErrorHandler(rw, req, err)
		return
	}

	slog.Info("article added", "id", article.ID, "title", article.Title, "category", article.Category)
	writeJSON(rw, http.StatusCreated, article)
}

// DeleteArticleHandler removes an article. Idempotent: unknown ids succeed.
func (a *App) DeleteArticleHandler(rw http.ResponseWriter, req *http.Request) {
	if !a.RequireAdmin(rw, req) {
		return
	}

	id := mux.Vars(req)["id"]
	if err := a.Articles.DeleteArticle(id); err != nil {
		a.ErrorHandler(rw, req, err)
		return
	}

	slog.Info("article deleted", "id", id)
	rw.WriteHeader(http.StatusNoContent)
}

// ClassifyHandler asks the oracle for category, tags, and summary for the
// given article text. Oracle failures surface as errors; there is no
// fabricated fallback.
func (a *App) ClassifyHandler(rw http.ResponseWriter, req *http.Request) {
	if !a.RequireAdmin(rw, req) {
		return
	}

	var body struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
	}
	if err := decodeJSON(req, &body); err != nil {
		writeJSON(rw, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(body.Title) == "" {
		a.ErrorHandler(rw, req, curate.ErrTitleRequired)
		return
	}

	ctx, cancel := a.oracleContext(req)
	defer cancel()

	classification, err := a.Assistant.Classify(ctx, body.Title, body.Snippet)
	if err != nil {
		a.ErrorHandler(rw, req, err)
		return
	}

	writeJSON(rw, http.StatusOK, classification)
}

// PreviewHandler scrapes title and snippet from a page so the add-article
// flow can hand them to the classifier.
func (a *App) PreviewHandler(rw http.ResponseWriter, req *http.Request) {
	if !a.RequireAdmin(rw, req) {
		return
	}

	url := req.URL.Query().Get("url")
	if url == "" {
		writeJSON(rw, http.StatusBadRequest, map[string]string{"error": "url parameter is required"})
		return
	}

	meta, err := fetch.Page(req.Context(), a.Fetcher, url)
	if err != nil {
		slog.Warn("page preview failed", "url", url, "error", err)
		writeJSON(rw, http.StatusBadGateway, map[string]string{"error": "could not fetch the page"})
		return
	}

	writeJSON(rw, http.StatusOK, meta)
}

// ListCategoriesHandler returns the ordered registry labels.
func (a *App) ListCategoriesHandler(rw http.ResponseWriter, req *http.Request) {
	writeJSON(rw, http.StatusOK, map[string]any{"categories": a.Categories.ListCategories()})
}

// AddCategoryHandler appends a registry label. Duplicates and blanks are
// silently ignored, mirroring the store semantics.
func (a *App) AddCategoryHandler(rw http.ResponseWriter, req *http.Request) {
	if !a.RequireAdmin(rw, req) {
		return
	}

	var body struct {
		Label string `json:"label"`
	}
	if err := decodeJSON(req, &body); err != nil {
		writeJSON(rw, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	added, err := a.Categories.AddCategory(body.Label)
	if err != nil {
		a.ErrorHandler(rw, req, err)
		return
	}

	if added {
		slog.Info("category added", "label", strings.TrimSpace(body.Label))
	}
	writeJSON(rw, http.StatusOK, map[string]any{
		"added":      added,
		"categories": a.Categories.ListCategories(),
	})
}

// DeleteCategoryHandler removes a registry label and reassigns its articles
// to the reserved fallback.
func (a *App) DeleteCategoryHandler(rw http.ResponseWriter, req *http.Request) {
	if !a.RequireAdmin(rw, req) {
		return
	}

	label := mux.Vars(req)["label"]
	reassigned, err := a.Categories.RemoveCategory(label)
	if err != nil {
		a.ErrorHandler(rw, req, err)
		return
	}

	slog.Info("category removed", "label", label, "reassigned", reassigned)
	writeJSON(rw, http.StatusOK, map[string]any{
		"reassigned": reassigned,
		"categories": a.Categories.ListCategories(),
	})
}

// ChatHandler sends one message to the assistant. The reply is plain text
// plus a sanitized HTML rendering; failures are fixed phrases, never raw
// errors.
func (a *App) ChatHandler(rw http.ResponseWriter, req *http.Request) {
	var body struct {
		Message string `json:"message"`
	}
	if err := decodeJSON(req, &body); err != nil {
		writeJSON(rw, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(body.Message) == "" {
		writeJSON(rw, http.StatusBadRequest, map[string]string{"error": "message is required"})
		return
	}

	ctx, cancel := a.oracleContext(req)
	defer cancel()

	reply := a.Assistant.SendMessage(ctx, body.Message)

	html, err := a.Renderer.Render(reply)
	if err != nil {
		slog.Warn("failed to render assistant reply", "error", err)
		html = ""
	}

	writeJSON(rw, http.StatusOK, map[string]string{"reply": reply, "html": html})
}

// HealthHandler is a liveness probe.
func (a *App) HealthHandler(rw http.ResponseWriter, req *http.Request) {
	writeJSON(rw, http.StatusOK, map[string]string{"status": "ok"})
}

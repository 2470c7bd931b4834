// Package testutil provides test utilities for wecurate integration tests.
package testutil

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/wecurate/wecurate/curate"
	"github.com/wecurate/wecurate/curate/repository"
	"github.com/wecurate/wecurate/curate/service"
	"github.com/wecurate/wecurate/internal/render"
	"github.com/wecurate/wecurate/internal/server"
	"github.com/wecurate/wecurate/internal/storage"
	_ "modernc.org/sqlite"
)

// TestAdminSecret is the shared secret test apps are configured with.
const TestAdminSecret = "admin888"

// Repository is the combined persistence surface the storage layer provides.
type Repository interface {
	repository.BlobRepository
	repository.SessionRepository
}

// TestApp wraps the full application for integration tests.
type TestApp struct {
	App    *server.App
	Store  *service.Store
	Oracle *StubOracle
	Repo   Repository
	Router *mux.Router
	DB     *sqlx.DB
}

// SetupTestDB creates an in-memory SQLite database with the schema loaded.
func SetupTestDB(t *testing.T) (Repository, *sqlx.DB, func()) {
	t.Helper()

	conn, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	// The pool must stay on one connection or each would get its own
	// in-memory database.
	conn.SetMaxOpenConns(1)

	if err := storage.RunMigrations(conn); err != nil {
		conn.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	testSecret := []byte("test-secret-key-for-sessions-32b")
	database, err := storage.Init(conn, 86400, testSecret)
	if err != nil {
		conn.Close()
		t.Fatalf("failed to initialize storage: %v", err)
	}

	cleanup := func() {
		conn.Close()
	}

	return database, conn, cleanup
}

// SetupTestApp builds a full application over an in-memory database and a
// stub oracle.
func SetupTestApp(t *testing.T) (*TestApp, func()) {
	t.Helper()

	database, conn, cleanup := SetupTestDB(t)

	store := service.NewStore(database)

	sessions, err := service.NewSessionService(database, TestAdminSecret)
	if err != nil {
		cleanup()
		t.Fatalf("failed to create session service: %v", err)
	}

	oracle := &StubOracle{}

	app := &server.App{
		Articles:   service.NewArticleService(store),
		Categories: service.NewCategoryService(store),
		Sessions:   sessions,
		Assistant:  service.NewAssistantService(store, oracle),
		Renderer:   render.NewHTMLRenderer(),
		Config: &curate.Config{
			Host:        "127.0.0.1:0",
			AdminSecret: TestAdminSecret,
		},
	}

	testApp := &TestApp{
		App:    app,
		Store:  store,
		Oracle: oracle,
		Repo:   database,
		Router: NewRouter(app),
		DB:     conn,
	}

	return testApp, cleanup
}

// NewRouter builds the same route table the server binary uses.
func NewRouter(app *server.App) *mux.Router {
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

	return router
}

// SetupTestServer starts an httptest server over a full test app.
func SetupTestServer(t *testing.T) (*httptest.Server, *TestApp, func()) {
	t.Helper()

	testApp, cleanup := SetupTestApp(t)
	srv := httptest.NewServer(testApp.Router)

	serverCleanup := func() {
		srv.Close()
		cleanup()
	}

	return srv, testApp, serverCleanup
}

// StubOracle is a deterministic service.Oracle for tests.
type StubOracle struct {
	ClassifyResult *curate.Classification
	ClassifyErr    error
	ClassifyCalls  int
	LastCategories []string

	Reply        string
	NewChatErr   error
	SendErr      error
	NewChatCalls int
	SendCalls    int
	LastContext  string
}

// Classify returns ClassifyResult (or a fixed valid classification when
// unset), recording the registry labels it was given.
func (o *StubOracle) Classify(_ context.Context, title, snippet string, categories []string) (*curate.Classification, error) {
	o.ClassifyCalls++
	o.LastCategories = append([]string(nil), categories...)
	if o.ClassifyErr != nil {
		return nil, o.ClassifyErr
	}
	if o.ClassifyResult != nil {
		return o.ClassifyResult, nil
	}
	return &curate.Classification{
		Category: categories[0],
		Tags:     []string{"alpha", "beta", "gamma"},
		Summary:  "A stub summary.",
	}, nil
}

// NewChat records the context document and hands out a session bound to this
// stub.
func (o *StubOracle) NewChat(_ context.Context, contextDoc string) (service.ChatSession, error) {
	o.NewChatCalls++
	o.LastContext = contextDoc
	if o.NewChatErr != nil {
		return nil, o.NewChatErr
	}
	return &stubChat{oracle: o}, nil
}

type stubChat struct {
	oracle *StubOracle
}

func (c *stubChat) Send(_ context.Context, message string) (string, error) {
	c.oracle.SendCalls++
	if c.oracle.SendErr != nil {
		return "", c.oracle.SendErr
	}
	return c.oracle.Reply, nil
}

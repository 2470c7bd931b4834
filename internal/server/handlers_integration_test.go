package server_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wecurate/wecurate/curate"
	"github.com/wecurate/wecurate/testutil"
)

// adminClient returns an http.Client logged in as admin.
func adminClient(t *testing.T, srv *httptest.Server) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	client := &http.Client{Jar: jar}

	resp, err := client.Post(srv.URL+"/api/auth/login", "application/json",
		strings.NewReader(fmt.Sprintf(`{"secret":%q}`, testutil.TestAdminSecret)))
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed with status %d", resp.StatusCode)
	}
	return client
}

func getJSON(t *testing.T, client *http.Client, url string, out any) *http.Response {
	t.Helper()

	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s response: %v", url, err)
		}
	}
	return resp
}

func postJSON(t *testing.T, client *http.Client, url string, body any) *http.Response {
	t.Helper()

	encoded, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("encoding request body: %v", err)
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(encoded))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return resp
}

func TestHealthz(t *testing.T) {
	srv, _, cleanup := testutil.SetupTestServer(t)
	defer cleanup()

	resp := getJSON(t, srv.Client(), srv.URL+"/healthz", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestListArticles(t *testing.T) {
	srv, _, cleanup := testutil.SetupTestServer(t)
	defer cleanup()

	var body struct {
		Articles []curate.Article `json:"articles"`
	}
	getJSON(t, srv.Client(), srv.URL+"/api/articles", &body)

	if len(body.Articles) != 2 {
		t.Fatalf("expected the 2 seed articles, got %d", len(body.Articles))
	}

	t.Run("category filter", func(t *testing.T) {
		var filtered struct {
			Articles []curate.Article `json:"articles"`
		}
		getJSON(t, srv.Client(), srv.URL+"/api/articles?category=Finance", &filtered)
		if len(filtered.Articles) != 1 || filtered.Articles[0].Category != "Finance" {
			t.Errorf("unexpected filter result: %+v", filtered.Articles)
		}
	})

	t.Run("text query", func(t *testing.T) {
		var filtered struct {
			Articles []curate.Article `json:"articles"`
		}
		getJSON(t, srv.Client(), srv.URL+"/api/articles?q=macro", &filtered)
		if len(filtered.Articles) != 1 {
			t.Errorf("expected 1 match for 'macro', got %d", len(filtered.Articles))
		}
	})
}

func TestMutationsRequireAdmin(t *testing.T) {
	srv, _, cleanup := testutil.SetupTestServer(t)
	defer cleanup()

	resp := postJSON(t, srv.Client(), srv.URL+"/api/articles", map[string]string{
		"title": "t", "summary": "s", "category": "Technology",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 without a session, got %d", resp.StatusCode)
	}
}

func TestLogin(t *testing.T) {
	srv, _, cleanup := testutil.SetupTestServer(t)
	defer cleanup()

	t.Run("wrong secret", func(t *testing.T) {
		jar, _ := cookiejar.New(nil)
		client := &http.Client{Jar: jar}

		resp := postJSON(t, client, srv.URL+"/api/auth/login", map[string]string{"secret": "wrong"})
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", resp.StatusCode)
		}

		var session struct {
			Admin bool `json:"admin"`
		}
		getJSON(t, client, srv.URL+"/api/auth/session", &session)
		if session.Admin {
			t.Error("admin flag must stay false after a failed login")
		}
	})

	t.Run("correct secret then logout", func(t *testing.T) {
		client := adminClient(t, srv)

		var session struct {
			Admin bool `json:"admin"`
		}
		getJSON(t, client, srv.URL+"/api/auth/session", &session)
		if !session.Admin {
			t.Fatal("expected admin flag after login")
		}

		resp := postJSON(t, client, srv.URL+"/api/auth/logout", nil)
		resp.Body.Close()

		getJSON(t, client, srv.URL+"/api/auth/session", &session)
		if session.Admin {
			t.Error("expected admin flag cleared after logout")
		}
	})
}

func TestAddAndDeleteArticle(t *testing.T) {
	srv, _, cleanup := testutil.SetupTestServer(t)
	defer cleanup()

	client := adminClient(t, srv)

	resp := postJSON(t, client, srv.URL+"/api/articles", map[string]any{
		"title":    "Brand New",
		"category": "Technology",
		"summary":  "Fresh content.",
		"tags":     []string{"new"},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created curate.Article
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decoding created article: %v", err)
	}
	resp.Body.Close()

	var listed struct {
		Articles []curate.Article `json:"articles"`
	}
	getJSON(t, client, srv.URL+"/api/articles", &listed)
	if listed.Articles[0].ID != created.ID {
		t.Errorf("expected the new article first, got %q", listed.Articles[0].ID)
	}

	t.Run("free-form tag text is split", func(t *testing.T) {
		resp := postJSON(t, client, srv.URL+"/api/articles", map[string]string{
			"title": "Tagged", "summary": "s", "category": "Technology",
			"tagsText": "go, web backend",
		})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d", resp.StatusCode)
		}
		var tagged curate.Article
		if err := json.NewDecoder(resp.Body).Decode(&tagged); err != nil {
			t.Fatalf("decoding created article: %v", err)
		}
		if len(tagged.Tags) != 3 || tagged.Tags[0] != "go" {
			t.Errorf("expected split tags [go web backend], got %v", tagged.Tags)
		}
	})

	t.Run("validation error", func(t *testing.T) {
		resp := postJSON(t, client, srv.URL+"/api/articles", map[string]string{
			"title": "", "summary": "s", "category": "Technology",
		})
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/articles/"+created.ID, nil)
			resp, err := client.Do(req)
			if err != nil {
				t.Fatalf("DELETE failed: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusNoContent {
				t.Errorf("expected 204 on attempt %d, got %d", i+1, resp.StatusCode)
			}
		}
	})
}

func TestCategoryEndpoints(t *testing.T) {
	srv, _, cleanup := testutil.SetupTestServer(t)
	defer cleanup()

	client := adminClient(t, srv)

	t.Run("remove cascades to the fallback", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/categories/Finance", nil)
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("DELETE failed: %v", err)
		}
		defer resp.Body.Close()

		var body struct {
			Reassigned int      `json:"reassigned"`
			Categories []string `json:"categories"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if body.Reassigned != 1 {
			t.Errorf("expected 1 reassigned seed article, got %d", body.Reassigned)
		}
		for _, label := range body.Categories {
			if label == "Finance" {
				t.Error("registry still contains Finance")
			}
		}

		var listed struct {
			Articles []curate.Article `json:"articles"`
		}
		getJSON(t, client, srv.URL+"/api/articles?category="+curate.ReservedCategory, &listed)
		if len(listed.Articles) != 1 {
			t.Errorf("expected the reassigned article under the fallback, got %d", len(listed.Articles))
		}
	})

	t.Run("reserved label is a conflict", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/categories/"+curate.ReservedCategory, nil)
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("DELETE failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusConflict {
			t.Errorf("expected 409, got %d", resp.StatusCode)
		}
	})
}

func TestClassifyEndpoint(t *testing.T) {
	srv, app, cleanup := testutil.SetupTestServer(t)
	defer cleanup()

	client := adminClient(t, srv)

	t.Run("success", func(t *testing.T) {
		resp := postJSON(t, client, srv.URL+"/api/articles/classify", map[string]string{
			"title": "Some Article", "snippet": "Some text",
		})
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var c curate.Classification
		if err := json.NewDecoder(resp.Body).Decode(&c); err != nil {
			t.Fatalf("decoding classification: %v", err)
		}
		if c.Category == "" {
			t.Errorf("unexpected classification %+v", c)
		}
	})

	t.Run("oracle failure is a bad gateway", func(t *testing.T) {
		app.Oracle.ClassifyErr = errors.New("down")
		defer func() { app.Oracle.ClassifyErr = nil }()

		resp := postJSON(t, client, srv.URL+"/api/articles/classify", map[string]string{
			"title": "t", "snippet": "s",
		})
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadGateway {
			t.Errorf("expected 502, got %d", resp.StatusCode)
		}
	})
}

func TestChatEndpoint(t *testing.T) {
	srv, app, cleanup := testutil.SetupTestServer(t)
	defer cleanup()

	app.Oracle.Reply = "**Bold** answer"

	resp := postJSON(t, srv.Client(), srv.URL+"/api/chat", map[string]string{"message": "summarize tech"})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Reply string `json:"reply"`
		HTML  string `json:"html"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding chat response: %v", err)
	}
	if body.Reply != "**Bold** answer" {
		t.Errorf("unexpected reply %q", body.Reply)
	}
	if !strings.Contains(body.HTML, "<strong>Bold</strong>") {
		t.Errorf("expected rendered HTML, got %q", body.HTML)
	}

	t.Run("empty message is rejected", func(t *testing.T) {
		resp := postJSON(t, srv.Client(), srv.URL+"/api/chat", map[string]string{"message": "  "})
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})
}

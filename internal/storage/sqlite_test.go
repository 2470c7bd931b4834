package storage_test

import (
	"database/sql"
	"testing"

	"github.com/wecurate/wecurate/internal/storage"
	"github.com/wecurate/wecurate/testutil"
)

func TestBlobRepository(t *testing.T) {
	repo, _, cleanup := testutil.SetupTestDB(t)
	defer cleanup()

	t.Run("missing key reports ErrNoRows", func(t *testing.T) {
		_, err := repo.SelectBlob("nope")
		if err != sql.ErrNoRows {
			t.Errorf("expected sql.ErrNoRows, got: %v", err)
		}
	})

	t.Run("upsert then select", func(t *testing.T) {
		if err := repo.UpsertBlob("articles", `[{"id":"1"}]`); err != nil {
			t.Fatalf("UpsertBlob failed: %v", err)
		}

		value, err := repo.SelectBlob("articles")
		if err != nil {
			t.Fatalf("SelectBlob failed: %v", err)
		}
		if value != `[{"id":"1"}]` {
			t.Errorf("unexpected value %q", value)
		}
	})

	t.Run("upsert replaces", func(t *testing.T) {
		if err := repo.UpsertBlob("articles", `[]`); err != nil {
			t.Fatalf("UpsertBlob failed: %v", err)
		}

		value, err := repo.SelectBlob("articles")
		if err != nil {
			t.Fatalf("SelectBlob failed: %v", err)
		}
		if value != `[]` {
			t.Errorf("expected replacement, got %q", value)
		}
	})
}

func TestGetOrCreateCookieSecret(t *testing.T) {
	_, conn, cleanup := testutil.SetupTestDB(t)
	defer cleanup()

	first, err := storage.GetOrCreateCookieSecret(conn)
	if err != nil {
		t.Fatalf("GetOrCreateCookieSecret failed: %v", err)
	}
	if len(first) != 64 {
		t.Errorf("expected a 64-byte secret, got %d bytes", len(first))
	}

	second, err := storage.GetOrCreateCookieSecret(conn)
	if err != nil {
		t.Fatalf("GetOrCreateCookieSecret failed: %v", err)
	}
	if string(first) != string(second) {
		t.Error("expected the secret to be stable across calls")
	}
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	_, conn, cleanup := testutil.SetupTestDB(t)
	defer cleanup()

	// testutil already ran the migrations once.
	if err := storage.RunMigrations(conn); err != nil {
		t.Fatalf("second RunMigrations failed: %v", err)
	}
}

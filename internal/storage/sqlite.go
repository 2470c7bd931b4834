package storage

import (
	_ "embed"

	"github.com/jmoiron/sqlx"
	"github.com/michaeljs1990/sqlitestore"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// PreparedStatements holds the prepared SQL statements used for blob queries.
// This struct is exported to allow reuse in test utilities.
type PreparedStatements struct {
	SelectBlobStmt *sqlx.Stmt
	UpsertBlobStmt *sqlx.Stmt
}

// InitializeStatements prepares the SQL statements needed for blob
// operations. Exported for reuse in test utilities.
func InitializeStatements(conn *sqlx.DB) (*PreparedStatements, error) {
	stmts := &PreparedStatements{}
	var err error

	stmts.SelectBlobStmt, err = conn.Preparex(`SELECT value FROM Blob WHERE key = ?`)
	if err != nil {
		return nil, err
	}

	stmts.UpsertBlobStmt, err = conn.Preparex(`INSERT INTO Blob (key, value, updated) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated = excluded.updated`)
	if err != nil {
		return nil, err
	}

	return stmts, nil
}

// Open opens (or creates) the SQLite database file.
func Open(databaseFile string) (*sqlx.DB, error) {
	return sqlx.Open("sqlite", databaseFile)
}

// RunMigrations executes the embedded schema. Idempotent and safe to run
// multiple times.
func RunMigrations(db *sqlx.DB) error {
	_, err := db.Exec(schemaSQL)
	return err
}

// sqliteDb is the main database struct. Blob methods live in blob_repo.go;
// session operations are handled by the embedded SqliteStore.
type sqliteDb struct {
	*sqlitestore.SqliteStore
	*PreparedStatements
	conn *sqlx.DB
}

// Init initializes the storage layer with an existing database connection.
// The connection should already have migrations applied via RunMigrations.
func Init(db *sqlx.DB, cookieExpiry int, cookieSecret []byte) (*sqliteDb, error) {
	var err error

	store := &sqliteDb{conn: db}
	store.SqliteStore, err = sqlitestore.NewSqliteStoreFromConnection(db, "sessions", "/", cookieExpiry, cookieSecret)
	if err != nil {
		return nil, err
	}

	store.PreparedStatements, err = InitializeStatements(db)
	if err != nil {
		return nil, err
	}

	return store, nil
}

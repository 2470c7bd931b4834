package storage

import (
	"database/sql"
	"encoding/base64"
	"errors"

	"github.com/gorilla/securecookie"
	"github.com/jmoiron/sqlx"
)

const cookieSecretKey = "cookie_secret"

// GetOrCreateCookieSecret loads the session cookie secret from the Blob
// table, generating and persisting a new one on first boot so sessions
// survive restarts.
func GetOrCreateCookieSecret(db *sqlx.DB) ([]byte, error) {
	var encoded string
	err := db.Get(&encoded, `SELECT value FROM Blob WHERE key = ?`, cookieSecretKey)
	if err == sql.ErrNoRows {
		secret := securecookie.GenerateRandomKey(64)
		if secret == nil {
			return nil, errors.New("securecookie.GenerateRandomKey returned nil")
		}
		encoded = base64.StdEncoding.EncodeToString(secret)
		_, err = db.Exec(`INSERT INTO Blob (key, value) VALUES (?, ?)`, cookieSecretKey, encoded)
		if err != nil {
			return nil, err
		}
		return secret, nil
	} else if err != nil {
		return nil, err
	}

	return base64.StdEncoding.DecodeString(encoded)
}

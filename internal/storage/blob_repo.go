package storage

// Blob repository methods for sqliteDb

func (db *sqliteDb) SelectBlob(key string) (string, error) {
	var value string
	err := db.SelectBlobStmt.Get(&value, key)
	if err != nil {
		return "", err
	}
	return value, nil
}

func (db *sqliteDb) UpsertBlob(key string, value string) error {
	_, err := db.UpsertBlobStmt.Exec(key, value)
	return err
}

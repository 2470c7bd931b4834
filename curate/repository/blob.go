package repository

// Blob keys for the persisted snapshots.
const (
	BlobArticles   = "articles"
	BlobCategories = "categories"
)

// BlobRepository is the durable key-value store behind the library. Each key
// holds one serialized snapshot; writes replace the previous value.
type BlobRepository interface {
	// SelectBlob retrieves the value stored under key. A missing key is
	// reported as sql.ErrNoRows.
	SelectBlob(key string) (string, error)

	// UpsertBlob stores value under key, replacing any previous value.
	UpsertBlob(key string, value string) error
}

package store

// KV is the key-value storage interface. Values are JSON documents.
type KV interface {
	// Load returns the value stored under key, or nil if there is none.
	Load(key string) ([]byte, error)
	// Save stores value under key, replacing any previous value.
	Save(key string, value []byte) error
	// Close ends the database connection.
	Close() error
}

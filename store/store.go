// Package store persists JSON documents in BoltDB or SQLite
package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
	berrors "go.etcd.io/bbolt/errors"

	"github.com/echoverse/echoverse/internal/apperr"
	"github.com/echoverse/echoverse/internal/osutil"
)

const kvBucket = "kv"

var (
	errEchoRunning = &apperr.Error{
		Message: "is EchoVerse already running? Only one instance can use the database at a time",
	}

	errUnknownBackend = &apperr.Error{
		Message: "unknown storage backend: %s",
	}
)

const (
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
)

// Open connects to the database at path using the named backend.
func Open(backend, path string) (KV, error) {
	switch backend {
	case BackendBolt, "":
		return NewClient(path)
	case BackendSQLite:
		return NewSQLite(path)
	}

	return nil, errUnknownBackend.Fmt(backend)
}

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

// Load reads the value for key.
func (c *Client) Load(key string) ([]byte, error) {
	var value []byte

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(kvBucket)).Get([]byte(key))
		if v != nil {
			// bolt values are only valid for the life of the transaction
			value = append([]byte(nil), v...)
		}

		return nil
	})

	return value, err
}

// Save writes value under key in a single transaction.
func (c *Client) Save(key string, value []byte) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(kvBucket)).Put([]byte(key), value)
	})
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = osutil.PrivateFilePermission

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, berrors.ErrTimeout) {
			return nil, errEchoRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	err := mkdirFor(dbPath)
	if err != nil {
		return nil, err
	}

	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	// Create the bucket for storing data if it does not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists([]byte(kvBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Client{
		db,
	}, nil
}

func mkdirFor(path string) error {
	return os.MkdirAll(filepath.Dir(path), osutil.DirPermission)
}

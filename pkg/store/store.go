// Package store abstracts the history storage of the interactive shell. It
// is backed by a bolt database file.
package store

import (
	"errors"
	"time"

	bolt "go.etcd.io/bbolt"

	"src.rill.dev/pkg/logutil"
)

var logger = logutil.GetLogger("[store] ")

const bucketCmd = "cmd"

// ErrNoMatchingCmd is the error returned when a command history query
// completes with no result.
var ErrNoMatchingCmd = errors.New("no matching command line")

// Store is the history storage, backed by a bolt database file. It is safe
// for concurrent use.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if needed) the database at the given path. Opening
// fails when another process holds the file lock for too long.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{
		Timeout: time.Second,
	})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCmd))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	logger.Println("opened database at", path)
	return &Store{db}, nil
}

// Close closes the database file.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

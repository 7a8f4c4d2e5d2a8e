package store

import (
	"fmt"
	"time"

	"github.com/boltdb/bolt"

	"github.com/rlimports/autovitrine/internal/apperr"
)

const boltBucket = "autovitrine"

// Bolt implements KV on a single-file BoltDB database. All collections live
// in one bucket, keyed by the namespaced store keys.
type Bolt struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the database file and ensures the bucket
// exists. The open timeout guards against a stale file lock.
func OpenBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("store: open bolt %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create bucket: %w", err)
	}
	return &Bolt{db: db}, nil
}

// Get returns the value stored under key, or apperr.ErrNotFound.
func (b *Bolt) Get(key string) ([]byte, error) {
	var out []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(boltBucket)).Get([]byte(key))
		if v == nil {
			return apperr.ErrNotFound
		}
		// v is only valid for the life of the transaction.
		out = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Put writes value under key, replacing any previous value.
func (b *Bolt) Put(key string, value []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(boltBucket)).Put([]byte(key), value)
	})
}

// Close releases the database file lock.
func (b *Bolt) Close() error {
	return b.db.Close()
}

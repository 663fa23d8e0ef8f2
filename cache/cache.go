// ABOUTME: Badger-backed snapshot cache of the last good collection per resource
// ABOUTME: Seeds list pages at startup so the console paints before the first round-trip
package cache

import (
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v3"
)

const snapshotPrefix = "snapshot/"

// Store persists the most recent successfully loaded collection for each
// resource. Snapshots are display seeds only; the REST boundary stays the
// source of truth.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the cache at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// PutSnapshot stores the serialized collection for a resource.
func (s *Store) PutSnapshot(resource string, data []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(snapshotPrefix+resource), data)
	})
}

// Snapshot returns the stored collection for a resource, with found=false
// when none has been written yet.
func (s *Store) Snapshot(resource string) (data []byte, found bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(snapshotPrefix + resource))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Drop removes a resource's snapshot.
func (s *Store) Drop(resource string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(snapshotPrefix + resource))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

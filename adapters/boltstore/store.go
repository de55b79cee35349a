package boltstore

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/boltdb/bolt"

	"github.com/openhooks/dispatch-ledger-go/pkg/ledger"
)

var (
	eventsBucket = []byte("events")
	stateBucket  = []byte("state")
	snapshotKey  = []byte("snapshot")
)

// Store is a Bolt-backed event journal and snapshot store.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the database file at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, bucketErr := tx.CreateBucketIfNotExists(eventsBucket); bucketErr != nil {
			return bucketErr
		}
		_, bucketErr := tx.CreateBucketIfNotExists(stateBucket)
		return bucketErr
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare store buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database file.
func (store *Store) Close() error {
	return store.db.Close()
}

// Path returns the database file path.
func (store *Store) Path() string {
	return store.db.Path()
}

// Append implements ledger.EventSink. Events are journaled in sequence
// order under monotonically increasing keys.
func (store *Store) Append(ctx context.Context, event ledger.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	compressed, err := compressJSON(event)
	if err != nil {
		return err
	}

	return store.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(eventsBucket)
		sequence, sequenceErr := bucket.NextSequence()
		if sequenceErr != nil {
			return fmt.Errorf("failed to allocate event sequence: %w", sequenceErr)
		}

		var key [8]byte
		binary.BigEndian.PutUint64(key[:], sequence)
		if putErr := bucket.Put(key[:], compressed); putErr != nil {
			return fmt.Errorf("failed to journal event: %w", putErr)
		}
		return nil
	})
}

// Events returns the full journal in append order.
func (store *Store) Events() ([]ledger.Event, error) {
	var events []ledger.Event
	err := store.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(eventsBucket).ForEach(func(key, value []byte) error {
			var event ledger.Event
			if decodeErr := decompressJSON(value, &event); decodeErr != nil {
				return decodeErr
			}
			events = append(events, event)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// SaveState stores a ledger snapshot, replacing any previous one.
func (store *Store) SaveState(state ledger.State) error {
	compressed, err := compressJSON(state)
	if err != nil {
		return err
	}

	return store.db.Update(func(tx *bolt.Tx) error {
		if putErr := tx.Bucket(stateBucket).Put(snapshotKey, compressed); putErr != nil {
			return fmt.Errorf("failed to store snapshot: %w", putErr)
		}
		return nil
	})
}

// LoadState returns the stored snapshot. The second return value is false
// when no snapshot has been saved.
func (store *Store) LoadState() (ledger.State, bool, error) {
	var state ledger.State
	found := false

	err := store.db.View(func(tx *bolt.Tx) error {
		value := tx.Bucket(stateBucket).Get(snapshotKey)
		if value == nil {
			return nil
		}
		if decodeErr := decompressJSON(value, &state); decodeErr != nil {
			return decodeErr
		}
		found = true
		return nil
	})
	if err != nil {
		return ledger.State{}, false, err
	}
	return state, found, nil
}

func compressJSON(value any) ([]byte, error) {
	payload, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	var buffer bytes.Buffer
	writer := brotli.NewWriterLevel(&buffer, brotli.BestCompression)
	if _, err := writer.Write(payload); err != nil {
		return nil, fmt.Errorf("failed to compress payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress payload: %w", err)
	}
	return buffer.Bytes(), nil
}

func decompressJSON(compressed []byte, target any) error {
	payload, err := io.ReadAll(brotli.NewReader(bytes.NewReader(compressed)))
	if err != nil {
		return fmt.Errorf("failed to decompress payload: %w", err)
	}
	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}
	return nil
}

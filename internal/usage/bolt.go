// ABOUTME: bbolt-backed usage store persisting observations across restarts
// ABOUTME: Implements Recorder for the CLI and MCP server billing display
package usage

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var observationsBucket = []byte("observations")

// BoltStore persists every observation to a single bbolt file so the
// usage command can show counters across process restarts.
type BoltStore struct {
	db *bolt.DB
}

// OpenBoltStore opens (or creates) the usage database at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating usage db directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening usage db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(observationsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing usage db: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Record appends one observation. The Recorder contract has no error
// return; persistence failures are logged and the observation dropped.
func (s *BoltStore) Record(obs Observation) {
	normalize(&obs)

	data, err := json.Marshal(obs)
	if err != nil {
		log.Printf("Warning: failed to encode usage observation: %v", err)
		return
	}

	key := []byte(obs.At.UTC().Format(time.RFC3339Nano) + "/" + obs.ID)
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(observationsBucket).Put(key, data)
	})
	if err != nil {
		log.Printf("Warning: failed to persist usage observation: %v", err)
	}
}

// Snapshot aggregates every persisted observation.
func (s *BoltStore) Snapshot() Snapshot {
	snap := Snapshot{ByProvider: make(map[string]ProviderUsage)}

	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(observationsBucket).ForEach(func(_, v []byte) error {
			var obs Observation
			if err := json.Unmarshal(v, &obs); err != nil {
				// Skip rows written by a future version
				return nil
			}
			apply(&snap, obs)
			return nil
		})
	})
	if err != nil {
		log.Printf("Warning: failed to read usage observations: %v", err)
	}
	return snap
}

// Reset drops all persisted observations.
func (s *BoltStore) Reset() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(observationsBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucket(observationsBucket)
		return err
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

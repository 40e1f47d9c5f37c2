package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketSession = []byte("session")

	keyToken   = []byte("token")
	keyProfile = []byte("profile")
)

// Storage persists the credential and profile across process restarts.
// With an empty path it runs memory-only, which is what the tests use.
type Storage struct {
	db *bolt.DB

	mu  sync.Mutex
	mem map[string][]byte
}

// NewStorage opens (or creates) the session database at path.
func NewStorage(path string) (*Storage, error) {
	if path == "" {
		return &Storage{mem: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open session db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSession)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Close releases the underlying database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save writes the credential and profile.
func (s *Storage) Save(token string, profile *Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	if s.db == nil {
		s.mu.Lock()
		s.mem[string(keyToken)] = []byte(token)
		s.mem[string(keyProfile)] = data
		s.mu.Unlock()
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSession)
		if err := b.Put(keyToken, []byte(token)); err != nil {
			return err
		}
		return b.Put(keyProfile, data)
	})
}

// Load returns the persisted credential and profile. A nil profile with a
// nil error means nothing is persisted.
func (s *Storage) Load() (string, *Profile, error) {
	var tokenData, profileData []byte

	if s.db == nil {
		s.mu.Lock()
		tokenData = s.mem[string(keyToken)]
		profileData = s.mem[string(keyProfile)]
		s.mu.Unlock()
	} else {
		err := s.db.View(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketSession)
			if v := b.Get(keyToken); v != nil {
				tokenData = append([]byte(nil), v...)
			}
			if v := b.Get(keyProfile); v != nil {
				profileData = append([]byte(nil), v...)
			}
			return nil
		})
		if err != nil {
			return "", nil, fmt.Errorf("failed to read session db: %w", err)
		}
	}

	if len(tokenData) == 0 || len(profileData) == 0 {
		return "", nil, nil
	}

	var p Profile
	if err := json.Unmarshal(profileData, &p); err != nil {
		return "", nil, fmt.Errorf("failed to decode persisted profile: %w", err)
	}
	return string(tokenData), &p, nil
}

// Clear removes everything persisted.
func (s *Storage) Clear() error {
	if s.db == nil {
		s.mu.Lock()
		delete(s.mem, string(keyToken))
		delete(s.mem, string(keyProfile))
		s.mu.Unlock()
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSession)
		if err := b.Delete(keyToken); err != nil {
			return err
		}
		return b.Delete(keyProfile)
	})
}

package datastore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/akonuma/competitor-monitor/internal/common"
	"github.com/rs/zerolog"
)

// FingerprintStore persists the URL-to-fingerprint mapping across runs as a
// single JSON file. A missing file loads as an empty mapping; so does a
// malformed one, since re-learning fingerprints is cheaper than refusing to
// run. The file is overwritten wholesale on save.
type FingerprintStore struct {
	path   string
	logger zerolog.Logger

	mu           sync.RWMutex
	fingerprints map[string]string
}

// NewFingerprintStore creates a fingerprint store backed by the given file.
func NewFingerprintStore(path string, logger zerolog.Logger) *FingerprintStore {
	return &FingerprintStore{
		path:         path,
		logger:       logger.With().Str("component", "FingerprintStore").Logger(),
		fingerprints: make(map[string]string),
	}
}

// Load reads the mapping from disk. Only unexpected I/O errors are returned;
// absence and corruption both recover as empty state.
func (fs *FingerprintStore) Load() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.fingerprints = make(map[string]string)

	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		fs.logger.Debug().Str("path", fs.path).Msg("Fingerprint file not found, starting with empty state")
		return nil
	}
	if err != nil {
		return common.NewPersistenceError("read", fs.path, err)
	}

	loaded := make(map[string]string)
	if err := json.Unmarshal(data, &loaded); err != nil {
		fs.logger.Warn().Err(err).Str("path", fs.path).Msg("Fingerprint file malformed, treating as empty state")
		return nil
	}

	fs.fingerprints = loaded
	return nil
}

// Get returns the stored fingerprint for a URL.
func (fs *FingerprintStore) Get(url string) (string, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	fp, ok := fs.fingerprints[url]
	return fp, ok
}

// Set records the fingerprint for a URL. Safe for concurrent use.
func (fs *FingerprintStore) Set(url, fingerprint string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.fingerprints[url] = fingerprint
}

// Len returns the number of stored fingerprints.
func (fs *FingerprintStore) Len() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return len(fs.fingerprints)
}

// Save overwrites the file on disk with the current mapping. A write failure
// is fatal to the run: proceeding would risk repeated re-notification on the
// next run.
func (fs *FingerprintStore) Save() error {
	fs.mu.RLock()
	data, err := json.MarshalIndent(fs.fingerprints, "", "  ")
	fs.mu.RUnlock()
	if err != nil {
		return common.NewPersistenceError("marshal", fs.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(fs.path), 0o755); err != nil {
		return common.NewPersistenceError("mkdir", fs.path, err)
	}
	if err := os.WriteFile(fs.path, data, 0o644); err != nil {
		return common.NewPersistenceError("write", fs.path, err)
	}
	return nil
}

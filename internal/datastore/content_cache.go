package datastore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/akonuma/competitor-monitor/internal/common"
	"github.com/rs/zerolog"
)

// ContentCache persists the last normalized text per monitored URL, one file
// per URL, addressed by a digest of the URL itself so arbitrary URLs map to
// filesystem-safe names. The cached text is exactly what the differ needs to
// reconstruct a diff against the current fetch.
type ContentCache struct {
	dir           string
	hashGenerator *URLHashGenerator
	logger        zerolog.Logger
}

// NewContentCache creates a content cache rooted at dir.
func NewContentCache(dir string, hashGenerator *URLHashGenerator, logger zerolog.Logger) *ContentCache {
	return &ContentCache{
		dir:           dir,
		hashGenerator: hashGenerator,
		logger:        logger.With().Str("component", "ContentCache").Logger(),
	}
}

// LoadSnapshot returns the cached normalized text for a URL.
// common.ErrNotFound signals an absent (evicted or never-written) entry.
func (cc *ContentCache) LoadSnapshot(url string) ([]string, error) {
	path := cc.snapshotPath(url)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, common.WrapErrorf(common.ErrNotFound, "no cached content for '%s'", url)
	}
	if err != nil {
		return nil, common.NewPersistenceError("read", path, err)
	}

	text := string(data)
	if text == "" {
		return []string{}, nil
	}
	return strings.Split(text, "\n"), nil
}

// SaveSnapshot writes the normalized text for a URL, replacing any prior
// snapshot.
func (cc *ContentCache) SaveSnapshot(url string, lines []string) error {
	if err := os.MkdirAll(cc.dir, 0o755); err != nil {
		return common.NewPersistenceError("mkdir", cc.dir, err)
	}

	path := cc.snapshotPath(url)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return common.NewPersistenceError("write", path, err)
	}
	return nil
}

// snapshotPath derives the snapshot file path for a URL.
func (cc *ContentCache) snapshotPath(url string) string {
	return filepath.Join(cc.dir, cc.hashGenerator.GenerateHash(url)+".txt")
}

package datastore

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ContentHasher computes content fingerprints over normalized text. The
// digest identifies content state for equality comparison only; it is never
// used for security and never compared partially.
type ContentHasher struct{}

// NewContentHasher creates a new ContentHasher.
func NewContentHasher() *ContentHasher {
	return &ContentHasher{}
}

// Fingerprint returns the hex digest of the normalized lines joined by
// newlines. Two texts are the same if and only if their fingerprints match.
func (ch *ContentHasher) Fingerprint(lines []string) string {
	sum := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(sum[:])
}

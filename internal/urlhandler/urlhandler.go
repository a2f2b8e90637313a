package urlhandler

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeURL takes a raw URL string and returns a normalized version.
// Normalization includes:
// - Adding a default scheme (http) if missing.
// - Lowercasing the scheme and host.
// - Removing the fragment.
func NormalizeURL(rawURL string) (string, error) {
	trimmedURL := strings.TrimSpace(rawURL)
	if trimmedURL == "" {
		return "", fmt.Errorf("input URL is empty")
	}

	u, err := url.Parse(trimmedURL)
	if err != nil {
		return "", err
	}

	if u.Scheme == "" {
		// Re-parse with a scheme prepended: url.Parse("example.com/path")
		// treats "example.com/path" as Path, not Host+Path.
		u, err = url.Parse("http://" + trimmedURL)
		if err != nil {
			return "", err
		}
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	return u.String(), nil
}

// ValidateURLFormat checks whether a string is an acceptable URL.
func ValidateURLFormat(rawURL string) error {
	trimmedURL := strings.TrimSpace(rawURL)
	if trimmedURL == "" {
		return fmt.Errorf("URL is empty")
	}

	if _, err := url.ParseRequestURI(trimmedURL); err != nil {
		return fmt.Errorf("invalid URL format '%s': %w", trimmedURL, err)
	}

	return nil
}

// NormalizeURLSlice normalizes a list of URLs, dropping invalid entries and
// duplicates while preserving first-seen order.
func NormalizeURLSlice(rawURLs []string) []string {
	seen := make(map[string]struct{}, len(rawURLs))
	normalized := make([]string, 0, len(rawURLs))

	for _, raw := range rawURLs {
		u, err := NormalizeURL(raw)
		if err != nil {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		normalized = append(normalized, u)
	}

	return normalized
}

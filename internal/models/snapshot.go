package models

// PageSnapshot captures one successful observation of a monitored URL.
// NormalizedText and Fingerprint are deterministic derivations of RawContent;
// only the fingerprint and the normalized text are persisted, independently.
type PageSnapshot struct {
	URL            string
	RawContent     []byte
	NormalizedText []string
	Fingerprint    string
}

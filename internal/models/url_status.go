package models

// URLStatus classifies the outcome for a single URL within one monitoring run.
type URLStatus string

const (
	// StatusNew marks the first successful observation of a URL. State is
	// recorded but no report is produced (there is nothing to diff against).
	StatusNew URLStatus = "new"
	// StatusUnchanged marks a fingerprint match against the stored value.
	StatusUnchanged URLStatus = "unchanged"
	// StatusChanged marks a fingerprint mismatch; a change report is produced.
	StatusChanged URLStatus = "changed"
	// StatusFetchFailed marks a fetch error; prior state stays authoritative.
	StatusFetchFailed URLStatus = "fetch_failed"
)

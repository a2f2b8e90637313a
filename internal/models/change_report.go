package models

import "time"

// ChangeReport describes one detected content change, ready for delivery.
// Reports are built during a run, handed to the notifier, and never persisted.
type ChangeReport struct {
	URL        string
	Summary    string
	DetectedAt time.Time
}

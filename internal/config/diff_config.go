package config

// DiffConfig defines configuration for diff summarization
type DiffConfig struct {
	// TruncationLimit caps the removed and added sections of a rendered
	// summary independently; lines beyond the cap collapse into a single
	// omitted-count entry.
	TruncationLimit int `json:"truncation_limit,omitempty" yaml:"truncation_limit,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultDiffConfig creates default diff configuration
func NewDefaultDiffConfig() DiffConfig {
	return DiffConfig{
		TruncationLimit: 20,
	}
}

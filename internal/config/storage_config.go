package config

// StorageConfig defines configuration for the persisted fingerprint store
// and content cache
type StorageConfig struct {
	FingerprintFilePath string `json:"fingerprint_file_path,omitempty" yaml:"fingerprint_file_path,omitempty"`
	ContentCacheDir     string `json:"content_cache_dir,omitempty" yaml:"content_cache_dir,omitempty"`
	URLHashLength       int    `json:"url_hash_length,omitempty" yaml:"url_hash_length,omitempty" validate:"omitempty,min=8,max=64"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		FingerprintFilePath: "data/hashes.json",
		ContentCacheDir:     "data/cache",
		URLHashLength:       16,
	}
}

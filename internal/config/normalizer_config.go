package config

// RedactionRule is one declarative volatile-token pattern. Matched spans are
// removed from the markup entirely before tag stripping, so they never reach
// the whitespace-normalized output. The rule set is data: it can be replaced
// or extended in configuration without touching the normalizer itself.
type RedactionRule struct {
	Name    string `json:"name" yaml:"name" validate:"required"`
	Pattern string `json:"pattern" yaml:"pattern" validate:"required"`
}

// NormalizerConfig defines configuration for content normalization
type NormalizerConfig struct {
	RedactionRules      []RedactionRule `json:"redaction_rules,omitempty" yaml:"redaction_rules,omitempty" validate:"omitempty,dive"`
	ExtractImages       bool            `json:"extract_images" yaml:"extract_images"`
	MaxLineLength       int             `json:"max_line_length,omitempty" yaml:"max_line_length,omitempty" validate:"omitempty,min=1"`
	SentenceChunkLength int             `json:"sentence_chunk_length,omitempty" yaml:"sentence_chunk_length,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultNormalizerConfig creates default normalizer configuration
func NewDefaultNormalizerConfig() NormalizerConfig {
	return NormalizerConfig{
		RedactionRules:      DefaultRedactionRules(),
		ExtractImages:       true,
		MaxLineLength:       100,
		SentenceChunkLength: 80,
	}
}

// DefaultRedactionRules returns the built-in volatile-token patterns:
// cache/generation timestamps, CSRF and session tokens, long hexadecimal
// identifiers, and analytics/experiment parameters.
func DefaultRedactionRules() []RedactionRule {
	return []RedactionRule{
		{
			Name:    "timestamp-attribute",
			Pattern: `(?i)\s+data-(?:timestamp|generated|build|rendered)(?:-at)?="[^"]*"`,
		},
		{
			Name:    "cache-buster-param",
			Pattern: `(?i)[?&](?:v|ver|rev|t|ts|_)=[0-9a-z.\-]+`,
		},
		{
			Name:    "csrf-session-token",
			Pattern: `(?i)(?:csrf[_-]?token|authenticity_token|session[_-]?id|xsrf[_-]?token)(?:"?\s*[:=]\s*"?)[A-Za-z0-9+/=_\-]+"?`,
		},
		{
			Name:    "long-hex-id",
			Pattern: `(?i)\b[0-9a-f]{16,}\b`,
		},
		{
			Name:    "analytics-param",
			Pattern: `(?i)[?&](?:utm_[a-z]+|gclid|fbclid|msclkid|_ga|_gid|mc_[a-z]+)=[^&"'<>\s]*`,
		},
		{
			Name:    "experiment-marker",
			Pattern: `(?i)\s+data-(?:ab[_-]?test|experiment|variant)(?:-(?:id|group|name))?="[^"]*"`,
		},
	}
}

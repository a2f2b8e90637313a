package config

import (
	"regexp"

	"github.com/akonuma/competitor-monitor/internal/common"
	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return common.NewValidationError("config", nil, "configuration cannot be nil")
	}

	validate := validator.New()

	if err := validate.Struct(cfg); err != nil {
		return common.WrapError(err, "config validation failed")
	}

	// Redaction patterns must compile; a broken pattern would otherwise only
	// surface when the normalizer is first constructed.
	for _, rule := range cfg.NormalizerConfig.RedactionRules {
		if _, err := regexp.Compile(rule.Pattern); err != nil {
			return common.NewValidationError("redaction_rules", rule.Pattern,
				"redaction pattern '"+rule.Name+"' does not compile")
		}
	}

	return nil
}

package normalizer

import (
	"regexp"
	"strings"

	"github.com/akonuma/competitor-monitor/internal/common"
	"github.com/akonuma/competitor-monitor/internal/config"
)

// Structural markup that never carries comparable content.
var (
	scriptBlockRe  = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	styleBlockRe   = regexp.MustCompile(`(?is)<style\b.*?</style>`)
	commentBlockRe = regexp.MustCompile(`(?s)<!--.*?-->`)
	tagRe          = regexp.MustCompile(`<[^>]+>`)
	hspaceRe       = regexp.MustCompile(`[ \t\r\f\v]+`)
)

// entityReplacer decodes the fixed set of named entities the normalizer
// understands. Keeping the set small and explicit keeps the output
// deterministic across library versions.
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// ImageSectionDelimiter separates extracted image placeholders from body
// text in the normalized output, so image changes diff independently of
// body reordering.
const ImageSectionDelimiter = "--- images ---"

// compiledRule pairs a redaction rule with its compiled pattern.
type compiledRule struct {
	name    string
	pattern *regexp.Regexp
}

// Normalizer turns raw fetched markup into a stable, comparable sequence of
// text lines. The transform is deterministic: identical markup always
// normalizes to identical output.
type Normalizer struct {
	cfg   config.NormalizerConfig
	rules []compiledRule
}

// NormalizerBuilder provides a fluent interface for creating Normalizer
type NormalizerBuilder struct {
	cfg config.NormalizerConfig
}

// NewNormalizerBuilder creates a new builder
func NewNormalizerBuilder() *NormalizerBuilder {
	return &NormalizerBuilder{
		cfg: config.NewDefaultNormalizerConfig(),
	}
}

// WithConfig sets the normalizer configuration
func (b *NormalizerBuilder) WithConfig(cfg config.NormalizerConfig) *NormalizerBuilder {
	b.cfg = cfg
	return b
}

// Build creates a new Normalizer instance, compiling all redaction rules.
func (b *NormalizerBuilder) Build() (*Normalizer, error) {
	rules := make([]compiledRule, 0, len(b.cfg.RedactionRules))
	for _, rule := range b.cfg.RedactionRules {
		compiled, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, common.NewValidationError("redaction_rules", rule.Pattern,
				"pattern '"+rule.Name+"' does not compile")
		}
		rules = append(rules, compiledRule{name: rule.Name, pattern: compiled})
	}

	return &Normalizer{
		cfg:   b.cfg,
		rules: rules,
	}, nil
}

// NewNormalizer creates a Normalizer from the given configuration.
func NewNormalizer(cfg config.NormalizerConfig) (*Normalizer, error) {
	return NewNormalizerBuilder().WithConfig(cfg).Build()
}

// Normalize applies the full normalization pipeline to raw markup and
// returns the ordered sequence of normalized text lines.
func (n *Normalizer) Normalize(markup string) []string {
	// 1. Structural noise: script, style and comment blocks carry no
	//    comparable content.
	text := scriptBlockRe.ReplaceAllString(markup, "")
	text = styleBlockRe.ReplaceAllString(text, "")
	text = commentBlockRe.ReplaceAllString(text, "")

	// 2. Volatile tokens are removed outright so they cannot survive into
	//    the whitespace-normalized output.
	text = n.redact(text)

	// 3. Image references become textual placeholders before tags are
	//    stripped, so image changes remain detectable as text.
	var images []string
	if n.cfg.ExtractImages {
		images = extractImagePlaceholders(text)
	}

	// 4.-5. Tag stripping and entity decoding.
	text = tagRe.ReplaceAllString(text, "")
	text = entityReplacer.Replace(text)

	// 6. Whitespace canonicalization: collapse horizontal runs, trim lines,
	//    drop empties.
	text = hspaceRe.ReplaceAllString(text, " ")
	lines := make([]string, 0, strings.Count(text, "\n")+1)
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		// 7. Overlong lines re-wrap at sentence boundaries so diffs operate
		//    on semantically sized units.
		lines = append(lines, n.wrapLine(line)...)
	}

	// 8. Image placeholders trail the body in a delimited section.
	if len(images) > 0 {
		lines = append(lines, ImageSectionDelimiter)
		lines = append(lines, images...)
	}

	return lines
}

// redact removes every span matched by the configured volatile-token rules.
// Rules apply in their configured order.
func (n *Normalizer) redact(text string) string {
	for _, rule := range n.rules {
		text = rule.pattern.ReplaceAllString(text, "")
	}
	return text
}

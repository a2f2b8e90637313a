package normalizer

import (
	"strings"
	"testing"

	"github.com/akonuma/competitor-monitor/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	n, err := NewNormalizer(config.NewDefaultNormalizerConfig())
	require.NoError(t, err)
	return n
}

func TestNormalizerBuilder_InvalidPattern(t *testing.T) {
	cfg := config.NewDefaultNormalizerConfig()
	cfg.RedactionRules = append(cfg.RedactionRules, config.RedactionRule{
		Name:    "broken",
		Pattern: `[unclosed`,
	})

	_, err := NewNormalizerBuilder().WithConfig(cfg).Build()
	assert.Error(t, err)
}

func TestNormalize_StripsScriptStyleAndComments(t *testing.T) {
	n := newTestNormalizer(t)

	markup := `<html><head>
		<SCRIPT type="text/javascript">var x = "<p>not content</p>";</SCRIPT>
		<style>
			body { color: red; }
		</style>
	</head><body>
	<!-- build marker
	     spanning lines -->
	<p>Visible text</p>
	</body></html>`

	lines := n.Normalize(markup)

	assert.Equal(t, []string{"Visible text"}, lines)
}

func TestNormalize_Deterministic(t *testing.T) {
	n := newTestNormalizer(t)

	markup := `<div><p>Price: $10</p><img src="/a.png" alt="product"><p>In stock.</p></div>`

	first := n.Normalize(markup)
	second := n.Normalize(markup)

	assert.Equal(t, first, second)
	assert.Equal(t, strings.Join(first, "\n"), strings.Join(second, "\n"))
}

func TestNormalize_RedactsVolatileTokens(t *testing.T) {
	n := newTestNormalizer(t)

	withToken := `<div data-timestamp="1699999999"><p>Body text</p><input name="csrf_token" value="abc123DEF456"></div>`
	otherToken := `<div data-timestamp="1700000000"><p>Body text</p><input name="csrf_token" value="zzz999XYZ000"></div>`

	assert.Equal(t, n.Normalize(withToken), n.Normalize(otherToken))
}

func TestNormalize_RedactionRemovesSpanEntirely(t *testing.T) {
	n := newTestNormalizer(t)

	markup := `<p>deadbeefdeadbeefdeadbeef attached</p>`
	lines := n.Normalize(markup)

	require.Len(t, lines, 1)
	// The hex ID is gone, and its removal leaves no doubled whitespace.
	assert.Equal(t, "attached", lines[0])
}

func TestNormalize_ImagePlaceholders(t *testing.T) {
	n := newTestNormalizer(t)

	markup := `<p>Intro</p><img src="/logo.png" alt="Company logo"><img src="/banner.jpg">`
	lines := n.Normalize(markup)

	require.Len(t, lines, 4)
	assert.Equal(t, "Intro", lines[0])
	assert.Equal(t, ImageSectionDelimiter, lines[1])
	assert.Equal(t, "[IMAGE: /logo.png] (alt: Company logo)", lines[2])
	assert.Equal(t, "[IMAGE: /banner.jpg]", lines[3])
}

func TestNormalize_ImageExtractionDisabled(t *testing.T) {
	cfg := config.NewDefaultNormalizerConfig()
	cfg.ExtractImages = false
	n, err := NewNormalizer(cfg)
	require.NoError(t, err)

	lines := n.Normalize(`<p>Intro</p><img src="/logo.png" alt="Company logo">`)

	assert.Equal(t, []string{"Intro"}, lines)
}

func TestNormalize_DecodesFixedEntitySet(t *testing.T) {
	n := newTestNormalizer(t)

	lines := n.Normalize(`<p>Fish&nbsp;&amp;&nbsp;Chips &lt;fresh&gt; &quot;daily&quot; &#39;here&#39;</p>`)

	require.Len(t, lines, 1)
	assert.Equal(t, `Fish & Chips <fresh> "daily" 'here'`, lines[0])
}

func TestNormalize_CollapsesWhitespaceAndDropsEmptyLines(t *testing.T) {
	n := newTestNormalizer(t)

	markup := "<p>first \t  words</p>\n\n\n   \n<p>second</p>"
	lines := n.Normalize(markup)

	assert.Equal(t, []string{"first words", "second"}, lines)
}

func TestNormalize_WrapsOverlongLinesAtSentences(t *testing.T) {
	n := newTestNormalizer(t)

	sentence := strings.Repeat("word ", 12) + "end." // ~65 chars
	markup := "<p>" + sentence + " " + sentence + "</p>"

	lines := n.Normalize(markup)

	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.True(t, strings.HasSuffix(line, "end."))
	}
}

func TestNormalize_ShortLinesNotWrapped(t *testing.T) {
	n := newTestNormalizer(t)

	lines := n.Normalize("<p>One. Two. Three.</p>")

	assert.Equal(t, []string{"One. Two. Three."}, lines)
}

func TestWrapLine_FullWidthTerminators(t *testing.T) {
	n := newTestNormalizer(t)

	first := strings.Repeat("あ", 60) + "。"
	second := strings.Repeat("い", 60) + "。"
	lines := n.wrapLine(first + second)

	require.Len(t, lines, 2)
	assert.Equal(t, first, lines[0])
	assert.Equal(t, second, lines[1])
}

func TestSplitSentences_NoTerminator(t *testing.T) {
	sentences := splitSentences("no terminator here")
	assert.Equal(t, []string{"no terminator here"}, sentences)
}

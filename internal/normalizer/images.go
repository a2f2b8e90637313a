package normalizer

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractImagePlaceholders walks the markup in document order and renders a
// textual placeholder for every image with a source attribute. Parsing
// failures are treated as "no images": the body text pipeline is regex-based
// and does not depend on the markup being parseable.
func extractImagePlaceholders(markup string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	var placeholders []string
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		src, ok := sel.Attr("src")
		src = strings.TrimSpace(src)
		if !ok || src == "" {
			return
		}

		alt := strings.TrimSpace(sel.AttrOr("alt", ""))
		if alt != "" {
			placeholders = append(placeholders, fmt.Sprintf("[IMAGE: %s] (alt: %s)", src, alt))
			return
		}
		placeholders = append(placeholders, fmt.Sprintf("[IMAGE: %s]", src))
	})

	return placeholders
}

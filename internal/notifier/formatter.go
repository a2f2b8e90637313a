package notifier

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/akonuma/competitor-monitor/internal/models"
)

// changeThemeColor matches the Teams accent blue.
const changeThemeColor = "0078D4"

// FormatChangeReportCard builds the Teams MessageCard payload for a run's
// change reports. Each report becomes one fact: the URL as the name, the
// rendered diff summary (truncated to maxSummaryLength characters) as the
// value.
func FormatChangeReportCard(reports []models.ChangeReport, maxSummaryLength int, now time.Time) MessageCard {
	facts := make([]MessageCardFact, 0, len(reports))
	for _, report := range reports {
		facts = append(facts, MessageCardFact{
			Name:  report.URL,
			Value: truncateSummary(report.Summary, maxSummaryLength),
		})
	}

	title := fmt.Sprintf("🔔 Site changes detected (%d)", len(reports))
	return MessageCard{
		Type:       "MessageCard",
		Context:    "https://schema.org/extensions",
		Summary:    fmt.Sprintf("Site changes detected (%d)", len(reports)),
		ThemeColor: changeThemeColor,
		Title:      title,
		Sections: []MessageCardSection{
			{
				ActivityTitle:    "Changed pages",
				ActivitySubtitle: fmt.Sprintf("Detected at: %s", now.UTC().Format("2006-01-02 15:04:05 UTC")),
				Facts:            facts,
			},
		},
	}
}

// truncateSummary bounds a rendered summary for embedding in a fact value,
// cutting on a rune boundary.
func truncateSummary(summary string, maxLength int) string {
	if maxLength <= 0 || len(summary) <= maxLength {
		return summary
	}
	cut := maxLength
	for cut > 0 && !utf8.RuneStart(summary[cut]) {
		cut--
	}
	return summary[:cut] + "\n... (truncated)"
}

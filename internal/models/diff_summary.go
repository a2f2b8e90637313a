package models

import (
	"fmt"
	"strings"
)

// DiffSummary holds the bounded result of a line-level comparison between two
// normalized snapshots. Removed and Added preserve the relative line order of
// their source texts. When either side was truncated, the corresponding
// Omitted counter records how many lines were dropped.
type DiffSummary struct {
	Removed        []string
	Added          []string
	OmittedRemoved int
	OmittedAdded   int

	// Identical is the "no change" sentinel: set when the two texts are
	// element-wise identical or differ only in blank lines, even if the
	// caller believed the fingerprints disagreed.
	Identical bool
}

// HasChanges reports whether the summary carries any renderable change.
func (ds *DiffSummary) HasChanges() bool {
	return !ds.Identical && (len(ds.Removed) > 0 || len(ds.Added) > 0)
}

// Render produces the human-readable summary: a "removed content" section
// followed by an "added content" section, each a bulleted list. Empty
// sections are omitted; a blank line separates the sections when both are
// present.
func (ds *DiffSummary) Render() string {
	if ds.Identical || !ds.HasChanges() {
		return "no change"
	}

	var sections []string

	if len(ds.Removed) > 0 {
		sections = append(sections, renderSection("removed content", ds.Removed, ds.OmittedRemoved))
	}
	if len(ds.Added) > 0 {
		sections = append(sections, renderSection("added content", ds.Added, ds.OmittedAdded))
	}

	return strings.Join(sections, "\n\n")
}

func renderSection(label string, lines []string, omitted int) string {
	var sb strings.Builder
	sb.WriteString(label)
	sb.WriteString(":")
	for _, line := range lines {
		sb.WriteString("\n- ")
		sb.WriteString(line)
	}
	if omitted > 0 {
		sb.WriteString(fmt.Sprintf("\n- ... (%d more lines omitted)", omitted))
	}
	return sb.String()
}

package differ

import (
	"strings"

	"github.com/akonuma/competitor-monitor/internal/common"
	"github.com/akonuma/competitor-monitor/internal/models"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffSummarizer computes a line-level diff between two normalized texts and
// reduces it to a bounded removed/added summary.
type DiffSummarizer struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewDiffSummarizer creates a new DiffSummarizer.
func NewDiffSummarizer() *DiffSummarizer {
	return &DiffSummarizer{
		dmp: diffmatchpatch.New(),
	}
}

// Summarize compares two line sequences and partitions the changed lines
// into removed and added, each preserving its source order, excluding blank
// lines, and independently capped at limit entries. Element-wise identical
// inputs, and diffs consisting only of blank-line changes, yield the
// Identical sentinel even if the caller believed the fingerprints differed.
func (ds *DiffSummarizer) Summarize(oldLines, newLines []string, limit int) (*models.DiffSummary, error) {
	if limit <= 0 {
		return nil, common.NewValidationError("limit", limit, "truncation limit must be positive")
	}

	if equalLines(oldLines, newLines) {
		return &models.DiffSummary{Identical: true}, nil
	}

	removed, added := ds.diffLines(oldLines, newLines)

	// Fingerprints can disagree while the visible lines do not, e.g. after a
	// redaction boundary effect. Blank-only changes fall out here too since
	// diffLines drops blank lines.
	if len(removed) == 0 && len(added) == 0 {
		return &models.DiffSummary{Identical: true}, nil
	}

	summary := &models.DiffSummary{}
	summary.Removed, summary.OmittedRemoved = truncateLines(removed, limit)
	summary.Added, summary.OmittedAdded = truncateLines(added, limit)
	return summary, nil
}

// diffLines runs a line-mode diff and collects deleted and inserted lines in
// their original relative order, skipping blanks.
func (ds *DiffSummarizer) diffLines(oldLines, newLines []string) (removed, added []string) {
	oldText := joinForDiff(oldLines)
	newText := joinForDiff(newLines)

	chars1, chars2, lineArray := ds.dmp.DiffLinesToChars(oldText, newText)
	diffs := ds.dmp.DiffMain(chars1, chars2, false)
	diffs = ds.dmp.DiffCharsToLines(diffs, lineArray)

	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			removed = append(removed, splitNonBlank(diff.Text)...)
		case diffmatchpatch.DiffInsert:
			added = append(added, splitNonBlank(diff.Text)...)
		}
	}
	return removed, added
}

// joinForDiff joins lines with a trailing newline so the line-mode diff
// treats the final line as complete.
func joinForDiff(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// splitNonBlank splits a diff chunk into its lines, dropping blanks.
func splitNonBlank(chunk string) []string {
	var lines []string
	for _, raw := range strings.Split(chunk, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// truncateLines caps lines at limit and reports how many were dropped.
func truncateLines(lines []string, limit int) ([]string, int) {
	if len(lines) <= limit {
		return lines, 0
	}
	return lines[:limit], len(lines) - limit
}

// equalLines reports element-wise equality of two line sequences.
func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

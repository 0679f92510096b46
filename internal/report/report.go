// Package report renders comparison results for the terminal.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"cvmatch/internal/resumeapi"
)

// KeywordPlaceholder is shown when a keyword list is empty.
const KeywordPlaceholder = "—"

// Badges for the per-row status column.
const (
	BadgeOK    = "OK"
	BadgeError = "Error"
)

// Keywords joins a keyword list for display, falling back to the placeholder.
func Keywords(list []string) string {
	if len(list) == 0 {
		return KeywordPlaceholder
	}

	return strings.Join(list, ", ")
}

// Badge returns the status column value for a result row.
func Badge(m *resumeapi.ResumeMatch) string {
	if m.Failed() {
		return BadgeError
	}

	return BadgeOK
}

// Percent formats an optional match percentage.
func Percent(p *float64) string {
	if p == nil {
		return KeywordPlaceholder
	}

	return strconv.FormatFloat(*p, 'f', -1, 64)
}

// WriteSummary prints the aggregate block: compared-file count, average
// match, best match when present, and the comparison mode used.
func WriteSummary(w io.Writer, s *resumeapi.Summary) {
	fmt.Fprintf(w, "Compared files:  %d\n", s.Count)
	fmt.Fprintf(w, "Average match:   %s%%\n", Percent(s.AverageMatch))
	if s.BestMatch != nil {
		fmt.Fprintf(w, "Best match:      %s (%s%%)\n", s.BestMatch.FileName, Percent(&s.BestMatch.MatchPercentage))
	}
	fmt.Fprintf(w, "Comparison type: %s\n", s.ComparisonType)
}

// WriteTable prints one row per result. Rows are independent: an entry with a
// per-file error still renders alongside the successful ones.
func WriteTable(w io.Writer, results []*resumeapi.ResumeMatch) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "FILE\tMATCH %\tMATCHED\tUNMATCHED\tSTATUS")
	for _, m := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			m.FileName,
			Percent(m.MatchPercentage),
			Keywords(m.MatchedKeywords),
			Keywords(m.UnmatchedKeywords),
			Badge(m),
		)
	}

	return tw.Flush()
}

// DumpToTmpFile writes the raw response to a temp file for later inspection.
func DumpToTmpFile(resp *resumeapi.CompareResponse) (string, error) {
	file, err := os.CreateTemp("", "comparison_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return "", err
	}
	return file.Name(), nil
}

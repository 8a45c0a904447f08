package report

import (
	"regexp"
	"strings"
	"time"

	"github.com/pfrederiksen/tk8-stats/internal/match"
)

const (
	// CombinedTitle names workbooks that aggregate every page of a run
	CombinedTitle = "TK8_PlayData"
	// Extension is the file extension of generated reports
	Extension = ".xlsx"

	timestampLayout = "20060102_150405"
)

var invalidFileChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// CleanFileName replaces characters that are invalid in file names with underscores
func CleanFileName(name string) string {
	return invalidFileChars.ReplaceAllString(name, "_")
}

// FileName builds "<title>_<start>_<end>_<generated>.xlsx",
// e.g. "MyPlayer_2024_01_01_2024_01_31_20240201_093000.xlsx".
func FileName(title string, dr match.DateRange, generated time.Time) string {
	title = strings.TrimSpace(CleanFileName(title))
	if title == "" {
		title = CombinedTitle
	}
	return title + "_" + dr.String() + "_" + generated.Format(timestampLayout) + Extension
}

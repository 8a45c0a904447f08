package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/pfrederiksen/tk8-stats/internal/config"
	"github.com/pfrederiksen/tk8-stats/internal/pipeline"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// WriteOutput writes the run summary in the specified format
func WriteOutput(w io.Writer, summary *pipeline.Summary, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, summary)
	case FormatText:
		return writeText(w, summary, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the summary as JSON
func writeJSON(w io.Writer, summary *pipeline.Summary) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}

// writeText outputs the summary as human-readable text
func writeText(w io.Writer, summary *pipeline.Summary, verbose bool) error {
	fmt.Fprintf(w, "Matches from %s to %s (%s)\n", summary.Start, summary.End, summary.Mode)

	if len(summary.Pages) == 0 {
		fmt.Fprintln(w, "No URLs processed.")
		return nil
	}

	for _, page := range summary.Pages {
		if page.Failed() {
			fmt.Fprintf(w, "  FAIL %s: %s\n", page.URL, page.Error)
			continue
		}

		fmt.Fprintf(w, "  OK   %s: %d rows, %d in range\n", page.Title, page.Rows, page.InRange)
		if page.File != "" {
			fmt.Fprintf(w, "       -> %s\n", page.File)
		}
		if verbose {
			fmt.Fprintf(w, "       URL: %s\n", page.URL)
			if page.Skipped > 0 {
				fmt.Fprintf(w, "       Short rows: %d\n", page.Skipped)
			}
			writeUnknown(w, "       ", page.Unknown)
		}
	}

	if summary.Error != "" {
		fmt.Fprintf(w, "\nError: %s\n", summary.Error)
	}
	if verbose {
		writeUnknown(w, "", summary.Unknown)
		fmt.Fprintf(w, "Run ID: %s\n", summary.RunID)
	}

	fmt.Fprintf(w, "\nTotal: %d file(s) written, %d of %d URLs failed\n",
		len(summary.Files), summary.Failed(), len(summary.Pages))
	if summary.Mode == config.ModeCombined {
		for _, f := range summary.Files {
			fmt.Fprintf(w, "  %s\n", f)
		}
	}

	return nil
}

func writeUnknown(w io.Writer, indent string, unknown map[string]int) {
	if len(unknown) == 0 {
		return
	}
	tokens := make([]string, 0, len(unknown))
	for token := range unknown {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	for _, token := range tokens {
		fmt.Fprintf(w, "%sUnrecognized result %q: %d\n", indent, token, unknown[token])
	}
}

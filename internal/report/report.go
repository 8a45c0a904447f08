// Package report turns accumulated statistics into spreadsheet reports.
//
// A report has a "Total" sheet tallying every opponent across subjects and one
// sheet per roster player that has at least one tally. Rows follow roster order
// and only opponents with recorded matches appear; each sheet ends with a Total
// row whose win rate is recomputed from the summed counts.
package report

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/tk8-stats/internal/match"
	"github.com/pfrederiksen/tk8-stats/internal/stats"
)

// TotalSheet names the cross-player sheet and the trailing row on every sheet
const TotalSheet = "Total"

// StatsHeader is the header row of every statistics sheet
var StatsHeader = []string{"Opponent", "Wins", "Losses", "Draws", "Win Rate"}

// Sheet is one worksheet: a header row followed by data rows
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]interface{}
}

// Report is an ordered set of sheets plus metadata for the workbook
type Report struct {
	Title  string
	Range  match.DateRange
	Sheets []Sheet
}

// Options controls optional report content
type Options struct {
	// RawSheets adds one sheet per category with every in-range record
	RawSheets bool
}

// Build renders the accumulator into a Report
func Build(title string, dr match.DateRange, acc *stats.Accumulator, opts Options) *Report {
	roster := acc.Roster()
	names := newSheetNames()

	rep := &Report{
		Title: title,
		Range: dr,
	}

	rep.Sheets = append(rep.Sheets, statsSheet(names.claim(TotalSheet), roster, acc.Global()))

	table := acc.Table()
	for _, player := range roster.Names() {
		opponents, ok := table[player]
		if !ok || len(opponents) == 0 {
			continue
		}
		rep.Sheets = append(rep.Sheets, statsSheet(names.claim(player), roster, opponents))
	}

	if opts.RawSheets {
		for _, category := range acc.Categories() {
			rep.Sheets = append(rep.Sheets, rawSheet(names.claim("Raw "+category), acc.Raw(category)))
		}
	}

	return rep
}

// statsSheet lists opponents in roster order followed by a Total row
func statsSheet(name string, roster match.Roster, tallies stats.Global) Sheet {
	sheet := Sheet{
		Name:   name,
		Header: StatsHeader,
	}

	var total stats.Tally
	for _, opponent := range roster.Names() {
		tally, ok := tallies[opponent]
		if !ok {
			continue
		}
		sheet.Rows = append(sheet.Rows, statsRow(opponent, *tally))
		total.Add(*tally)
	}
	sheet.Rows = append(sheet.Rows, statsRow(TotalSheet, total))

	return sheet
}

func statsRow(label string, t stats.Tally) []interface{} {
	return []interface{}{label, t.Wins, t.Losses, t.Draws, t.FormatWinRate()}
}

// rawColumns labels the cell positions whose meaning is known
var rawColumns = map[int]string{
	match.CellTimestamp: "Date",
	match.CellCategory:  "Character",
	match.CellResult:    "Result",
	match.CellOpponent:  "Opponent",
}

func rawSheet(name string, records []match.Record) Sheet {
	width := 0
	for _, rec := range records {
		if rec.Len() > width {
			width = rec.Len()
		}
	}

	header := make([]string, width)
	for i := range header {
		if label, ok := rawColumns[i]; ok {
			header[i] = label
		} else {
			header[i] = fmt.Sprintf("Column %d", i+1)
		}
	}

	sheet := Sheet{Name: name, Header: header}
	for _, rec := range records {
		cells := rec.Cells()
		row := make([]interface{}, len(cells))
		for i, c := range cells {
			row[i] = c
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet
}

// SheetNames returns sheet names in order
func (r *Report) SheetNames() []string {
	names := make([]string, len(r.Sheets))
	for i, s := range r.Sheets {
		names[i] = s.Name
	}
	return names
}

const maxSheetName = 31

var sheetNameReplacer = strings.NewReplacer(
	":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_",
)

// SheetName makes name acceptable to spreadsheet applications: no : \ / ? * [ ],
// no leading or trailing apostrophe, at most 31 characters.
func SheetName(name string) string {
	name = strings.Trim(sheetNameReplacer.Replace(match.CleanText(name)), "'")
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	if name == "" {
		name = "Sheet"
	}
	return name
}

// sheetNames hands out unique sheet names; comparison is case-insensitive
// like spreadsheet applications.
type sheetNames map[string]bool

func newSheetNames() sheetNames {
	return make(sheetNames)
}

func (s sheetNames) claim(name string) string {
	base := SheetName(name)
	candidate := base
	for n := 2; s[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		r := []rune(base)
		if len(r)+len(suffix) > maxSheetName {
			r = r[:maxSheetName-len(suffix)]
		}
		candidate = string(r) + suffix
	}
	s[strings.ToLower(candidate)] = true
	return candidate
}

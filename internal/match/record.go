package match

import (
	"regexp"
	"strings"
)

// Cell positions within a match-history row
const (
	CellTimestamp = 0
	CellCategory  = 1
	CellResult    = 2
	CellOpponent  = 5
)

// Outcome is the result of a single match from the subject player's side
type Outcome string

const (
	Win  Outcome = "WIN"
	Lose Outcome = "LOSE"
	Draw Outcome = "DRAW"
)

// ParseOutcome maps a result token to an Outcome.
// Returns false for anything other than WIN, LOSE or DRAW.
func ParseOutcome(token string) (Outcome, bool) {
	switch Outcome(strings.ToUpper(token)) {
	case Win:
		return Win, true
	case Lose:
		return Lose, true
	case Draw:
		return Draw, true
	}
	return "", false
}

// Record is one table row from a match-history page.
// Records are never modified in place; use WithTimestamp to get a rewritten copy.
type Record struct {
	cells []string
}

// NewRecord creates a Record from already-normalized cell values
func NewRecord(cells []string) Record {
	c := make([]string, len(cells))
	copy(c, cells)
	return Record{cells: c}
}

// Cells returns a copy of the record's cell values
func (r Record) Cells() []string {
	c := make([]string, len(r.cells))
	copy(c, r.cells)
	return c
}

// Len returns the number of cells in the record
func (r Record) Len() int {
	return len(r.cells)
}

func (r Record) cell(i int) (string, bool) {
	if i < 0 || i >= len(r.cells) {
		return "", false
	}
	return r.cells[i], true
}

// Timestamp returns the first cell, the match date as displayed
func (r Record) Timestamp() string {
	ts, _ := r.cell(CellTimestamp)
	return ts
}

// Category returns the subject player key (the second cell)
func (r Record) Category() string {
	c, _ := r.cell(CellCategory)
	return c
}

// ResultToken returns the second whitespace-separated token of the result cell,
// e.g. "WIN" for "1 WIN 2-0".
func (r Record) ResultToken() (string, bool) {
	c, ok := r.cell(CellResult)
	if !ok {
		return "", false
	}
	fields := strings.Fields(c)
	if len(fields) < 2 {
		return "", false
	}
	return fields[1], true
}

// Opponent returns the opponent name (the sixth cell)
func (r Record) Opponent() (string, bool) {
	return r.cell(CellOpponent)
}

// WithTimestamp returns a copy of the record with the first cell replaced
func (r Record) WithTimestamp(ts string) Record {
	c := r.Cells()
	if len(c) > 0 {
		c[CellTimestamp] = ts
	}
	return Record{cells: c}
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// CleanText collapses whitespace runs (including newlines) into single spaces
// and trims both ends.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

package stats

import (
	"github.com/pfrederiksen/tk8-stats/internal/logger"
	"github.com/pfrederiksen/tk8-stats/internal/match"
)

// Accumulator collects in-range records into statistics for one report.
// Only opponents on the roster contribute to tallies; every record is kept
// in the raw per-category dump.
type Accumulator struct {
	roster  match.Roster
	table   Table
	global  Global
	raw     map[string][]match.Record
	order   []string
	unknown map[string]int
	skipped int
	added   int
}

// NewAccumulator creates an empty accumulator gated by roster
func NewAccumulator(roster match.Roster) *Accumulator {
	return &Accumulator{
		roster:  roster,
		table:   make(Table),
		global:  make(Global),
		raw:     make(map[string][]match.Record),
		unknown: make(map[string]int),
	}
}

// Add folds one in-range record into the statistics
func (a *Accumulator) Add(rec match.Record) {
	a.added++

	key := rec.Category()
	if _, seen := a.raw[key]; !seen {
		a.order = append(a.order, key)
	}
	a.raw[key] = append(a.raw[key], rec)

	opponent, ok := rec.Opponent()
	if !ok {
		a.skipped++
		return
	}
	token, ok := rec.ResultToken()
	if !ok {
		a.skipped++
		return
	}
	if !a.roster.Contains(opponent) {
		return
	}

	outcome, ok := match.ParseOutcome(token)
	if !ok {
		a.unknown[token]++
		logger.Warn("Unrecognized result token", logger.Fields{
			"token":    token,
			"subject":  key,
			"opponent": opponent,
		})
		return
	}

	a.table.Tally(key, opponent).Record(outcome)
	a.global.Tally(opponent).Record(outcome)
}

// Table returns the per-subject statistics
func (a *Accumulator) Table() Table {
	return a.table
}

// Global returns the per-opponent statistics across all subjects
func (a *Accumulator) Global() Global {
	return a.global
}

// Roster returns the roster the accumulator was created with
func (a *Accumulator) Roster() match.Roster {
	return a.roster
}

// Categories returns category keys in first-seen order
func (a *Accumulator) Categories() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// Raw returns every record added under category, in insertion order
func (a *Accumulator) Raw(category string) []match.Record {
	return a.raw[category]
}

// Unknown returns counts of result tokens that were not WIN, LOSE or DRAW
func (a *Accumulator) Unknown() map[string]int {
	out := make(map[string]int, len(a.unknown))
	for k, v := range a.unknown {
		out[k] = v
	}
	return out
}

// Skipped returns the number of records too short to carry a result and opponent
func (a *Accumulator) Skipped() int {
	return a.skipped
}

// Added returns the number of records folded in
func (a *Accumulator) Added() int {
	return a.added
}

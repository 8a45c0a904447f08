// Package stats accumulates win/loss/draw tallies per (subject, opponent) pair.
package stats

import (
	"fmt"

	"github.com/pfrederiksen/tk8-stats/internal/match"
)

// Tally counts outcomes for one pair. Total always equals Wins+Losses+Draws.
type Tally struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
	Total  int `json:"total"`
}

// Record increments the counter for outcome along with Total
func (t *Tally) Record(outcome match.Outcome) {
	switch outcome {
	case match.Win:
		t.Wins++
	case match.Lose:
		t.Losses++
	case match.Draw:
		t.Draws++
	default:
		return
	}
	t.Total++
}

// Add folds other into t
func (t *Tally) Add(other Tally) {
	t.Wins += other.Wins
	t.Losses += other.Losses
	t.Draws += other.Draws
	t.Total += other.Total
}

// WinRate returns wins/total*100, or 0 when there are no matches
func (t Tally) WinRate() float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Wins) / float64(t.Total) * 100
}

// FormatWinRate renders the win rate with two decimals and a percent sign
func (t Tally) FormatWinRate() string {
	return fmt.Sprintf("%.2f%%", t.WinRate())
}

// Global maps an opponent to a tally aggregated across every subject
type Global map[string]*Tally

// Tally returns the tally for opponent, creating a zero one if needed
func (g Global) Tally(opponent string) *Tally {
	t, ok := g[opponent]
	if !ok {
		t = &Tally{}
		g[opponent] = t
	}
	return t
}

// Table maps a subject player to per-opponent tallies
type Table map[string]Global

// Tally returns the tally for (subject, opponent), creating a zero one if needed
func (t Table) Tally(subject, opponent string) *Tally {
	opponents, ok := t[subject]
	if !ok {
		opponents = make(Global)
		t[subject] = opponents
	}
	return opponents.Tally(opponent)
}

// Lookup returns the tally for (subject, opponent) without creating it
func (t Table) Lookup(subject, opponent string) (Tally, bool) {
	opponents, ok := t[subject]
	if !ok {
		return Tally{}, false
	}
	tally, ok := opponents[opponent]
	if !ok {
		return Tally{}, false
	}
	return *tally, true
}

package stats

import (
	"testing"

	"github.com/pfrederiksen/tk8-stats/internal/match"
)

func row(subject, result, opponent string) match.Record {
	return match.NewRecord([]string{"2024-03-05 09:30", subject, result, "Ranked", "Someone", opponent})
}

func TestAccumulator_SamePairTwice(t *testing.T) {
	acc := NewAccumulator(match.DefaultRoster())
	acc.Add(row("Jin", "1 WIN", "Kazuya"))
	acc.Add(row("Jin", "2 WIN", "Kazuya"))

	got, ok := acc.Table().Lookup("Jin", "Kazuya")
	if !ok {
		t.Fatal("no tally for Jin vs Kazuya")
	}
	want := Tally{Wins: 2, Total: 2}
	if got != want {
		t.Errorf("tally = %+v, want %+v", got, want)
	}
	if got.FormatWinRate() != "100.00%" {
		t.Errorf("win rate = %s, want 100.00%%", got.FormatWinRate())
	}

	global := acc.Global()["Kazuya"]
	if global == nil || *global != want {
		t.Errorf("global tally = %+v, want %+v", global, want)
	}
}

func TestAccumulator_UnknownOpponent(t *testing.T) {
	acc := NewAccumulator(match.DefaultRoster())
	acc.Add(row("Jin", "1 WIN", "Akuma"))
	acc.Add(row("Jin", "1 LOSE", "Nina"))

	if _, ok := acc.Table().Lookup("Jin", "Akuma"); ok {
		t.Error("opponent outside roster present in table")
	}
	if _, ok := acc.Global()["Akuma"]; ok {
		t.Error("opponent outside roster present in global tally")
	}
	if len(acc.Raw("Jin")) != 2 {
		t.Errorf("raw dump has %d records, want 2", len(acc.Raw("Jin")))
	}
}

func TestAccumulator_UnknownResultToken(t *testing.T) {
	acc := NewAccumulator(match.DefaultRoster())
	acc.Add(row("Jin", "1 FORFEIT", "Nina"))
	acc.Add(row("Jin", "1 DRAW", "Nina"))

	got, _ := acc.Table().Lookup("Jin", "Nina")
	if got != (Tally{Draws: 1, Total: 1}) {
		t.Errorf("tally = %+v, want one draw", got)
	}
	if acc.Unknown()["FORFEIT"] != 1 {
		t.Errorf("Unknown() = %v, want FORFEIT:1", acc.Unknown())
	}
}

func TestAccumulator_ShortRows(t *testing.T) {
	acc := NewAccumulator(match.DefaultRoster())
	acc.Add(match.NewRecord([]string{"2024-03-05 09:30", "Jin"}))
	acc.Add(match.NewRecord([]string{"2024-03-05 09:30", "Jin", "WIN", "a", "b", "Nina"}))

	if acc.Skipped() != 2 {
		t.Errorf("Skipped() = %d, want 2", acc.Skipped())
	}
	if len(acc.Table()) != 0 {
		t.Errorf("table = %v, want empty", acc.Table())
	}
	if acc.Added() != 2 {
		t.Errorf("Added() = %d, want 2", acc.Added())
	}
}

func TestAccumulator_TotalInvariant(t *testing.T) {
	acc := NewAccumulator(match.DefaultRoster())
	results := []string{"1 WIN", "1 LOSE", "1 DRAW", "1 WIN", "1 ???"}
	opponents := []string{"Nina", "Law", "Paul", "Nina", "Law"}
	for i := range results {
		acc.Add(row("Jin", results[i], opponents[i]))
		acc.Add(row("Kazuya", results[i], opponents[i]))
	}

	for subject, opponents := range acc.Table() {
		for opponent, tally := range opponents {
			if tally.Wins+tally.Losses+tally.Draws != tally.Total {
				t.Errorf("%s vs %s: %+v breaks total invariant", subject, opponent, *tally)
			}
		}
	}
	for opponent, tally := range acc.Global() {
		if tally.Wins+tally.Losses+tally.Draws != tally.Total {
			t.Errorf("global %s: %+v breaks total invariant", opponent, *tally)
		}
	}
}

func TestAccumulator_CategoryOrder(t *testing.T) {
	acc := NewAccumulator(match.DefaultRoster())
	acc.Add(row("Nina", "1 WIN", "Law"))
	acc.Add(row("Jin", "1 WIN", "Law"))
	acc.Add(row("Nina", "1 WIN", "Law"))

	got := acc.Categories()
	if len(got) != 2 || got[0] != "Nina" || got[1] != "Jin" {
		t.Errorf("Categories() = %v, want [Nina Jin]", got)
	}
}

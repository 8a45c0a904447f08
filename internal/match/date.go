package match

import (
	"fmt"
	"time"
)

const (
	// SourceLayout is how match-history pages print timestamps, e.g. "15 Jan 2024 13:45"
	SourceLayout = "2 Jan 2006 15:04"
	// DisplayLayout is the canonical form written to reports
	DisplayLayout = "2006-01-02 15:04"
	// FileDateLayout is used for date-range boundaries in output file names
	FileDateLayout = "2006_01_02"
)

// ParseTimestamp parses a source timestamp in UTC.
func ParseTimestamp(text string) (time.Time, error) {
	t, err := time.Parse(SourceLayout, text)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", text, err)
	}
	return t, nil
}

// NormalizeTimestamp rewrites a source timestamp into DisplayLayout.
// Unparseable input is returned unchanged.
func NormalizeTimestamp(text string) string {
	t, err := ParseTimestamp(text)
	if err != nil {
		return text
	}
	return t.Format(DisplayLayout)
}

// DateRange is an inclusive [Start, End] window. Both ends are compared at
// datetime resolution, so an End at midnight excludes later matches that day.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a range from two calendar dates at midnight UTC
func NewDateRange(startYear int, startMonth time.Month, startDay, endYear int, endMonth time.Month, endDay int) DateRange {
	return DateRange{
		Start: time.Date(startYear, startMonth, startDay, 0, 0, 0, 0, time.UTC),
		End:   time.Date(endYear, endMonth, endDay, 0, 0, 0, 0, time.UTC),
	}
}

// Contains reports whether t falls inside the range, inclusive at both ends
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Includes reports whether a source timestamp parses and falls inside the range.
// Unparseable timestamps are treated as out of range.
func (r DateRange) Includes(text string) bool {
	t, err := ParseTimestamp(text)
	if err != nil {
		return false
	}
	return r.Contains(t)
}

// Filter returns the record with its timestamp normalized when it is in range.
// The second return value is false for records outside the range or with an
// unparseable timestamp.
func (r DateRange) Filter(rec Record) (Record, bool) {
	ts := rec.Timestamp()
	if !r.Includes(ts) {
		return Record{}, false
	}
	return rec.WithTimestamp(NormalizeTimestamp(ts)), true
}

// String formats the range for file names, e.g. "2024_01_01_2024_01_31"
func (r DateRange) String() string {
	return r.Start.Format(FileDateLayout) + "_" + r.End.Format(FileDateLayout)
}

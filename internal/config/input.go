// Package config loads the run input file and optional settings.
//
// The input file is plain text:
//
//	2024, 01, 01
//	2024, 01, 31
//	https://example.com/player/1
//	https://example.com/player/2
//
// Line 1 is the start date, line 2 the end date, and every following non-blank
// line is a source URL. Settings (roster, output directory, fetch behavior,
// notification channel) come from an optional YAML file, with credentials read
// from the environment or a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/tk8-stats/internal/match"
)

// DefaultInputFile is read when no input path is given
const DefaultInputFile = "data.txt"

var (
	// ErrConfigMissing means the input file does not exist
	ErrConfigMissing = errors.New("input file not found")
	// ErrConfigMalformed means the input file has fewer than two lines
	ErrConfigMalformed = errors.New("input file must contain at least 2 lines")
	// ErrDateFormat means a date line is not a valid "YYYY, MM, DD" date
	ErrDateFormat = errors.New("date must be 'YYYY, MM, DD'")
	// ErrEmptyInput means no URLs were listed
	ErrEmptyInput = errors.New("URL list is empty")
)

// Input is the validated content of the input file
type Input struct {
	Range match.DateRange
	URLs  []string
}

// LoadInput reads and validates the input file at path
func LoadInput(path string) (*Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigMissing, path)
		}
		return nil, fmt.Errorf("reading input file: %w", err)
	}
	return ParseInput(string(data))
}

// ParseInput validates input file content
func ParseInput(content string) (*Input, error) {
	lines := splitLines(content)
	if len(lines) < 2 {
		return nil, ErrConfigMalformed
	}

	start, err := parseDate(lines[0])
	if err != nil {
		return nil, fmt.Errorf("start date: %w", err)
	}
	end, err := parseDate(lines[1])
	if err != nil {
		return nil, fmt.Errorf("end date: %w", err)
	}

	urls := make([]string, 0, len(lines)-2)
	for _, line := range lines[2:] {
		if line = strings.TrimSpace(line); line != "" {
			urls = append(urls, line)
		}
	}
	if len(urls) == 0 {
		return nil, ErrEmptyInput
	}

	return &Input{
		Range: match.DateRange{Start: start, End: end},
		URLs:  urls,
	}, nil
}

// splitLines splits content into lines; a trailing newline does not start a new line
func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// parseDate parses "YYYY, MM, DD" into midnight UTC, rejecting dates like Feb 30
func parseDate(line string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrDateFormat, line)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrDateFormat, line)
		}
		nums[i] = n
	}

	year, month, day := nums[0], time.Month(nums[1]), nums[2]
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if year < 1 || t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, fmt.Errorf("%w: %q is not a calendar date", ErrDateFormat, line)
	}
	return t, nil
}

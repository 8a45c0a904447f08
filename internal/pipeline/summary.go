package pipeline

import "time"

// PageResult records what happened to one source URL
type PageResult struct {
	URL     string         `json:"url"`
	Title   string         `json:"title,omitempty"`
	Rows    int            `json:"rows"`
	InRange int            `json:"in_range"`
	Skipped int            `json:"skipped_rows,omitempty"`
	Unknown map[string]int `json:"unknown_results,omitempty"`
	File    string         `json:"file,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// Failed reports whether the URL could not be processed
func (p PageResult) Failed() bool {
	return p.Error != ""
}

// Summary describes a finished run
type Summary struct {
	RunID      string         `json:"run_id"`
	Mode       string         `json:"mode"`
	Start      string         `json:"start_date"`
	End        string         `json:"end_date"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Pages      []PageResult   `json:"pages"`
	Files      []string       `json:"files"`
	Unknown    map[string]int `json:"unknown_results,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// Failed returns the number of URLs that could not be processed
func (s *Summary) Failed() int {
	n := 0
	for _, p := range s.Pages {
		if p.Failed() {
			n++
		}
	}
	return n
}

// Succeeded returns the number of URLs processed without error
func (s *Summary) Succeeded() int {
	return len(s.Pages) - s.Failed()
}

// OK reports whether every URL succeeded and the run-level write (if any) did too
func (s *Summary) OK() bool {
	return s.Failed() == 0 && s.Error == ""
}

// Package pipeline runs the fetch → extract → filter → aggregate → write sequence
// over every configured source URL.
//
// URLs are processed one at a time. A failure on one URL is logged and recorded in
// the run summary; the remaining URLs are still processed.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pfrederiksen/tk8-stats/internal/config"
	"github.com/pfrederiksen/tk8-stats/internal/logger"
	"github.com/pfrederiksen/tk8-stats/internal/match"
	"github.com/pfrederiksen/tk8-stats/internal/report"
	"github.com/pfrederiksen/tk8-stats/internal/scraper"
	"github.com/pfrederiksen/tk8-stats/internal/stats"
	"github.com/pfrederiksen/tk8-stats/internal/storage"
)

// PageFetcher fetches and parses one source page
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (*scraper.Page, error)
}

// Options shapes a run
type Options struct {
	Range     match.DateRange
	Roster    match.Roster
	Mode      string
	RawSheets bool
}

// Runner executes a batch over source URLs
type Runner struct {
	pages PageFetcher
	store *storage.Storage
	opts  Options
	now   func() time.Time
	runID string
}

// New creates a Runner. Reports are written into store.
func New(pages PageFetcher, store *storage.Storage, opts Options) *Runner {
	if opts.Mode == "" {
		opts.Mode = config.ModePerPage
	}
	if opts.Roster.Len() == 0 {
		opts.Roster = match.DefaultRoster()
	}
	return &Runner{
		pages: pages,
		store: store,
		opts:  opts,
		now:   time.Now,
		runID: uuid.NewString(),
	}
}

// RunID identifies this run in logs and workbook properties
func (r *Runner) RunID() string {
	return r.runID
}

// Run processes every URL and returns the summary. It never aborts on a single
// URL's failure; a canceled context marks the remaining URLs as skipped.
func (r *Runner) Run(ctx context.Context, urls []string) *Summary {
	summary := &Summary{
		RunID:     r.runID,
		Mode:      r.opts.Mode,
		StartedAt: r.now().UTC(),
		Start:     r.opts.Range.Start.Format("2006-01-02"),
		End:       r.opts.Range.End.Format("2006-01-02"),
	}

	logger.Info("Starting run", logger.Fields{
		"run_id": r.runID,
		"mode":   r.opts.Mode,
		"urls":   len(urls),
		"start":  summary.Start,
		"end":    summary.End,
	})

	var combined *stats.Accumulator
	if r.opts.Mode == config.ModeCombined {
		combined = stats.NewAccumulator(r.opts.Roster)
	}

	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			summary.Pages = append(summary.Pages, PageResult{URL: url, Error: fmt.Sprintf("skipped: %v", err)})
			continue
		}

		acc := combined
		if acc == nil {
			acc = stats.NewAccumulator(r.opts.Roster)
		}

		result := r.processPage(ctx, url, acc, combined == nil)
		summary.Pages = append(summary.Pages, result)
		if result.File != "" {
			summary.Files = append(summary.Files, result.File)
		}
	}

	if combined != nil && summary.Succeeded() > 0 {
		path, err := r.write(report.CombinedTitle, combined, true)
		if err != nil {
			logger.Error("Writing combined report failed", logger.Fields{"run_id": r.runID}, err)
			summary.Error = err.Error()
		} else {
			summary.Files = append(summary.Files, path)
			summary.Unknown = combined.Unknown()
		}
	}

	summary.FinishedAt = r.now().UTC()
	logger.Info("Run finished", logger.Fields{
		"run_id":   r.runID,
		"pages":    len(summary.Pages),
		"failed":   summary.Failed(),
		"files":    len(summary.Files),
		"duration": summary.FinishedAt.Sub(summary.StartedAt).String(),
	})

	return summary
}

// processPage runs one URL through the pipeline. When writeReport is set the
// page gets its own workbook.
func (r *Runner) processPage(ctx context.Context, url string, acc *stats.Accumulator, writeReport bool) PageResult {
	result := PageResult{URL: url}
	fields := logger.Fields{"run_id": r.runID, "url": url}

	page, err := r.pages.FetchPage(ctx, url)
	if err != nil {
		logger.Error("Processing page failed", fields, err)
		logger.IncrCounter("pages.failed")
		result.Error = err.Error()
		return result
	}
	result.Title = page.Title
	result.Rows = len(page.Records)

	skippedBefore := acc.Skipped()
	for _, rec := range page.Records {
		included, ok := r.opts.Range.Filter(rec)
		if !ok {
			continue
		}
		acc.Add(included)
		result.InRange++
	}
	result.Skipped = acc.Skipped() - skippedBefore

	logger.AddCounter("rows.extracted", int64(result.Rows))
	logger.AddCounter("rows.in_range", int64(result.InRange))
	logger.Info("Processed page", logger.Fields{
		"run_id":   r.runID,
		"url":      url,
		"title":    page.Title,
		"rows":     result.Rows,
		"in_range": result.InRange,
	})

	if !writeReport {
		return result
	}

	result.Unknown = acc.Unknown()
	path, err := r.write(page.Title, acc, r.opts.RawSheets)
	if err != nil {
		logger.Error("Writing report failed", fields, err)
		result.Error = err.Error()
		return result
	}
	result.File = path
	return result
}

// write renders acc and saves it under a unique file name
func (r *Runner) write(title string, acc *stats.Accumulator, raw bool) (string, error) {
	generated := r.now()
	rep := report.Build(title, r.opts.Range, acc, report.Options{RawSheets: raw})

	path, err := r.store.UniquePath(report.FileName(title, r.opts.Range, generated))
	if err != nil {
		return "", fmt.Errorf("choosing output path: %w", err)
	}

	if err := report.Write(rep, path, report.Properties{RunID: r.runID, Generated: generated}); err != nil {
		return "", err
	}

	logger.Info("Wrote report", logger.Fields{
		"run_id": r.runID,
		"file":   path,
		"sheets": len(rep.Sheets),
	})
	return path, nil
}

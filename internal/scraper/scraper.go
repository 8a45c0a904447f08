package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/tk8-stats/internal/logger"
	"github.com/pfrederiksen/tk8-stats/internal/match"
)

const (
	UserAgent = "tk8-stats/1.0 (github.com/pfrederiksen/tk8-stats)"
	Timeout   = 30 * time.Second

	// DefaultTitleSeparator splits "Player • Site Name" page titles
	DefaultTitleSeparator = "•"
	// NoTitle is used when a page has no <title> element
	NoTitle = "No title found"

	containerSelector = "div.sheet.papyrus"
)

var (
	// ErrFetch is wrapped by every error returned from a Fetcher
	ErrFetch = errors.New("fetch failed")
	// ErrTooLarge means the page exceeded the size limit and was not parsed
	ErrTooLarge = errors.New("response too large")
)

// Fetcher retrieves the HTML for a URL
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Page is the parsed content of one match-history page
type Page struct {
	URL     string
	Title   string
	Records []match.Record
}

// Scraper fetches and parses match-history pages
type Scraper struct {
	fetcher        Fetcher
	titleSeparator string
}

// New creates a new Scraper using fetcher
func New(fetcher Fetcher, titleSeparator string) *Scraper {
	return &Scraper{
		fetcher:        fetcher,
		titleSeparator: titleSeparator,
	}
}

// FetchPage fetches url and extracts its title and table rows
func (s *Scraper) FetchPage(ctx context.Context, url string) (*Page, error) {
	start := time.Now()
	body, err := s.fetcher.Fetch(ctx, url)
	logger.RecordTiming("fetch", time.Since(start))
	if err != nil {
		return nil, err
	}

	page, err := ParsePage(strings.NewReader(body), s.titleSeparator)
	if err != nil {
		return nil, err
	}
	page.URL = url

	logger.Debug("Parsed page", logger.Fields{
		"url":   url,
		"title": page.Title,
		"rows":  len(page.Records),
	})
	return page, nil
}

// ParsePage extracts the page title and match rows from HTML
func ParsePage(r io.Reader, titleSeparator string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	return &Page{
		Title:   extractTitle(doc, titleSeparator),
		Records: extractRecords(doc),
	}, nil
}

// extractTitle returns the part of <title> before the separator
func extractTitle(doc *goquery.Document, separator string) string {
	sel := doc.Find("title").First()
	if sel.Length() == 0 {
		return NoTitle
	}

	title := sel.Text()
	if separator != "" {
		title = strings.SplitN(title, separator, 2)[0]
	}
	return strings.TrimSpace(title)
}

// tableRows locates the rows of the match table
func tableRows(doc *goquery.Document) *goquery.Selection {
	if containers := doc.Find(containerSelector); containers.Length() > 0 {
		return containers.Find("table").Find("tr")
	}

	// Pages without containers carry a summary table followed by the match table
	if bodies := doc.Find("tbody"); bodies.Length() == 2 {
		return bodies.Eq(1).Find("tr")
	}

	return doc.Find(containerSelector)
}

// extractRecords collects normalized cell text for every data row
func extractRecords(doc *goquery.Document) []match.Record {
	records := make([]match.Record, 0)

	tableRows(doc).Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		values := make([]string, 0, cells.Length())
		cells.Each(func(j int, cell *goquery.Selection) {
			values = append(values, match.CleanText(cell.Text()))
		})

		// Header and spacer rows have no data cells
		if len(values) < 2 {
			return
		}
		records = append(records, match.NewRecord(values))
	})

	return records
}

// Package scraper provides HTTP fetching and HTML parsing for match-history pages.
//
// The scraper package fetches player match-history pages and extracts one record per
// table row. The match table is found either inside "div.sheet.papyrus" containers or,
// on pages without them, as the second of exactly two table bodies. Cell text is
// whitespace-normalized and rows with fewer than two cells are dropped.
//
// Two fetchers are provided: HTTPFetcher (plain GET with retry and backoff) and
// BrowserFetcher (headless Chrome for pages that render their tables client-side).
package scraper

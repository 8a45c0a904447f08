// Package cli implements the command-line interface for tk8-stats.
//
// The cli package provides the Cobra-based CLI: the root command loads the input
// file and settings, runs the scrape/aggregate/report pipeline and prints a run
// summary (text or JSON); the validate subcommand only checks the input file.
// It coordinates the config, scraper, pipeline, storage and notifier packages.
package cli

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pfrederiksen/tk8-stats/internal/config"
	"github.com/pfrederiksen/tk8-stats/internal/logger"
	"github.com/pfrederiksen/tk8-stats/internal/notifier"
	"github.com/pfrederiksen/tk8-stats/internal/pipeline"
	"github.com/pfrederiksen/tk8-stats/internal/report"
	"github.com/pfrederiksen/tk8-stats/internal/scraper"
	"github.com/pfrederiksen/tk8-stats/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	// ExitPartial means the run finished but at least one URL failed
	ExitPartial = 2
)

// exitStatus carries a process exit code out of a command
type exitStatus struct {
	code int
	err  error
}

func (e *exitStatus) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitStatus) Unwrap() error {
	return e.err
}

type options struct {
	input     string
	settings  string
	envFile   string
	outputDir string
	mode      string
	raw       bool
	browser   bool
	retries   int
	timeout   time.Duration
	notify    string
	format    string
	verbose   bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{})
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tk8-stats",
		Short: "Build win/loss spreadsheets from TEKKEN 8 match histories",
		Long: `Scrapes player match-history pages, keeps the matches inside the date range
from the input file and writes per-character win/loss/draw statistics
against every opponent to .xlsx workbooks.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.input, "input", config.DefaultInputFile, "Input file with date range and URLs")
	flags.StringVar(&opts.settings, "settings", "", "YAML settings file (default "+config.DefaultSettingsFile+" if present)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "File with notifier credentials")
	flags.BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")

	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "Directory for generated reports (default result)")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "Report mode: per-page or combined")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Add raw per-character match sheets")
	cmd.Flags().BoolVar(&opts.browser, "browser", false, "Render pages in headless Chrome")
	cmd.Flags().IntVar(&opts.retries, "retries", 0, "Retries for transient fetch failures")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Per-request timeout")
	cmd.Flags().StringVar(&opts.notify, "notify", "", "Notification channel: console, telegram or twitter")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Summary format: text or json")

	cmd.AddCommand(newValidateCmd(opts))

	return cmd
}

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the input file without fetching anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := config.LoadInput(opts.input)
			if err != nil {
				return &exitStatus{code: ExitError, err: err}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Input OK: %s to %s, %d URLs\n",
				in.Range.Start.Format("2006-01-02"), in.Range.End.Format("2006-01-02"), len(in.URLs))
			for _, u := range in.URLs {
				fmt.Fprintf(out, "  %s\n", u)
			}
			return nil
		},
	}
}

// loadSettings resolves settings from file then applies explicitly set flags
func loadSettings(cmd *cobra.Command, opts *options) (config.Settings, error) {
	path, optional := opts.settings, false
	if path == "" {
		path, optional = config.DefaultSettingsFile, true
	}

	s, err := config.LoadSettings(path, optional)
	if err != nil {
		return s, err
	}

	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		s.OutputDir = opts.outputDir
	}
	if flags.Changed("mode") {
		s.Mode = opts.mode
	}
	if flags.Changed("raw") {
		s.RawSheets = opts.raw
	}
	if flags.Changed("browser") {
		s.Browser = opts.browser
	}
	if flags.Changed("retries") {
		s.Retries = opts.retries
	}
	if flags.Changed("timeout") {
		s.Timeout = opts.timeout
	}
	if flags.Changed("notify") {
		s.Notify = opts.notify
	}
	if opts.verbose {
		s.LogLevel = string(logger.LevelDebug)
	}

	return s, s.Validate()
}

// configTitle maps input errors to the headline shown to the user
func configTitle(err error) string {
	switch {
	case errors.Is(err, config.ErrConfigMissing):
		return "File Not Found"
	case errors.Is(err, config.ErrConfigMalformed):
		return "Invalid Data"
	case errors.Is(err, config.ErrDateFormat):
		return "Invalid Date"
	case errors.Is(err, config.ErrEmptyInput):
		return "Empty Input"
	default:
		return "Configuration Error"
	}
}

// runReport is the main command logic
func runReport(cmd *cobra.Command, opts *options) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	format := OutputFormat(strings.ToLower(opts.format))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", opts.format)
	}

	if err := config.LoadEnv(opts.envFile); err != nil {
		return err
	}

	settings, err := loadSettings(cmd, opts)
	if err != nil {
		return err
	}

	level, err := logger.ParseLevel(settings.LogLevel)
	if err != nil {
		return err
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	console := notifier.NewConsole(cmd.OutOrStdout(), cmd.ErrOrStderr())
	notify, err := notifier.New(settings.Notify, config.CredentialsFromEnv(), console)
	if err != nil {
		logger.Warn("Falling back to console notifications", logger.Fields{
			"channel": settings.Notify,
			"error":   err.Error(),
		})
		notify = console
	}

	in, err := config.LoadInput(opts.input)
	if err != nil {
		msg := notifier.Message{Level: notifier.LevelError, Title: configTitle(err), Body: err.Error()}
		if nerr := notify.Notify(ctx, msg); nerr != nil {
			logger.Error("Sending notification failed", nil, nerr)
		}
		return &exitStatus{code: ExitError, err: err}
	}

	store, err := storage.New(settings.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	var fetcher scraper.Fetcher
	if settings.Browser {
		bf := scraper.NewBrowserFetcher(settings.Timeout)
		defer bf.Close()
		fetcher = bf
	} else {
		fetcher = scraper.NewHTTPFetcher(settings.UserAgent, settings.Timeout, settings.Retries)
	}

	runner := pipeline.New(scraper.New(fetcher, settings.TitleSeparator), store, pipeline.Options{
		Range:     in.Range,
		Roster:    settings.Roster(),
		Mode:      settings.Mode,
		RawSheets: settings.RawSheets,
	})
	summary := runner.Run(ctx, in.URLs)
	logger.Debug("Run metrics", logger.MetricsSnapshot().Fields())

	if err := WriteOutput(cmd.OutOrStdout(), summary, format, opts.verbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	workbooks, err := store.List(report.Extension)
	if err != nil {
		logger.Warn("Listing output directory failed", logger.Fields{"dir": store.Dir(), "error": err.Error()})
	}
	if nerr := notify.Notify(ctx, completionMessage(summary, store.Dir(), len(workbooks))); nerr != nil {
		logger.Error("Sending notification failed", nil, nerr)
	}

	if !summary.OK() {
		return &exitStatus{code: ExitPartial, err: fmt.Errorf("%d of %d URLs failed", summary.Failed(), len(summary.Pages))}
	}
	return nil
}

// completionMessage reports the run outcome; stored is the number of
// workbooks now in the output directory, including earlier runs
func completionMessage(s *pipeline.Summary, dir string, stored int) notifier.Message {
	if s.Succeeded() == 0 {
		return notifier.Message{
			Level: notifier.LevelError,
			Title: "Failed",
			Body:  fmt.Sprintf("None of the %d URLs could be processed", len(s.Pages)),
		}
	}
	body := fmt.Sprintf("Data analysis has been completed. %d report(s) written to %s (%d in folder)", len(s.Files), dir, stored)
	if n := s.Failed(); n > 0 {
		body += fmt.Sprintf(" (%d of %d URLs failed)", n, len(s.Pages))
	}
	return notifier.Message{Level: notifier.LevelInfo, Title: "Complete", Body: body}
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

func run(ctx context.Context) int {
	err := NewRootCmd().ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	var exitErr *exitStatus
	if errors.As(err, &exitErr) {
		if exitErr.err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr.err)
		}
		return exitErr.code
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return ExitError
}

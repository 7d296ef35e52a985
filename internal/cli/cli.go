package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/obstacleb/artlinks-data/internal/calendar"
	"github.com/obstacleb/artlinks-data/internal/config"
	"github.com/obstacleb/artlinks-data/internal/fetch"
	"github.com/obstacleb/artlinks-data/internal/filter"
	"github.com/obstacleb/artlinks-data/internal/logger"
	"github.com/obstacleb/artlinks-data/internal/pipeline"
	"github.com/obstacleb/artlinks-data/internal/source"
	"github.com/obstacleb/artlinks-data/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig   string
	flagDataDir  string
	flagSource   string
	flagFormat   string
	flagVerbose  bool
	flagMerge    bool
	flagOut      string
	flagVenue    []string
	flagCategory []string
	flagDates    string
	flagWeekends bool
	flagFree     bool
	flagUpcoming bool
)

// NewRootCmd creates the root command with its subcommands.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "artlinks",
		Short: "Aggregate San Francisco art event listings into one table",
		Long: `A CLI tool that scrapes gallery and studio event listings,
normalizes them into a shared CSV schema, and maintains a deduplicated
master table that downstream pages and calendars are built from.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	root.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Data directory for CSV tables (overrides config)")
	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	root.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	scrape := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape sources into per-source CSV tables",
		RunE:  runScrape,
	}
	scrape.Flags().StringVar(&flagSource, "source", "all", "Source name or 'all'")
	scrape.Flags().BoolVar(&flagMerge, "merge", false, "Merge each scraped table into the master table")

	merge := &cobra.Command{
		Use:   "merge",
		Short: "Merge per-source CSV tables into the master table",
		RunE:  runMerge,
	}
	merge.Flags().StringVar(&flagSource, "source", "all", "Source name or 'all'")

	exportICS := &cobra.Command{
		Use:   "export-ics",
		Short: "Export the master table as an iCalendar feed",
		RunE:  runExportICS,
	}
	exportICS.Flags().StringVar(&flagOut, "out", "", "Output file (default stdout)")

	list := &cobra.Command{
		Use:   "list",
		Short: "Query the master table",
		RunE:  runList,
	}
	list.Flags().StringSliceVar(&flagVenue, "venue", nil, "Venue substring to match (repeatable)")
	list.Flags().StringSliceVar(&flagCategory, "category", nil, "Category substring to match (repeatable)")
	list.Flags().StringVar(&flagDates, "dates", "", `Date range, e.g. "March 1-15" or "2026-03-01..2026-03-15"`)
	list.Flags().BoolVar(&flagWeekends, "weekends", false, "Weekend events only")
	list.Flags().BoolVar(&flagFree, "free", false, "Free events only")
	list.Flags().BoolVar(&flagUpcoming, "upcoming", false, "Today and later only")

	root.AddCommand(scrape, merge, exportICS, list)
	return root
}

// setup loads configuration, applies flag overrides, and opens storage.
func setup() (*config.Config, *storage.Store, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, err
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}

	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing storage: %w", err)
	}
	return cfg, store, nil
}

// selectAdapters resolves the --source flag against the registry, filtered by
// the config's disabled list.
func selectAdapters(cfg *config.Config) ([]source.Adapter, error) {
	name := strings.ToLower(strings.TrimSpace(flagSource))
	if name == "" || name == "all" {
		var adapters []source.Adapter
		for _, a := range source.All() {
			if cfg.SourceEnabled(a.Name()) {
				adapters = append(adapters, a)
			}
		}
		return adapters, nil
	}

	a, ok := source.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown source: %s", name)
	}
	if !cfg.SourceEnabled(name) {
		return nil, fmt.Errorf("source %s is disabled in config", name)
	}
	return []source.Adapter{a}, nil
}

func outputFormat() (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	return format, nil
}

func runScrape(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}
	cfg, store, err := setup()
	if err != nil {
		return err
	}
	adapters, err := selectAdapters(cfg)
	if err != nil {
		return err
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = fetch.UserAgent
	}
	client := fetch.NewWith(time.Duration(cfg.HTTPTimeoutSeconds)*time.Second, ua)

	opts := source.Options{
		Now:         time.Now().UTC(),
		WindowDays:  cfg.WindowDays,
		HorizonDays: cfg.PastHorizonDays,
	}

	result := &OutputResult{CheckedAt: time.Now().UTC()}
	for _, a := range adapters {
		stats, err := pipeline.Run(a, client, store, opts)
		if err != nil {
			return err
		}
		result.Sources = append(result.Sources, stats)
		result.EventCount += stats.Emitted

		if flagMerge && !stats.Failed {
			if err := pipeline.Merge(store, store.MasterPath(cfg.MasterFile), a.Name()); err != nil {
				return err
			}
		}
	}

	return WriteOutput(os.Stdout, result, format)
}

func runMerge(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}
	cfg, store, err := setup()
	if err != nil {
		return err
	}
	adapters, err := selectAdapters(cfg)
	if err != nil {
		return err
	}

	master := store.MasterPath(cfg.MasterFile)
	result := &OutputResult{CheckedAt: time.Now().UTC()}
	for _, a := range adapters {
		if err := pipeline.Merge(store, master, a.Name()); err != nil {
			return err
		}
		result.Merged = append(result.Merged, a.Name())
	}

	events, err := store.ReadTable(master)
	if err != nil {
		return err
	}
	result.EventCount = len(events)

	return WriteOutput(os.Stdout, result, format)
}

func runList(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}
	cfg, store, err := setup()
	if err != nil {
		return err
	}

	f := filter.Filter{
		Venues:       flagVenue,
		Categories:   flagCategory,
		WeekendsOnly: flagWeekends,
		FreeOnly:     flagFree,
	}
	now := time.Now().UTC().Truncate(24 * time.Hour)
	if flagUpcoming {
		f.From = &now
	}
	if flagDates != "" {
		from, to, err := filter.ParseDateRange(flagDates, now)
		if err != nil {
			return err
		}
		f.From, f.To = &from, &to
	}

	events, err := store.ReadTable(store.MasterPath(cfg.MasterFile))
	if err != nil {
		return err
	}
	matched := f.Apply(events)

	result := &OutputResult{
		CheckedAt:  time.Now().UTC(),
		Events:     matched,
		EventCount: len(matched),
	}
	return WriteOutput(os.Stdout, result, format)
}

func runExportICS(cmd *cobra.Command, args []string) error {
	cfg, store, err := setup()
	if err != nil {
		return err
	}

	events, err := store.ReadTable(store.MasterPath(cfg.MasterFile))
	if err != nil {
		return err
	}

	feed := calendar.Serialize(events, time.Now().UTC())

	if flagOut == "" {
		fmt.Fprint(os.Stdout, feed)
		return nil
	}
	if err := os.WriteFile(flagOut, []byte(feed), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", flagOut, err)
	}
	logger.Info("calendar exported", logger.Fields{"path": flagOut, "events": len(events)})
	return nil
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}

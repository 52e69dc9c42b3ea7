package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobmerge/internal/adapter"
	"github.com/amishk599/jobmerge/internal/aggregator"
	"github.com/amishk599/jobmerge/internal/config"
	"github.com/amishk599/jobmerge/internal/model"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobmerge",
	Short: "Merged internship and new-grad listings",
	Long:  "jobmerge fetches community job boards, merges their tables, and serves one de-duplicated, date-ordered list.",
	// `jobmerge` with no subcommand runs the HTTP service.
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBMERGE_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBMERGE_CONFIG env var > "./config.yaml".
// Only the implicit ./config.yaml may be missing, in which case defaults apply.
func loadConfig(path string) (*config.Config, error) {
	required := true
	if path == "" {
		if env := os.Getenv("JOBMERGE_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
			required = false
		}
	}
	return config.LoadOrDefault(path, required)
}

// setupLogger writes to stderr so `fetch` can keep stdout for JSON.
func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// buildAggregator wires one markdown source per configured entry, in config
// order, sharing a single HTTP fetcher.
func buildAggregator(cfg *config.Config, logger *slog.Logger) (*aggregator.Aggregator, error) {
	fetcher := adapter.NewHTTPFetcher(&http.Client{}, cfg.Fetch.Timeout, cfg.Fetch.UserAgent)

	sources := make([]model.ListingSource, 0, len(cfg.Sources))
	for _, sc := range cfg.Sources {
		src, err := adapter.NewMarkdownSource(sc.Name, sc.URL, fetcher, logger)
		if err != nil {
			return nil, fmt.Errorf("building source %s: %w", sc.Name, err)
		}
		sources = append(sources, src)
		logger.Debug("registered source", "source", sc.Name, "url", sc.URL)
	}

	return aggregator.NewAggregator(sources, cfg.Aggregation.AllowPartial, logger), nil
}

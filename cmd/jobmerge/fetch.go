package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobmerge/internal/api"
)

var pretty bool

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Aggregate once and print JSON",
	Long:  "Fetch every source once and print the merged listings as JSON to stdout.",
	RunE:  runFetch,
}

func init() {
	fetchCmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	agg, err := buildAggregator(cfg, logger)
	if err != nil {
		logger.Error("failed to build aggregator", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := agg.Aggregate(ctx)
	if err != nil {
		_ = writeJSON(os.Stdout, api.ErrorResponse{Error: "Failed to fetch data", Details: err.Error()}, pretty)
		return fmt.Errorf("fetching listings: %w", err)
	}
	return writeJSON(os.Stdout, res, pretty)
}

func writeJSON(w io.Writer, v any, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}

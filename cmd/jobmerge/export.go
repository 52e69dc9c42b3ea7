package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobmerge/internal/store"
)

var dbPath string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Aggregate once and write a SQLite snapshot",
	Long:  "Fetch every source once and replace the listings table of a SQLite file with the merged result.",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&dbPath, "db", "listings.db", "path to the SQLite snapshot file")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
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
		return fmt.Errorf("fetching listings: %w", err)
	}

	sqlStore, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}
	defer sqlStore.Close()

	n, err := sqlStore.SaveSnapshot(ctx, res.Listings)
	if err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	logger.Info("snapshot written", "db", dbPath, "listings", n)
	return nil
}

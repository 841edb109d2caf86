// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/medallion"
	"github.com/poiesic/medallion/extract"
	"github.com/poiesic/medallion/ledger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "medallion",
		Usage: "Bronze layer ingestion for the medallion data zone",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Ingest every source file under the source root into the bronze zone",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "source",
						Aliases: []string{"s"},
						Usage:   "Source data root, one subdirectory per department",
						Value:   "/app/source_data",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Bronze output root",
						Value:   "/app/data_zone",
					},
					&cli.StringFlag{
						Name:  "rules",
						Usage: "Path to a TOML delimiter rule file",
					},
					&cli.IntFlag{
						Name:  "max-attempts",
						Usage: "Maximum extraction attempts per file",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.Int64Flag{
						Name:  "min-file-size",
						Usage: "Minimum source size in bytes accepted by the checkpoint",
						Value: 10,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of files processed concurrently",
						Value: 1,
					},
					&cli.StringFlag{
						Name:  "ledger",
						Usage: "Path to the batch history directory (history disabled when empty)",
					},
				},
			},
			{
				Name:   "runs",
				Usage:  "List recorded ingestion runs, most recent first",
				Action: runsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "ledger",
						Usage:    "Path to the batch history directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "batch",
						Usage: "Show per-file outcomes for one batch id",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.Int("max-attempts") <= 0 {
		return fmt.Errorf("max-attempts must be greater than 0")
	}
	if c.Int("workers") <= 0 {
		return fmt.Errorf("workers must be greater than 0")
	}

	opts := []medallion.IngestorOption{
		medallion.WithRetry(c.Int("max-attempts"), c.Duration("retry-delay")),
		medallion.WithMinFileSize(c.Int64("min-file-size")),
		medallion.WithWorkers(c.Int("workers")),
	}

	if rulesPath := c.String("rules"); rulesPath != "" {
		rules, err := extract.LoadRules(rulesPath)
		if err != nil {
			return fmt.Errorf("failed to load delimiter rules: %w", err)
		}
		opts = append(opts, medallion.WithDelimiterRules(rules))
	}
	if ledgerPath := c.String("ledger"); ledgerPath != "" {
		opts = append(opts, medallion.WithLedger(ledgerPath))
	}

	ingestor, err := medallion.NewIngestor(opts...)
	if err != nil {
		return fmt.Errorf("failed to create ingestor: %w", err)
	}
	defer ingestor.Close()

	summary, err := ingestor.Run(ctx, c.String("source"), c.String("output"))
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Batch:     %s\n", summary.BatchID)
	fmt.Fprintf(os.Stderr, "Succeeded: %d\n", summary.Succeeded)
	fmt.Fprintf(os.Stderr, "Failed:    %d\n", summary.Failed)
	fmt.Fprintf(os.Stderr, "Errors:    %d\n", summary.Errors)
	fmt.Fprintf(os.Stderr, "Warnings:  %d\n", summary.Warnings)
	if summary.LogPath != "" {
		fmt.Fprintf(os.Stderr, "Log:       %s\n", summary.LogPath)
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed ingestion", summary.Failed)
	}
	return nil
}

func runsCommand(c *cli.Context) error {
	store, err := ledger.Open(c.String("ledger"), false)
	if err != nil {
		return fmt.Errorf("failed to open batch history: %w", err)
	}
	defer store.Close()

	if batchID := c.String("batch"); batchID != "" {
		return printBatch(store, batchID)
	}

	runs, err := store.Runs()
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}

	for _, run := range runs {
		fmt.Printf("%s  %s  succeeded=%d failed=%d errors=%d warnings=%d  %s -> %s\n",
			run.StartedAt.Format(time.RFC3339), run.BatchID,
			run.Succeeded, run.Failed, run.Errors, run.Warnings,
			run.SourceRoot, run.OutputRoot)
	}
	return nil
}

func printBatch(store *ledger.Store, batchID string) error {
	run, err := store.Run(batchID)
	if err != nil {
		return fmt.Errorf("failed to load run %s: %w", batchID, err)
	}

	fmt.Printf("batch %s: started %s, succeeded=%d failed=%d\n",
		run.BatchID, run.StartedAt.Format(time.RFC3339), run.Succeeded, run.Failed)

	files, err := store.FilesForRun(batchID)
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}
	for _, f := range files {
		line := fmt.Sprintf("  %-8s %s/%s", f.Status, f.Department, f.Filename)
		if f.Status == ledger.FileStatusLoaded {
			line += fmt.Sprintf("  rows=%d cols=%d  %s", f.Rows, f.Columns, f.OutputPath)
		} else if f.Detail != "" {
			line += "  " + f.Detail
		}
		fmt.Println(line)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

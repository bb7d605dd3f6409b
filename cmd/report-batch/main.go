package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/auctionkit/appraisal-extractor/constants"
	"github.com/auctionkit/appraisal-extractor/internal/common"
	"github.com/auctionkit/appraisal-extractor/internal/core"
	"github.com/auctionkit/appraisal-extractor/internal/core/async"
	"github.com/auctionkit/appraisal-extractor/internal/export"
	"github.com/auctionkit/appraisal-extractor/internal/ingest"
	"github.com/auctionkit/appraisal-extractor/internal/report"
	repo "github.com/auctionkit/appraisal-extractor/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir     = flag.String("dir", "", "directory to process appraisal reports from (required)")
		out     = flag.String("out", "", "output XLSX file path (optional, defaults to parent directory)")
		inmem   = flag.Bool("inmem", false, "use in-memory SQLite database")
		workers = flag.Int("workers", 0, "concurrent extraction workers (defaults to EXTRACT_WORKERS)")
		watch   = flag.Bool("watch", false, "keep watching the directory for new reports")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "reports.xlsx")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := common.LoadConfig()
	if *inmem {
		cfg.Database.Driver = "sqlite"
		cfg.Database.DSN = ":memory:"
		cfg.Database.MaxOpenConns = 1
	}
	if *workers > 0 {
		cfg.Extract.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := repo.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.InitSchema(ctx); err != nil {
		logger.Error("failed to initialize schema", "error", err)
		os.Exit(1)
	}

	reportsRepo := repo.NewReportRepository(db, logger)
	jobsRepo := repo.NewExtractJobRepository(db, logger)

	parser := report.NewParser(logger)
	processor := core.NewProcessor(logger, parser, reportsRepo, jobsRepo, cfg.Extract.OutputRoot)
	queue := async.NewProcessorQueue(processor, logger, async.WithWorkers(cfg.Extract.Workers))

	// Initial scan; extraction output under the scan root is skipped.
	paths, err := ingest.ScanDirectory(*dir, filepath.Base(cfg.Extract.OutputRoot))
	if err != nil {
		logger.Error("failed to scan directory", "dir", *dir, "error", err)
		os.Exit(1)
	}
	logger.Info("scan complete", "dir", *dir, "reports", len(paths))
	for _, p := range paths {
		_ = queue.Enqueue(ctx, async.Job{Path: p, SubmittedAt: time.Now()})
	}

	if *watch {
		events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
			Roots:    []string{*dir},
			Debounce: cfg.Extract.WatchDebounce,
		})
		if err != nil {
			logger.Error("failed to start watcher", "error", err)
			os.Exit(1)
		}
		logger.Info("watching for new reports", "dir", *dir)
		for events != nil || errs != nil {
			select {
			case p, ok := <-events:
				if !ok {
					events = nil
					continue
				}
				_ = queue.Enqueue(ctx, async.Job{Path: p, SubmittedAt: time.Now()})
			case werr, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				logger.Error("watcher error", "error", werr)
			case <-ctx.Done():
				logger.Info("shutdown requested")
				events, errs = nil, nil
			}
		}
	}

	// Drain the queue before exporting.
	drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	queue.Shutdown(drainCtx)
	cancel()

	logger.Info("exporting to XLSX", "output", *out)
	xlsxBytes, err := export.NewService(reportsRepo, logger).ExportReportsXLSX(context.Background())
	if err != nil {
		logger.Error("failed to export reports", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, xlsxBytes, 0o644); err != nil {
		logger.Error("failed to write output file", "error", err)
		os.Exit(1)
	}

	recs, err := reportsRepo.List(context.Background())
	if err != nil {
		logger.Error("failed to list reports", "error", err)
		os.Exit(1)
	}
	extracted, scanned := 0, 0
	for _, r := range recs {
		switch r.Status {
		case constants.JobStatusExtracted:
			extracted++
		case constants.JobStatusScanned:
			scanned++
		}
	}

	logger.Info("batch processing complete",
		"reports", len(recs),
		"extracted", extracted,
		"scanned", scanned,
		"output_file", *out)

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Reports: %d\n", len(recs))
	fmt.Printf("- Extracted: %d\n", extracted)
	fmt.Printf("- Scanned (skipped): %d\n", scanned)
	fmt.Printf("- Output: %s\n", *out)
}

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/auctionkit/appraisal-extractor/constants"
	"github.com/auctionkit/appraisal-extractor/internal/report"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		pdf   = flag.String("pdf", "", "appraisal report PDF to extract (required)")
		out   = flag.String("out", "", "output directory (defaults to ./extracted/<auction_no> next to the PDF)")
		debug = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	if *pdf == "" {
		printError("Error: --pdf is required\n")
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	auctionNo := constants.AuctionNumber(*pdf)
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*pdf), "extracted", auctionNo)
	}

	logger.Info("extracting report", "pdf", *pdf, "auction_no", auctionNo, "out", *out)
	res, err := report.NewParser(logger).ParseFile(*pdf, *out)
	if err != nil {
		logger.Error("extraction failed", "pdf", *pdf, "error", err)
		os.Exit(1)
	}

	fmt.Printf("Extraction complete!\n")
	fmt.Printf("- Auction number: %s\n", auctionNo)
	fmt.Printf("- Text based: %t (%d pages)\n", res.TextBased, res.TotalPages)
	fmt.Printf("- Appraisal type: %s\n", res.Appraisal.Type)
	if res.LocationAddress != "" {
		fmt.Printf("- Address: %s\n", res.LocationAddress)
	} else {
		fmt.Printf("- Address: (not found)\n")
	}
	fmt.Printf("- Photos: %d\n", res.PhotoCount)
	fmt.Printf("- Output: %s\n", filepath.Join(*out, "metadata.json"))
}

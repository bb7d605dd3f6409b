// Package core coordinates per-file extraction: job bookkeeping, the parse
// pipeline, and result persistence.
package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/auctionkit/appraisal-extractor/constants"
	"github.com/auctionkit/appraisal-extractor/internal/report"
	"github.com/auctionkit/appraisal-extractor/internal/repository"
)

// FileParser is the parse pipeline surface the processor needs.
// *report.Parser satisfies it.
type FileParser interface {
	ParseFile(path, outputRoot string) (*report.ExtractionResult, error)
}

// Processor runs the extraction pipeline for one PDF at a time and records
// the outcome. Safe for concurrent use; each call opens its own document
// handle.
type Processor struct {
	logger      *slog.Logger
	parser      FileParser
	reportsRepo repository.ReportRepository
	jobsRepo    repository.ExtractJobRepository
	outputRoot  string
}

func NewProcessor(
	logger *slog.Logger,
	parser FileParser,
	reportsRepo repository.ReportRepository,
	jobsRepo repository.ExtractJobRepository,
	outputRoot string,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if outputRoot == "" {
		outputRoot = "./extracted"
	}
	return &Processor{
		logger:      logger,
		parser:      parser,
		reportsRepo: reportsRepo,
		jobsRepo:    jobsRepo,
		outputRoot:  outputRoot,
	}
}

// OutputRoot returns the directory extraction output lands under.
func (p *Processor) OutputRoot() string { return p.outputRoot }

// ProcessFile extracts one report PDF: it starts an extract_job, runs the
// parse pipeline (writing photos and metadata.json under
// <outputRoot>/<auctionNo>), upserts the auction_reports row, and closes the
// job. Returns the job ID even on failure so callers can correlate logs.
func (p *Processor) ProcessFile(ctx context.Context, path string) (uuid.UUID, error) {
	auctionNo := constants.AuctionNumber(path)
	job, err := p.jobsRepo.Start(ctx, auctionNo, path)
	if err != nil {
		return uuid.Nil, fmt.Errorf("start job: %w", err)
	}

	outDir := filepath.Join(p.outputRoot, auctionNo)
	res, err := p.parser.ParseFile(path, outDir)
	if err != nil {
		_ = p.jobsRepo.FinishFailure(ctx, job.ID, err.Error())
		p.logger.Error("processor.extract.failed", "auction_no", auctionNo, "path", path, "err", err)
		return job.ID, err
	}

	status := constants.JobStatusExtracted
	if !res.TextBased {
		// Scanned reports still get a row so batch accounting sees them.
		status = constants.JobStatusScanned
	}

	appraisal, err := json.Marshal(report.NewSummary(res).Appraisal)
	if err != nil {
		_ = p.jobsRepo.FinishFailure(ctx, job.ID, err.Error())
		return job.ID, fmt.Errorf("marshal appraisal: %w", err)
	}

	rec := &repository.ReportRecord{
		AuctionNo:       auctionNo,
		PDFFilename:     res.PDFFilename,
		LocationAddress: res.LocationAddress,
		AppraisalType:   string(res.Appraisal.Type),
		AppraisalFields: string(appraisal),
		PhotoCount:      res.PhotoCount,
		IsTextBased:     res.TextBased,
		TotalPages:      res.TotalPages,
		Status:          status,
	}
	if err := p.reportsRepo.Upsert(ctx, rec); err != nil {
		_ = p.jobsRepo.FinishFailure(ctx, job.ID, err.Error())
		return job.ID, err
	}

	if err := p.jobsRepo.FinishSuccess(ctx, job.ID, status); err != nil {
		return job.ID, err
	}
	p.logger.Info("processor.extract.ok",
		"auction_no", auctionNo,
		"status", status,
		"photos", res.PhotoCount,
		"out_dir", outDir,
	)
	return job.ID, nil
}

// ProcessBatch runs ProcessFile over paths sequentially and reports
// aggregate counts. Concurrent batches go through async.ProcessorQueue.
func (p *Processor) ProcessBatch(ctx context.Context, paths []string) (succeeded, failed int) {
	start := time.Now()
	for _, path := range paths {
		if ctx.Err() != nil {
			return succeeded, failed
		}
		if _, err := p.ProcessFile(ctx, path); err != nil {
			failed++
			continue
		}
		succeeded++
	}
	p.logger.Info("processor.batch.done",
		"total", len(paths),
		"succeeded", succeeded,
		"failed", failed,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return succeeded, failed
}

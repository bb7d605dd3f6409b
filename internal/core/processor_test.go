package core

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/auctionkit/appraisal-extractor/constants"
	"github.com/auctionkit/appraisal-extractor/internal/common"
	"github.com/auctionkit/appraisal-extractor/internal/report"
	"github.com/auctionkit/appraisal-extractor/internal/repository"
)

type stubParser struct {
	res     *report.ExtractionResult
	err     error
	lastOut string
}

func (s *stubParser) ParseFile(path, outputRoot string) (*report.ExtractionResult, error) {
	s.lastOut = outputRoot
	if s.err != nil {
		return nil, s.err
	}
	res := *s.res
	res.PDFFilename = filepath.Base(path)
	return &res, nil
}

func newTestRepos(t *testing.T) (repository.ReportRepository, repository.ExtractJobRepository) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := repository.Open(context.Background(), common.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          ":memory:",
		MaxOpenConns: 1,
	}, log)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(db.Close)
	if err := db.InitSchema(context.Background()); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return repository.NewReportRepository(db, log), repository.NewExtractJobRepository(db, log)
}

func carResult() *report.ExtractionResult {
	color := "흰색"
	return &report.ExtractionResult{
		LocationAddress: "경기도 양주시 광적면 효촌리 111-3",
		Appraisal: report.AppraisalFields{
			Type: report.TypeCar,
			Car:  &report.CarFields{Color: &color},
		},
		PhotoCount: 4,
		TextBased:  true,
		TotalPages: 13,
	}
}

func TestProcessFile(t *testing.T) {
	reports, jobs := newTestRepos(t)
	parser := &stubParser{res: carResult()}
	out := t.TempDir()
	proc := NewProcessor(nil, parser, reports, jobs, out)
	ctx := context.Background()

	jobID, err := proc.ProcessFile(ctx, "/in/2024타경10001_감정평가서.pdf")
	if err != nil {
		t.Fatalf("ProcessFile() error: %v", err)
	}

	// Output goes under a per-auction directory.
	if want := filepath.Join(out, "2024타경10001"); parser.lastOut != want {
		t.Errorf("output dir = %q, want %q", parser.lastOut, want)
	}

	rec, err := reports.GetByAuctionNo(ctx, "2024타경10001")
	if err != nil {
		t.Fatalf("GetByAuctionNo() error: %v", err)
	}
	if rec.Status != constants.JobStatusExtracted || rec.PhotoCount != 4 || !rec.IsTextBased {
		t.Errorf("record = %+v", rec)
	}
	if rec.AppraisalType != "car" {
		t.Errorf("AppraisalType = %q", rec.AppraisalType)
	}
	var fields report.SummaryAppraisal
	if err := json.Unmarshal([]byte(rec.AppraisalFields), &fields); err != nil {
		t.Fatalf("appraisal_fields not valid JSON: %v", err)
	}
	if fields.Color == nil || *fields.Color != "흰색" {
		t.Errorf("appraisal_fields.color = %v", fields.Color)
	}

	recorded, err := jobs.ListByAuctionNo(ctx, "2024타경10001")
	if err != nil {
		t.Fatalf("ListByAuctionNo() error: %v", err)
	}
	if len(recorded) != 1 || recorded[0].ID != jobID || recorded[0].Status != constants.JobStatusExtracted {
		t.Errorf("jobs = %+v", recorded)
	}
}

func TestProcessFileScanned(t *testing.T) {
	reports, jobs := newTestRepos(t)
	res := &report.ExtractionResult{
		Appraisal:  report.UnknownAppraisal(),
		TextBased:  false,
		TotalPages: 9,
	}
	proc := NewProcessor(nil, &stubParser{res: res}, reports, jobs, t.TempDir())
	ctx := context.Background()

	if _, err := proc.ProcessFile(ctx, "/in/2024타경20002_감정평가서.pdf"); err != nil {
		t.Fatalf("ProcessFile() error: %v", err)
	}
	rec, err := reports.GetByAuctionNo(ctx, "2024타경20002")
	if err != nil {
		t.Fatalf("GetByAuctionNo() error: %v", err)
	}
	if rec.Status != constants.JobStatusScanned || rec.IsTextBased {
		t.Errorf("record = %+v, want SCANNED", rec)
	}

	recorded, _ := jobs.ListByAuctionNo(ctx, "2024타경20002")
	if len(recorded) != 1 || recorded[0].Status != constants.JobStatusScanned {
		t.Errorf("jobs = %+v, want SCANNED", recorded)
	}
}

func TestProcessFileParseFailure(t *testing.T) {
	reports, jobs := newTestRepos(t)
	proc := NewProcessor(nil, &stubParser{err: errors.New("open pdf: truncated")}, reports, jobs, t.TempDir())
	ctx := context.Background()

	jobID, err := proc.ProcessFile(ctx, "/in/2024타경30003_감정평가서.pdf")
	if err == nil {
		t.Fatal("ProcessFile() succeeded, want error")
	}

	// The failure is recorded on the job; no report row is written.
	recorded, listErr := jobs.ListByAuctionNo(ctx, "2024타경30003")
	if listErr != nil {
		t.Fatalf("ListByAuctionNo() error: %v", listErr)
	}
	if len(recorded) != 1 || recorded[0].ID != jobID || recorded[0].Status != constants.JobStatusFailed {
		t.Errorf("jobs = %+v, want one FAILED", recorded)
	}
	if recorded[0].ErrorMessage == "" {
		t.Error("ErrorMessage empty")
	}
	if _, err := reports.GetByAuctionNo(ctx, "2024타경30003"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("report row error = %v, want ErrNotFound", err)
	}
}

func TestProcessBatch(t *testing.T) {
	reports, jobs := newTestRepos(t)
	proc := NewProcessor(nil, &stubParser{res: carResult()}, reports, jobs, t.TempDir())

	ok, failed := proc.ProcessBatch(context.Background(), []string{
		"/in/2024타경40001_감정평가서.pdf",
		"/in/2024타경40002_감정평가서.pdf",
	})
	if ok != 2 || failed != 0 {
		t.Errorf("ProcessBatch() = (%d, %d), want (2, 0)", ok, failed)
	}
	recs, err := reports.List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("got %d rows, want 2", len(recs))
	}
}

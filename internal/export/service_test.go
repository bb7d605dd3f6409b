package export

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/auctionkit/appraisal-extractor/constants"
	"github.com/auctionkit/appraisal-extractor/internal/common"
	"github.com/auctionkit/appraisal-extractor/internal/repository"
)

func TestExportReportsXLSX(t *testing.T) {
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := repository.Open(ctx, common.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          ":memory:",
		MaxOpenConns: 1,
	}, log)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(db.Close)
	if err := db.InitSchema(ctx); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	repo := repository.NewReportRepository(db, log)
	if err := repo.Upsert(ctx, &repository.ReportRecord{
		AuctionNo:       "2024타경10001",
		PDFFilename:     "2024타경10001_감정평가서.pdf",
		LocationAddress: "경기도 양주시 광적면 효촌리 111-3",
		AppraisalType:   "car",
		AppraisalFields: `{"type":"car"}`,
		PhotoCount:      5,
		IsTextBased:     true,
		TotalPages:      13,
		Status:          constants.JobStatusExtracted,
	}); err != nil {
		t.Fatalf("seed report: %v", err)
	}

	data, err := NewService(repo, log).ExportReportsXLSX(ctx)
	if err != nil {
		t.Fatalf("ExportReportsXLSX() error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	cell := func(ref string) string {
		v, err := f.GetCellValue("Reports", ref)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", ref, err)
		}
		return v
	}
	if got := cell("A1"); got != "Auction No" {
		t.Errorf("A1 = %q", got)
	}
	if got := cell("A2"); got != "2024타경10001" {
		t.Errorf("A2 = %q", got)
	}
	if got := cell("C2"); got != "경기도 양주시 광적면 효촌리 111-3" {
		t.Errorf("C2 = %q", got)
	}
	if got := cell("H2"); got != "EXTRACTED" {
		t.Errorf("H2 = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 4); got != "abc…" {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("abc", 10); got != "abc" {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("서울특별시 강남구 역삼동", 6); got != "서울특별시…" {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("경기도 양주시", 40); got != "경기도 양주시" {
		t.Errorf("truncate() = %q", got)
	}
	if !utf8.ValidString(truncate(strings.Repeat("감", 200), 140)) {
		t.Error("truncated Korean string is not valid UTF-8")
	}
}

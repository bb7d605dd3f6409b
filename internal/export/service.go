package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/auctionkit/appraisal-extractor/internal/repository"
)

// Service is a tiny façade over the report repository that produces XLSX
// bytes for exports.
type Service struct {
	reportsRepo repository.ReportRepository
	logger      *slog.Logger
}

func NewService(repo repository.ReportRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{reportsRepo: repo, logger: logger}
}

// ExportReportsXLSX returns an XLSX workbook (as bytes) listing every
// extracted report row, one per auction number.
func (s *Service) ExportReportsXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	recs, err := s.reportsRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Reports"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Auction No",
		"PDF Filename",
		"Location Address",
		"Appraisal Type",
		"Photo Count",
		"Text Based",
		"Total Pages",
		"Status",
		"Updated At",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, r.AuctionNo)
		write(2, r.PDFFilename)
		write(3, truncate(r.LocationAddress, 140))
		write(4, r.AppraisalType)
		write(5, r.PhotoCount)
		write(6, r.IsTextBased)
		write(7, r.TotalPages)
		write(8, string(r.Status))
		if !r.UpdatedAt.IsZero() {
			write(9, r.UpdatedAt.Format("2006-01-02 15:04:05"))
		} else {
			write(9, "")
		}

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 20) // auction number
	_ = f.SetColWidth(sheet, "B", "B", 36) // filename
	_ = f.SetColWidth(sheet, "C", "C", 48) // address
	_ = f.SetColWidth(sheet, "D", "H", 14)
	_ = f.SetColWidth(sheet, "I", "I", 20) // timestamp

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// truncate shortens s to at most n runes. Addresses are Korean, so the cut
// must not land inside a multibyte sequence.
func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return string(r[:1])
	}
	return string(r[:n-1]) + "…"
}

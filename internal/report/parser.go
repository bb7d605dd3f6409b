package report

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/auctionkit/appraisal-extractor/constants"
	"github.com/auctionkit/appraisal-extractor/internal/document"
)

// Parser runs the full extraction pipeline over one opened document:
// classification, section location, address and appraisal extraction, photo
// rendering, and the metadata.json summary. A Parser is stateless and safe
// to share; each Parse call owns its own Document.
type Parser struct {
	log *slog.Logger
}

func NewParser(log *slog.Logger) *Parser {
	if log == nil {
		log = slog.Default()
	}
	return &Parser{log: log}
}

// ParseFile opens the PDF at path and runs Parse, writing photos and
// metadata.json under outputRoot.
func (p *Parser) ParseFile(path, outputRoot string) (*ExtractionResult, error) {
	doc, err := document.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer doc.Close()
	return p.Parse(doc, filepath.Base(path), outputRoot)
}

// Parse extracts everything from an opened document. Scanned documents
// short-circuit: no section search, no photo rendering, an unknown appraisal,
// and an empty address, but metadata.json is still written so every input
// leaves a summary behind.
func (p *Parser) Parse(doc document.Document, pdfFilename, outputRoot string) (*ExtractionResult, error) {
	start := time.Now()
	res := &ExtractionResult{
		PDFFilename: pdfFilename,
		TotalPages:  doc.PageCount(),
		Appraisal:   UnknownAppraisal(),
	}

	cls := Classify(doc)
	res.TextBased = cls.TextBased
	if !cls.TextBased {
		p.log.Info("report.scanned", "pdf", pdfFilename, "pages", res.TotalPages)
		if _, err := WriteSummary(res, outputRoot); err != nil {
			return nil, err
		}
		return res, nil
	}

	res.LocationAddress = ExtractAddress(doc, FindSectionPages(doc, constants.SectionAddress))
	if res.LocationAddress == "" {
		p.log.Info("report.address.miss", "pdf", pdfFilename)
	}

	res.Appraisal = ExtractAppraisal(doc, FindSectionPages(doc, constants.SectionAppraisal))

	auctionNo := constants.AuctionNumber(pdfFilename)
	photos, err := ExtractPhotos(doc, auctionNo, outputRoot, p.log)
	if err != nil {
		return nil, fmt.Errorf("extract photos: %w", err)
	}
	res.PhotoCount = len(photos)

	if _, err := WriteSummary(res, outputRoot); err != nil {
		return nil, err
	}

	p.log.Info("report.extract.ok",
		"pdf", pdfFilename,
		"type", string(res.Appraisal.Type),
		"address_found", res.LocationAddress != "",
		"photos", res.PhotoCount,
		"pages", res.TotalPages,
		"elapsed_ms", time.Since(start).Milliseconds())
	return res, nil
}

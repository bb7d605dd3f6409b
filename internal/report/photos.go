package report

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/auctionkit/appraisal-extractor/constants"
	"github.com/auctionkit/appraisal-extractor/internal/document"
	"github.com/auctionkit/appraisal-extractor/internal/imaging"
)

const (
	// minPhotoArea rejects logos and icons (raster pixels).
	minPhotoArea = 10000
	// maxPhotoAspect rejects divider lines and rules: width:height above
	// 10:1 (or below 1:10) is not a photograph.
	maxPhotoAspect = 10.0
	// trimTolerance is the per-channel background match tolerance used when
	// trimming uniform borders.
	trimTolerance = 6
)

// ExtractPhotos finds photograph blocks, renders them under
// <outputRoot>/photos as {auctionNo}_{index}.png, and returns one region per
// saved file. Only called for text-based documents. An empty result is a
// normal outcome for layouts without usable photos, not an error.
func ExtractPhotos(doc document.Document, auctionNo, outputRoot string, log *slog.Logger) ([]PhotoRegion, error) {
	if log == nil {
		log = slog.Default()
	}
	photosDir := filepath.Join(outputRoot, "photos")
	if err := os.MkdirAll(photosDir, 0o755); err != nil {
		return nil, fmt.Errorf("create photos dir: %w", err)
	}

	pages := photoPages(doc)
	if len(pages) == 0 {
		// Some reports omit the photo-sheet heading entirely; fall back to
		// scanning every page for qualifying blocks.
		for i := 0; i < doc.PageCount(); i++ {
			pages = append(pages, i)
		}
	}

	var regions []PhotoRegion
	idx := 0
	for _, p := range pages {
		blocks, err := doc.PageImages(p)
		if err != nil {
			log.Warn("photo page unreadable", "page", p, "error", err)
			continue
		}
		for _, b := range blocks {
			if !isPhotoBlock(b) {
				continue
			}
			path := filepath.Join(photosDir, fmt.Sprintf("%s_%d.png", auctionNo, idx))
			if err := renderBlock(b, path); err != nil {
				log.Warn("photo render failed", "page", p, "index", idx, "error", err)
				continue
			}
			w, h := b.Bounds()
			regions = append(regions, PhotoRegion{PageIndex: p, Width: w, Height: h, Path: path})
			idx++
		}
	}
	return regions, nil
}

// photoPages returns pages carrying a photo-sheet heading, at least one
// qualifying image block, and no appraisal heading (appraisal pages may
// reference photo sheets in captions).
func photoPages(doc document.Document) []int {
	var pages []int
	appraisal := constants.HeadingSynonyms[constants.SectionAppraisal]
	for _, p := range findPages(doc, constants.HeadingSynonyms[constants.SectionPhotos]) {
		text, err := doc.PageText(p)
		if err != nil {
			continue
		}
		if containsAny(text, appraisal) {
			continue
		}
		blocks, err := doc.PageImages(p)
		if err != nil {
			continue
		}
		for _, b := range blocks {
			if isPhotoBlock(b) {
				pages = append(pages, p)
				break
			}
		}
	}
	return pages
}

// isPhotoBlock applies the area and aspect-ratio filters.
func isPhotoBlock(b document.ImageBlock) bool {
	w, h := b.Bounds()
	if w <= 0 || h <= 0 {
		return false
	}
	if w*h < minPhotoArea {
		return false
	}
	aspect := float64(w) / float64(h)
	return aspect <= maxPhotoAspect && aspect >= 1/maxPhotoAspect
}

// renderBlock decodes the block, upscales 2x for viewing, trims the uniform
// border plus one edge pixel, and writes the PNG. Trim failures leave the
// untrimmed render in place.
func renderBlock(b document.ImageBlock, path string) error {
	data, err := b.PNG()
	if err != nil {
		return fmt.Errorf("decode block: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode png: %w", err)
	}
	final := imaging.Upscale2x(img)
	if trimmed, err := imaging.TrimBorder(final, trimTolerance); err == nil {
		if cropped, err := imaging.CropEdges(trimmed, 1); err == nil {
			final = cropped
		} else {
			final = trimmed
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if err := png.Encode(f, final); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}

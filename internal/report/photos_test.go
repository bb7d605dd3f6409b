package report

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/auctionkit/appraisal-extractor/internal/document"
)

func TestExtractPhotosHeadingPage(t *testing.T) {
	valid := newFakeImage(t, 200, 100)
	tiny := newFakeImage(t, 50, 50)       // below minimum area
	divider := newFakeImage(t, 2000, 100) // aspect 20:1

	doc := &fakeDoc{pages: []fakePage{
		{text: "표지"},
		{text: "사진용지", images: []document.ImageBlock{valid, tiny, divider}},
		{text: "감정평가요항표\n사진용지 참조", images: []document.ImageBlock{newFakeImage(t, 300, 200)}},
	}}

	out := t.TempDir()
	regions, err := ExtractPhotos(doc, "2024타경10001", out, nil)
	if err != nil {
		t.Fatalf("ExtractPhotos() error: %v", err)
	}
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1 (filters and appraisal-page exclusion)", len(regions))
	}
	r := regions[0]
	if r.PageIndex != 1 || r.Width != 200 || r.Height != 100 {
		t.Errorf("region = %+v", r)
	}
	wantPath := filepath.Join(out, "photos", "2024타경10001_0.png")
	if r.Path != wantPath {
		t.Errorf("path = %q, want %q", r.Path, wantPath)
	}
	assertDecodablePNG(t, wantPath)
}

func TestExtractPhotosFallbackScan(t *testing.T) {
	// No page carries a photo-sheet heading; qualifying blocks anywhere in
	// the document are still extracted.
	doc := &fakeDoc{pages: []fakePage{
		{text: "표지"},
		{text: "본문", images: []document.ImageBlock{
			newFakeImage(t, 150, 150),
			newFakeImage(t, 400, 300),
		}},
	}}

	out := t.TempDir()
	regions, err := ExtractPhotos(doc, "2024타경10002", out, nil)
	if err != nil {
		t.Fatalf("ExtractPhotos() error: %v", err)
	}
	if len(regions) != 2 {
		t.Fatalf("got %d regions, want 2 via fallback scan", len(regions))
	}
	for i, r := range regions {
		want := filepath.Join(out, "photos", fmt.Sprintf("2024타경10002_%d.png", i))
		if r.Path != want {
			t.Errorf("regions[%d].Path = %q, want %q", i, r.Path, want)
		}
	}
}

func TestExtractPhotosRenderFailureSkipped(t *testing.T) {
	broken := &fakeImage{w: 300, h: 200, pngErr: errors.New("corrupt stream")}
	good := newFakeImage(t, 300, 200)

	doc := &fakeDoc{pages: []fakePage{
		{text: "사진용지", images: []document.ImageBlock{broken, good}},
	}}

	out := t.TempDir()
	regions, err := ExtractPhotos(doc, "2024타경10003", out, nil)
	if err != nil {
		t.Fatalf("ExtractPhotos() error: %v", err)
	}
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want the surviving block only", len(regions))
	}
	if got, want := regions[0].Path, filepath.Join(out, "photos", "2024타경10003_0.png"); got != want {
		t.Errorf("path = %q, want %q (failed renders do not consume an index)", got, want)
	}
}

func TestExtractPhotosNone(t *testing.T) {
	doc := textDoc("표지", "본문")
	out := t.TempDir()
	regions, err := ExtractPhotos(doc, "2024타경10004", out, nil)
	if err != nil {
		t.Fatalf("ExtractPhotos() error: %v", err)
	}
	if len(regions) != 0 {
		t.Errorf("got %d regions, want 0", len(regions))
	}
}

func TestIsPhotoBlock(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		want bool
	}{
		{"typical photo", 400, 300, true},
		{"minimum area boundary", 100, 100, true},
		{"below minimum area", 99, 100, false},
		{"wide divider", 2000, 100, false},
		{"tall strip", 100, 2000, false},
		{"zero height", 100, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &fakeImage{w: tt.w, h: tt.h}
			if got := isPhotoBlock(b); got != tt.want {
				t.Errorf("isPhotoBlock(%dx%d) = %v, want %v", tt.w, tt.h, got, tt.want)
			}
		})
	}
}

// assertDecodablePNG verifies the rendered file decodes and was upscaled.
func assertDecodablePNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open rendered photo: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode rendered photo: %v", err)
	}
	if img.Bounds() == (image.Rectangle{}) {
		t.Error("rendered photo is empty")
	}
}

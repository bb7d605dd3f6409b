package report

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/auctionkit/appraisal-extractor/internal/document"
)

// fakeDoc is an in-memory Document for pipeline tests.
type fakeDoc struct {
	pages []fakePage
}

type fakePage struct {
	text    string
	textErr error
	images  []document.ImageBlock
}

func (d *fakeDoc) PageCount() int { return len(d.pages) }

func (d *fakeDoc) PageText(i int) (string, error) {
	p := d.pages[i]
	return p.text, p.textErr
}

func (d *fakeDoc) PageImages(i int) ([]document.ImageBlock, error) {
	return d.pages[i].images, nil
}

func (d *fakeDoc) Close() error { return nil }

func textDoc(pages ...string) *fakeDoc {
	d := &fakeDoc{}
	for _, t := range pages {
		d.pages = append(d.pages, fakePage{text: t})
	}
	return d
}

// fakeImage reports fixed bounds and serves pre-encoded PNG bytes.
type fakeImage struct {
	w, h   int
	data   []byte
	pngErr error
}

func (f *fakeImage) Bounds() (int, int) { return f.w, f.h }

func (f *fakeImage) PNG() ([]byte, error) {
	if f.pngErr != nil {
		return nil, f.pngErr
	}
	return f.data, nil
}

func newFakeImage(t *testing.T, w, h int) *fakeImage {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 180, B: 160, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fake image: %v", err)
	}
	return &fakeImage{w: w, h: h, data: buf.Bytes()}
}

// longText returns a page body comfortably above the extractable-text
// threshold.
func longText(seed string) string {
	return strings.Repeat(seed+" 본건에 대한 감정 내용을 기술함. ", 10)
}

func strPtr(t *testing.T, p *string, name string) string {
	t.Helper()
	if p == nil {
		t.Fatalf("%s: expected value, got nil", name)
	}
	return *p
}

func pageLines(lines ...string) string {
	return fmt.Sprintf("%s\n", strings.Join(lines, "\n"))
}

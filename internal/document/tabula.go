package document

import (
	"fmt"

	"github.com/tsawler/tabula"
	"github.com/tsawler/tabula/reader"
)

// tabulaDocument adapts a tabula reader to the Document interface.
type tabulaDocument struct {
	r     *reader.Reader
	pages int
}

// Open opens a PDF report for extraction.
func Open(path string) (Document, error) {
	r, err := reader.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	n, err := r.PageCount()
	if err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("page count: %w", err)
	}
	return &tabulaDocument{r: r, pages: n}, nil
}

func (d *tabulaDocument) PageCount() int { return d.pages }

func (d *tabulaDocument) PageText(i int) (string, error) {
	if i < 0 || i >= d.pages {
		return "", fmt.Errorf("page %d out of range (0..%d)", i, d.pages-1)
	}
	// FromReader leaves reader lifetime with us; Pages is 1-indexed.
	text, _, err := tabula.FromReader(d.r).Pages(i + 1).Text()
	if err != nil {
		return "", fmt.Errorf("page %d text: %w", i, err)
	}
	return text, nil
}

func (d *tabulaDocument) PageImages(i int) ([]ImageBlock, error) {
	if i < 0 || i >= d.pages {
		return nil, fmt.Errorf("page %d out of range (0..%d)", i, d.pages-1)
	}
	page, err := d.r.GetPage(i)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", i, err)
	}
	imgs, err := d.r.ExtractPageImages(page)
	if err != nil {
		return nil, fmt.Errorf("page %d images: %w", i, err)
	}
	blocks := make([]ImageBlock, 0, len(imgs))
	for _, img := range imgs {
		blocks = append(blocks, &tabulaImage{img: img})
	}
	return blocks, nil
}

func (d *tabulaDocument) Close() error {
	if d.r == nil {
		return nil
	}
	err := d.r.Close()
	d.r = nil
	return err
}

type tabulaImage struct {
	img reader.PageImage
}

func (t *tabulaImage) Bounds() (int, int) { return t.img.Width, t.img.Height }

func (t *tabulaImage) PNG() ([]byte, error) { return t.img.ToPNG() }

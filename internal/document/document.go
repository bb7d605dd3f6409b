// Package document wraps the PDF library behind a small per-page surface:
// plain text, embedded image blocks, and page count. The extraction pipeline
// depends only on this interface, so tests can substitute an in-memory fake.
package document

// Document is one opened appraisal report. A Document is owned by a single
// extraction call and must be closed when done. Handles are not safe for
// sharing across goroutines; each worker opens its own.
type Document interface {
	// PageCount reports the number of pages.
	PageCount() int

	// PageText returns the plain text of the 0-based page index.
	PageText(i int) (string, error)

	// PageImages returns the embedded image blocks of the 0-based page index,
	// in document order.
	PageImages(i int) ([]ImageBlock, error)

	// Close releases the underlying file handle. Safe to call twice.
	Close() error
}

// ImageBlock is a library-reported raster embedded in a page. Dimensions are
// raster pixels; the PNG payload is decoded lazily because most blocks are
// filtered out before rendering.
type ImageBlock interface {
	// Bounds returns the raster width and height in pixels.
	Bounds() (w, h int)

	// PNG renders the block to PNG bytes.
	PNG() ([]byte, error)
}
